package ee

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/internal/fname"
	"github.com/vk/eegraph/pkg/catalog"
)

// builtinTypes have Go wrapper types and are imported when the registry is
// created. Other types are imported on first use.
var builtinTypes = []string{
	TypeNumber, TypeString, TypeList, TypeDictionary, TypeDate, TypeJoin, TypeConfusionMatrix,
}

// defaultParents is the type hierarchy consulted when a method is missing
// from a type's own namespace.
var defaultParents = map[string]string{
	"Image":             "Element",
	"Feature":           "Element",
	"Collection":        "Element",
	"ImageCollection":   "Collection",
	"FeatureCollection": "Collection",
}

// Registry is the table of operations available to graph nodes. It is safe
// for concurrent use.
type Registry struct {
	mu sync.RWMutex

	catalog   *catalog.Catalog
	functions map[string]*ApiFunction

	// methods maps a type name to its attached operations by method name.
	methods     map[string]map[string]*ApiFunction
	initialized map[string]bool

	// cleared holds types detached by ClearAPI. They are not imported on
	// demand until ImportAPI is called again.
	cleared map[string]bool
	parents map[string]string

	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithParent makes methods of parent available on child. An empty parent
// removes the link.
func WithParent(child, parent string) Option {
	return func(r *Registry) {
		if parent == "" {
			delete(r.parents, child)
			return
		}
		r.parents[child] = parent
	}
}

// NewRegistry creates a registry over cat and imports the methods of the
// builtin wrapper types.
func NewRegistry(cat *catalog.Catalog, opts ...Option) (*Registry, error) {
	if cat == nil {
		return nil, ErrNotInitialized
	}

	r := &Registry{
		catalog:     cat,
		functions:   make(map[string]*ApiFunction, cat.Len()),
		methods:     make(map[string]map[string]*ApiFunction),
		initialized: make(map[string]bool),
		cleared:     make(map[string]bool),
		parents:     make(map[string]string, len(defaultParents)),
		logger:      slog.Default(),
	}
	for _, sig := range cat.All() {
		r.functions[sig.Name] = &ApiFunction{sig: sig}
	}
	for child, parent := range defaultParents {
		r.parents[child] = parent
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, typeName := range builtinTypes {
		r.ImportAPI(typeName, typeName)
	}
	r.logger.Debug("Function registry created", "functions", len(r.functions))
	return r, nil
}

// Initialize fetches the function catalog through t and creates a registry
// over it.
func Initialize(ctx context.Context, t Transport, opts ...Option) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	sigs, err := t.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch function catalog: %w", err)
	}
	cat, err := catalog.New(sigs...)
	if err != nil {
		return nil, fmt.Errorf("invalid function catalog: %w", err)
	}
	logger.Info("Function catalog fetched.", "functions", cat.Len())

	return NewRegistry(cat, append([]Option{WithLogger(logger)}, opts...)...)
}

// Catalog returns the catalog the registry was built from.
func (r *Registry) Catalog() *catalog.Catalog { return r.catalog }

// Lookup finds an operation by qualified name.
func (r *Registry) Lookup(name string) (*ApiFunction, error) {
	n, err := fname.Parse(name)
	if err != nil {
		return nil, &UnknownFunctionError{Name: name}
	}
	fn, ok := r.functions[n.String()]
	if !ok {
		return nil, &UnknownFunctionError{Name: n.String()}
	}
	return fn, nil
}

// ImportAPI attaches every operation `namespace.method` to typeName as
// `method` and returns the number attached. Operations in nested namespaces
// are skipped. Importing an already initialized type does nothing.
func (r *Registry) ImportAPI(typeName, namespace string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized[typeName] {
		return 0
	}
	delete(r.cleared, typeName)

	attached := make(map[string]*ApiFunction)
	for _, sig := range r.catalog.Namespace(namespace) {
		n, err := sig.QualifiedName()
		if err != nil {
			continue
		}
		attached[n.Method()] = r.functions[sig.Name]
	}
	r.methods[typeName] = attached
	r.initialized[typeName] = true

	r.logger.Debug("Imported API", "type", typeName, "namespace", namespace, "methods", len(attached))
	return len(attached)
}

// ClearAPI detaches all methods of typeName and resets its initialized
// state. Method calls on the type then fail with UnknownFunctionError, or
// resolve through its parent, until ImportAPI attaches the methods again.
func (r *Registry) ClearAPI(typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.methods, typeName)
	delete(r.initialized, typeName)
	r.cleared[typeName] = true
	r.logger.Debug("Cleared API", "type", typeName)
}

// Initialized reports whether typeName has its methods attached.
func (r *Registry) Initialized(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.initialized[typeName]
}

func (r *Registry) isCleared(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cleared[typeName]
}

// Methods returns the method names attached to typeName, sorted. Inherited
// methods are not included.
func (r *Registry) Methods(typeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods[typeName]))
	for name := range r.methods[typeName] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parent returns the type whose methods typeName inherits.
func (r *Registry) Parent(typeName string) (string, bool) {
	p, ok := r.parents[typeName]
	return p, ok
}

// method resolves a method of typeName, importing types on demand and
// falling back to parent types. Cleared types are skipped by the on-demand
// import.
func (r *Registry) method(typeName, method string) (*ApiFunction, error) {
	seen := make(map[string]bool)
	for t := typeName; t != "" && !seen[t]; t = r.parents[t] {
		seen[t] = true
		if !r.Initialized(t) && !r.isCleared(t) {
			r.ImportAPI(t, t)
		}

		r.mu.RLock()
		fn, ok := r.methods[t][method]
		r.mu.RUnlock()
		if ok {
			return fn, nil
		}
	}
	return nil, &UnknownFunctionError{Name: fname.Join(typeName, method)}
}

// Call invokes the named operation with positional arguments.
func (r *Registry) Call(name string, args ...any) (Object, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.CallFunction(fn, args...)
}

// Apply invokes the named operation with keyword arguments.
func (r *Registry) Apply(name string, args map[string]any) (Object, error) {
	fn, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.ApplyFunction(fn, args)
}

// CallFunction invokes fn with positional arguments bound in signature
// order.
func (r *Registry) CallFunction(fn Function, args ...any) (Object, error) {
	sig := fn.Signature()
	if len(args) > len(sig.Args) {
		return nil, &TooManyArgumentsError{Func: sig.Name, Max: len(sig.Args), Got: len(args)}
	}
	named := make(map[string]any, len(args))
	for i, v := range args {
		named[sig.Args[i].Name] = v
	}
	return r.ApplyFunction(fn, named)
}

// ApplyFunction invokes fn with keyword arguments. Each value is promoted to
// the declared parameter type; the result is wrapped according to the
// declared return type.
func (r *Registry) ApplyFunction(fn Function, args map[string]any) (Object, error) {
	promoted, err := r.promoteArgs(fn.Signature(), args)
	if err != nil {
		return nil, err
	}
	return r.invoke(fn, promoted), nil
}

// invoke builds an invocation node from already promoted arguments.
func (r *Registry) invoke(fn Function, args map[string]any) Object {
	return r.wrap(&ComputedObject{
		reg:      r,
		typeName: normalizeType(fn.Signature().Returns),
		fn:       fn,
		args:     args,
	})
}

// Variable creates a placeholder for a custom function parameter.
func (r *Registry) Variable(typeName, name string) Object {
	return r.wrap(&ComputedObject{
		reg:      r,
		typeName: normalizeType(typeName),
		varName:  name,
		isVar:    true,
	})
}
