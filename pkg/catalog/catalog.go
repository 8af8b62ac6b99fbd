package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/eegraph/internal/fname"
)

// Catalog is a set of signatures with unique names.
type Catalog struct {
	byName map[string]*Signature
}

// New creates a catalog holding sigs.
func New(sigs ...*Signature) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Signature, len(sigs))}
	for _, sig := range sigs {
		if err := c.Add(sig); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates sig and inserts it. Names must be unique.
func (c *Catalog) Add(sig *Signature) error {
	if sig == nil {
		return fmt.Errorf("nil signature")
	}
	sig.Name = strings.TrimPrefix(sig.Name, fname.Prefix)
	if err := sig.Validate(); err != nil {
		return err
	}
	if existing, exists := c.byName[sig.Name]; exists {
		where := ""
		if existing.Source != "" {
			where = fmt.Sprintf(" (first defined in %s)", existing.Source)
		}
		return fmt.Errorf("function %q is already defined%s", sig.Name, where)
	}
	c.byName[sig.Name] = sig
	return nil
}

// Merge adds every signature of other to c.
func (c *Catalog) Merge(other *Catalog) error {
	for _, sig := range other.All() {
		if err := c.Add(sig); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a signature by qualified name. The `algorithms/` prefix is
// accepted.
func (c *Catalog) Lookup(name string) (*Signature, bool) {
	if c == nil {
		return nil, false
	}
	sig, ok := c.byName[strings.TrimPrefix(name, fname.Prefix)]
	return sig, ok
}

// Len returns the number of signatures.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byName)
}

// Names returns all qualified names in ascending order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every signature ordered by name.
func (c *Catalog) All() []*Signature {
	names := c.Names()
	out := make([]*Signature, len(names))
	for i, name := range names {
		out[i] = c.byName[name]
	}
	return out
}

// Namespace returns the signatures that are direct members of ns, ordered
// by name. Constructors and deeper namespaces are excluded.
func (c *Catalog) Namespace(ns string) []*Signature {
	var out []*Signature
	for _, sig := range c.All() {
		n, err := fname.Parse(sig.Name)
		if err != nil {
			continue
		}
		if n.InNamespace(ns) {
			out = append(out, sig)
		}
	}
	return out
}
