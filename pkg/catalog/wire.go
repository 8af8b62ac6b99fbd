package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vk/eegraph/internal/fname"
	"github.com/vk/eegraph/internal/literal"
)

// AlgorithmList is the wire form of a catalog listing.
type AlgorithmList struct {
	Algorithms []Algorithm `json:"algorithms"`
}

// Algorithm is the wire form of one signature.
type Algorithm struct {
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	ReturnType        string     `json:"returnType"`
	Arguments         []Argument `json:"arguments,omitempty"`
	Deprecated        bool       `json:"deprecated,omitempty"`
	DeprecationReason string     `json:"deprecationReason,omitempty"`
	Hidden            bool       `json:"hidden,omitempty"`
}

// Argument is the wire form of one parameter.
type Argument struct {
	ArgumentName string `json:"argumentName"`
	Type         string `json:"type"`
	Description  string `json:"description,omitempty"`
	Optional     bool   `json:"optional,omitempty"`
	DefaultValue any    `json:"defaultValue,omitempty"`
}

// FromWire converts a wire listing into signatures.
func FromWire(list AlgorithmList) ([]*Signature, error) {
	sigs := make([]*Signature, 0, len(list.Algorithms))
	for _, alg := range list.Algorithms {
		n, err := fname.Parse(alg.Name)
		if err != nil {
			return nil, err
		}
		sig := &Signature{
			Name:        n.String(),
			Returns:     alg.ReturnType,
			Description: alg.Description,
			Hidden:      alg.Hidden,
		}
		if alg.Deprecated {
			sig.Deprecated = alg.DeprecationReason
			if sig.Deprecated == "" {
				sig.Deprecated = "deprecated"
			}
		}
		for _, a := range alg.Arguments {
			def, err := normalizeDefault(a.DefaultValue)
			if err != nil {
				return nil, fmt.Errorf("function %q: argument %q: %w", sig.Name, a.ArgumentName, err)
			}
			sig.Args = append(sig.Args, Arg{
				Name:        a.ArgumentName,
				Type:        a.Type,
				Description: a.Description,
				Optional:    a.Optional || def != nil,
				Default:     def,
			})
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// ToWire converts signatures into their wire listing.
func ToWire(sigs []*Signature) AlgorithmList {
	list := AlgorithmList{Algorithms: make([]Algorithm, 0, len(sigs))}
	for _, sig := range sigs {
		alg := Algorithm{
			Name:              fname.Prefix + sig.Name,
			Description:       sig.Description,
			ReturnType:        sig.Returns,
			Deprecated:        sig.Deprecated != "",
			DeprecationReason: sig.Deprecated,
			Hidden:            sig.Hidden,
		}
		for _, a := range sig.Args {
			alg.Arguments = append(alg.Arguments, Argument{
				ArgumentName: a.Name,
				Type:         a.Type,
				Description:  a.Description,
				Optional:     a.Optional,
				DefaultValue: a.Default,
			})
		}
		list.Algorithms = append(list.Algorithms, alg)
	}
	return list
}

// DecodeJSON reads a wire listing.
func DecodeJSON(r io.Reader) ([]*Signature, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var list AlgorithmList
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode algorithm list: %w", err)
	}
	return FromWire(list)
}

// EncodeJSON writes sigs as an indented wire listing.
func EncodeJSON(w io.Writer, sigs []*Signature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToWire(sigs))
}

// normalizeDefault canonicalizes numbers inside a decoded default value.
func normalizeDefault(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	val, err := literal.ToCty(v)
	if err != nil {
		return nil, err
	}
	return literal.FromCty(val)
}
