package fname

import (
	"fmt"
	"regexp"
	"strings"
)

// Prefix is the resource prefix used by catalog listings.
const Prefix = "algorithms/"

var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse creates a Name from its dotted string form.
func Parse(raw string) (*Name, error) {
	raw = strings.TrimPrefix(raw, Prefix)
	if raw == "" {
		return nil, fmt.Errorf("function name cannot be empty")
	}

	n := &Name{}
	for _, segment := range strings.Split(raw, ".") {
		if segment == "" {
			return nil, fmt.Errorf("function name %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid segment %q in function name %q", segment, raw)
		}
		n.Segments = append(n.Segments, segment)
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Intended for static names.
func MustParse(raw string) *Name {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}

// Join builds the qualified name of method inside namespace.
func Join(namespace, method string) string {
	if namespace == "" {
		return method
	}
	return namespace + "." + method
}
