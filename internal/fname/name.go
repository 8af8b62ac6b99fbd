package fname

import "strings"

// Name is a parsed qualified function name.
type Name struct {
	Segments []string
}

// String serializes the Name into its canonical dotted form.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Segments, ".")
}

// Namespace returns everything before the last segment, or "" for a bare
// constructor name.
func (n *Name) Namespace() string {
	if n == nil || len(n.Segments) < 2 {
		return ""
	}
	return strings.Join(n.Segments[:len(n.Segments)-1], ".")
}

// Method returns the last segment.
func (n *Name) Method() string {
	if n == nil || len(n.Segments) == 0 {
		return ""
	}
	return n.Segments[len(n.Segments)-1]
}

// IsConstructor reports whether the name has no namespace.
func (n *Name) IsConstructor() bool {
	return n != nil && len(n.Segments) == 1
}

// InNamespace reports whether the name is a direct member of ns, i.e.
// `ns.method` with no further nesting.
func (n *Name) InNamespace(ns string) bool {
	return n != nil && len(n.Segments) >= 2 && n.Namespace() == ns
}

// Equal checks for deep equality between two Name pointers.
func (n *Name) Equal(other *Name) bool {
	if n == nil || other == nil {
		return n == other
	}
	if len(n.Segments) != len(other.Segments) {
		return false
	}
	for i := range n.Segments {
		if n.Segments[i] != other.Segments[i] {
			return false
		}
	}
	return true
}
