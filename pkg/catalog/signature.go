// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Signature and Arg, the registry entry for one remote
// operation.
package catalog

import (
	"fmt"

	"github.com/vk/eegraph/internal/fname"
	"github.com/vk/eegraph/internal/literal"
)

// Arg is a single declared parameter of a Signature.
type Arg struct {
	// Name is the keyword the argument is bound to in an invocation.
	Name string

	// Type is the catalog type name the value must have, e.g. "String",
	// "Image" or "List<String>".
	Type string

	// Description is optional documentation.
	Description string

	// Optional marks arguments callers may omit.
	Optional bool

	// Default is the server-side default for an optional argument. It is
	// informational only; omitted arguments are never filled in locally.
	Default any
}

// Signature describes one remote operation.
type Signature struct {
	// Name is the qualified name, e.g. "Image.reduceRegion". Constructors
	// have no namespace ("Date").
	Name string

	// Returns is the catalog type name of the result.
	Returns string

	Description string

	// Args is the ordered parameter list. The order defines positional
	// binding.
	Args []Arg

	// Deprecated is a non-empty reason when the operation is deprecated.
	Deprecated string

	// Hidden operations are callable but not advertised.
	Hidden bool

	// Source is the manifest the signature was read from, if any.
	Source string
}

// Arg returns the declared parameter with the given name.
func (s *Signature) Arg(name string) (Arg, bool) {
	for _, a := range s.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// ArgNames returns the parameter names in positional order.
func (s *Signature) ArgNames() []string {
	names := make([]string, len(s.Args))
	for i, a := range s.Args {
		names[i] = a.Name
	}
	return names
}

// QualifiedName parses Name.
func (s *Signature) QualifiedName() (*fname.Name, error) {
	return fname.Parse(s.Name)
}

// Validate checks the structural rules every signature must satisfy.
func (s *Signature) Validate() error {
	if _, err := fname.Parse(s.Name); err != nil {
		return err
	}
	if s.Returns == "" {
		return fmt.Errorf("function %q: missing return type", s.Name)
	}

	seen := make(map[string]struct{}, len(s.Args))
	for i, a := range s.Args {
		if a.Name == "" {
			return fmt.Errorf("function %q: argument %d has no name", s.Name, i)
		}
		if a.Type == "" {
			return fmt.Errorf("function %q: argument %q has no type", s.Name, a.Name)
		}
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("function %q: duplicate argument %q", s.Name, a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.Default != nil {
			val, err := literal.ToCty(a.Default)
			if err != nil {
				return fmt.Errorf("function %q: argument %q: default: %w", s.Name, a.Name, err)
			}
			if err := literal.Conforms(val, a.Type); err != nil {
				return fmt.Errorf("function %q: argument %q: default: %w", s.Name, a.Name, err)
			}
		}
	}
	return nil
}
