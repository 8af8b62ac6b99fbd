package ee

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned when a registry is requested without a
// function catalog.
var ErrNotInitialized = errors.New("ee: function registry is not initialized")

// ArgumentTypeError reports a value that cannot be promoted to the type a
// parameter or constructor expects.
type ArgumentTypeError struct {
	Func     string
	Param    string
	Expected string
	Value    any
}

func (e *ArgumentTypeError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: invalid argument, expected %s, got %s", e.Func, e.Expected, describe(e.Value))
	}
	return fmt.Sprintf("%s: argument %q: expected %s, got %s", e.Func, e.Param, e.Expected, describe(e.Value))
}

// MissingArgumentError reports a required parameter that was not supplied.
type MissingArgumentError struct {
	Func  string
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: required argument %q is missing", e.Func, e.Param)
}

// UnrecognizedArgumentError reports keyword arguments the signature does not
// declare.
type UnrecognizedArgumentError struct {
	Func   string
	Params []string
}

func (e *UnrecognizedArgumentError) Error() string {
	return fmt.Sprintf("%s: unrecognized arguments: %s", e.Func, strings.Join(e.Params, ", "))
}

// TooManyArgumentsError reports more positional arguments than parameters.
type TooManyArgumentsError struct {
	Func string
	Max  int
	Got  int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("%s: too many arguments: accepts at most %d, got %d", e.Func, e.Max, e.Got)
}

// UnknownFunctionError reports a name missing from the registry.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function: %s", e.Name)
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case Object:
		if node := x.Node(); node != nil {
			return "computed " + node.TypeName()
		}
		return fmt.Sprintf("nil %T", v)
	}
	return fmt.Sprintf("%T(%v)", v, v)
}
