package ee

import (
	"time"

	"github.com/vk/eegraph/internal/literal"
)

// Date is a point in time graph value.
type Date struct{ *ComputedObject }

// NewDate creates a Date from epoch milliseconds, a date string, a
// time.Time or a computed value. An optional time zone is used to interpret
// strings. The result is always an invocation of the Date constructor
// operation, except for values already declared as Date.
func (r *Registry) NewDate(v any, timeZone ...string) (Date, error) {
	if len(timeZone) > 1 {
		return Date{}, &TooManyArgumentsError{Func: TypeDate, Max: 2, Got: 1 + len(timeZone)}
	}

	var value any
	switch x := v.(type) {
	case time.Time:
		value = literal.Millis(x)
	case string:
		value = x
	case Object:
		node := x.Node()
		if node == nil {
			return Date{}, &ArgumentTypeError{Func: TypeDate, Expected: TypeDate, Value: v}
		}
		if node.typeName == TypeDate && len(timeZone) == 0 {
			return Date{node}, nil
		}
		value = node
	default:
		n, ok := numberLiteral(v)
		if !ok {
			return Date{}, &ArgumentTypeError{Func: TypeDate, Expected: TypeDate, Value: v}
		}
		value = n
	}

	fn, err := r.Lookup(TypeDate)
	if err != nil {
		return Date{}, err
	}
	args := map[string]any{"value": value}
	if len(timeZone) == 1 {
		args["timeZone"] = r.literalNode(TypeString, timeZone[0])
	}
	return Date{r.invoke(fn, args).Node().cast(TypeDate)}, nil
}

// Advance moves the date by delta units ("year", "month", "week", "day",
// "hour", "minute" or "second").
func (d Date) Advance(delta any, unit string) (Date, error) {
	return as[Date](d.Call("advance", delta, unit))
}

// Millis returns the number of milliseconds since the Unix epoch.
func (d Date) Millis() (Number, error) {
	return as[Number](d.Call("millis"))
}
