// Package literal canonicalizes host literal values before they enter a
// computation graph and maps catalog type names onto cty types.
//
// Numbers are routed through cty so that every Go numeric representation of
// the same value (1, int64(1), 1.0, json.Number("1")) collapses to a single
// canonical form: int64 when the value is integral and fits, float64
// otherwise. Integers given as uint64, *big.Int or integer JSON text that
// overflow int64 are kept exact as *big.Int. Non-finite floats cannot be
// represented by cty and are passed through as float64.
package literal

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// MaxSafeInteger is the largest integer a float64 represents exactly.
const MaxSafeInteger = 1<<53 - 1

// Number canonicalizes v if it is a numeric value. The boolean is false when
// v is not a number.
func Number(v any) (any, bool) {
	var val cty.Value
	integral := true
	switch n := v.(type) {
	case int:
		val = cty.NumberIntVal(int64(n))
	case int8:
		val = cty.NumberIntVal(int64(n))
	case int16:
		val = cty.NumberIntVal(int64(n))
	case int32:
		val = cty.NumberIntVal(int64(n))
	case int64:
		val = cty.NumberIntVal(n)
	case uint:
		val = cty.NumberUIntVal(uint64(n))
	case uint8:
		val = cty.NumberUIntVal(uint64(n))
	case uint16:
		val = cty.NumberUIntVal(uint64(n))
	case uint32:
		val = cty.NumberUIntVal(uint64(n))
	case uint64:
		val = cty.NumberUIntVal(n)
	case float32:
		return Number(float64(n))
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return n, true
		}
		val = cty.NumberFloatVal(n)
		integral = false
	case json.Number:
		parsed, err := cty.ParseNumberVal(string(n))
		if err != nil {
			return nil, false
		}
		val = parsed
		integral = !strings.ContainsAny(string(n), ".eE")
	case *big.Int:
		if n == nil {
			return nil, false
		}
		val = cty.NumberVal(new(big.Float).SetInt(n))
	default:
		return nil, false
	}
	if integral {
		return fromInteger(val), true
	}
	return fromNumber(val), true
}

// fromInteger is fromNumber for values known to be integers. Values outside
// the int64 range are returned as a fresh *big.Int.
func fromInteger(val cty.Value) any {
	bf := val.AsBigFloat()
	if i, acc := bf.Int64(); acc == big.Exact {
		return i
	}
	if bf.IsInt() {
		bi, _ := bf.Int(nil)
		return bi
	}
	return fromNumber(val)
}

func fromNumber(val cty.Value) any {
	bf := val.AsBigFloat()
	if bf.IsInt() {
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
	}
	f, _ := bf.Float64()
	return f
}

// IsSafeInteger reports whether i survives a round trip through float64.
func IsSafeInteger(i int64) bool {
	return i >= -MaxSafeInteger && i <= MaxSafeInteger
}

// Collection converts typed Go slices, arrays and string-keyed maps into
// []any and map[string]any. Elements are not converted. The boolean is false
// when v is not a collection; []byte is not treated as one.
func Collection(v any) (any, bool) {
	switch c := v.(type) {
	case []any:
		return c, true
	case map[string]any:
		return c, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	}
	return nil, false
}

// Millis returns the epoch milliseconds the remote service uses for dates.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToCty converts a plain Go literal (nil, bool, string, numbers, slices and
// string-keyed maps of those) into a cty.Value.
func ToCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(x), nil
	case string:
		return cty.StringVal(x), nil
	case time.Time:
		return cty.NumberIntVal(Millis(x)), nil
	}

	if n, ok := Number(v); ok {
		switch num := n.(type) {
		case int64:
			return cty.NumberIntVal(num), nil
		case *big.Int:
			return cty.NumberVal(new(big.Float).SetInt(num)), nil
		case float64:
			if math.IsNaN(num) {
				return cty.NilVal, fmt.Errorf("NaN has no cty representation")
			}
			if math.IsInf(num, 1) {
				return cty.PositiveInfinity, nil
			}
			if math.IsInf(num, -1) {
				return cty.NegativeInfinity, nil
			}
			return cty.NumberFloatVal(num), nil
		}
	}

	c, ok := Collection(v)
	if !ok {
		return cty.NilVal, fmt.Errorf("unsupported literal of type %T", v)
	}
	switch coll := c.(type) {
	case []any:
		if len(coll) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(coll))
		for i, e := range coll {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(coll) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(coll))
		for k, e := range coll {
			ev, err := ToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}
	return cty.NilVal, fmt.Errorf("unsupported literal of type %T", v)
}

// FromCty converts a known cty.Value into plain Go values: nil, bool,
// string, int64/float64, []any and map[string]any.
func FromCty(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return val.AsString(), nil
	case ty.Equals(cty.Bool):
		return val.True(), nil
	case ty.Equals(cty.Number):
		if val.RawEquals(cty.PositiveInfinity) {
			return math.Inf(1), nil
		}
		if val.RawEquals(cty.NegativeInfinity) {
			return math.Inf(-1), nil
		}
		return fromNumber(val), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := []any{}
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			e, err := FromCty(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = e
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
}
