// Package serializer turns computation graphs into the wire encodings the
// evaluation service accepts.
//
// Two encodings exist. The legacy encoding is a scope of named values plus a
// root reference:
//
//	{"type": "CompoundValue", "scope": [["0", {...}], ...], "value": {"type": "ValueRef", "value": "1"}}
//
// The cloud encoding is a table of tagged values (constantValue,
// arrayValue, dictionaryValue, functionInvocationValue, ...) plus the key of
// the result:
//
//	{"result": "0", "values": {"0": {"functionInvocationValue": {...}}}}
//
// Both encoders walk the graph depth first and give every distinct value,
// compared by its encoded form, exactly one entry. A graph that reuses a
// sub-expression therefore encodes to a size bounded by its distinct nodes.
//
// Graph nodes take part by implementing Encodable and, when they can be
// invoked, EncodableFunction. Plain Go values (nil, bool, string, numbers,
// time.Time, slices and string-keyed maps) are encoded directly.
package serializer
