// Package ee builds computation graphs for a remote geospatial evaluation
// service.
//
// Nothing is computed locally. Every operation on a wrapper such as Number or
// String returns a new graph node describing the invocation; the graph is
// encoded (see package serializer) and sent to the service only when a
// result is requested with Client.GetInfo.
//
// # Registry
//
// The operations available on each type come from a function catalog served
// by the service. A Registry is built from such a catalog and is required to
// create any wrapper, so no node can exist before initialization:
//
//	reg, err := ee.Initialize(ctx, transport)
//	n, err := reg.NewNumber(1)
//	sum, err := n.Add(2) // Number.add(left: 1, right: 2)
//
// Methods of a type are the catalog entries in its namespace (`String.cat`
// is the `cat` method of String). Registry.ImportAPI attaches them and
// Registry.ClearAPI detaches them again.
//
// # Equality
//
// Nodes are immutable. Two nodes are equal when their graphs are
// structurally equal, whatever their identity. Equality and Hash are derived
// from a canonical encoding that is computed once per node.
//
// # Custom functions
//
// Callbacks such as the per-element function of List.map are captured as
// graph fragments. Registry.Bind calls a builder with placeholder variables
// and records the node it returns as the function body.
package ee
