/*
Package fname provides a structured representation for qualified function
names in the remote function catalog.

The format is a dot-separated sequence of identifiers where every segment but
the last forms the namespace and the last segment is the method name, e.g.
`Image.reduceRegion` or `Collection.map`. A bare name such as `Date` has an
empty namespace and names a type constructor. Catalog listings prefix names
with `algorithms/`; Parse strips it.
*/
package fname
