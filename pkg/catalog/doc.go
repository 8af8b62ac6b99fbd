// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package catalog holds the signatures of the operations the remote
// evaluation service offers.
//
// # Core Concepts
//
//   - Signature: one operation, identified by a qualified name such as
//     `String.cat`. It declares the ordered parameter list and the name of the
//     type it returns.
//
//   - Catalog: the set of signatures available to a process. Names are unique
//     within a catalog.
//
// # Sources
//
// A catalog is normally fetched from the service in its JSON wire form
// (DecodeJSON/FromWire). For offline work and tests the same signatures can
// be declared in HCL manifests:
//
//	function "String.cat" {
//	  returns     = String
//	  description = "Concatenates two strings."
//
//	  arg "string1" {
//	    type = String
//	  }
//	  arg "string2" {
//	    type = String
//	  }
//	}
//
// The order of `arg` blocks is the positional order of the parameters. An arg
// with `optional = true` or a `default` may be omitted by callers.
//
// Builtin returns a catalog of common operations embedded in the binary.
package catalog
