// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file parses HCL function manifests into signatures. A manifest pins
// the set of operations a program is written against, so tests and the CLI
// can work without a network.
package catalog

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/eegraph/internal/ctxlog"
	"github.com/vk/eegraph/internal/literal"
)

// manifestRoot is the top-level structure of a manifest file.
type manifestRoot struct {
	Functions []*hclFunction `hcl:"function,block"`
}

// hclFunction is a single `function` block before its body is interpreted.
type hclFunction struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

var functionBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `returns` is required, but we check for it manually to give a
		// better error message.
		{Name: "returns"},
		{Name: "description"},
		{Name: "deprecated"},
		{Name: "hidden"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "arg", LabelNames: []string{"name"}},
	},
}

var argBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type"},
		{Name: "description"},
		{Name: "optional"},
		{Name: "default"},
	},
}

// ParseManifestSource parses manifest source code held in memory.
func ParseManifestSource(ctx context.Context, src []byte, filename string) ([]*Signature, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}
	sigs, diags := ParseManifest(ctx, file, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid manifest %s: %w", filename, diags)
	}
	return sigs, nil
}

// ParseManifest decodes the `function` blocks of a parsed HCL file.
func ParseManifest(ctx context.Context, file *hcl.File, filename string) ([]*Signature, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing function manifest", "file_path", filename)

	var allDiags hcl.Diagnostics
	if file == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	root := &manifestRoot{}
	diags := gohcl.DecodeBody(file.Body, nil, root)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	sigs := make([]*Signature, 0, len(root.Functions))
	for _, fn := range root.Functions {
		content, contentDiags := fn.Body.Content(functionBodySchema)
		allDiags = append(allDiags, contentDiags...)
		if contentDiags.HasErrors() {
			continue // Skip this function but keep checking the others.
		}

		sig := &Signature{Name: fn.Name, Source: filename}

		returnsAttr, exists := content.Attributes["returns"]
		if !exists {
			missing := fn.Body.MissingItemRange()
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'returns' attribute",
				Detail:   fmt.Sprintf("Function %q must declare the type it returns.", fn.Name),
				Subject:  &missing,
			})
			continue
		}
		var typeDiags hcl.Diagnostics
		sig.Returns, typeDiags = typeName(returnsAttr.Expr)
		allDiags = append(allDiags, typeDiags...)

		if attr, exists := content.Attributes["description"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &sig.Description)...)
		}
		if attr, exists := content.Attributes["deprecated"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &sig.Deprecated)...)
		}
		if attr, exists := content.Attributes["hidden"]; exists {
			allDiags = append(allDiags, gohcl.DecodeExpression(attr.Expr, nil, &sig.Hidden)...)
		}

		var argDiags hcl.Diagnostics
		sig.Args, argDiags = parseArgs(fn.Name, content.Blocks.OfType("arg"))
		allDiags = append(allDiags, argDiags...)

		sigs = append(sigs, sig)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Parsed function manifest", "file_path", filename, "count", len(sigs))
	return sigs, allDiags
}

// parseArgs decodes `arg` blocks in declaration order.
func parseArgs(function string, blocks hcl.Blocks) ([]Arg, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var args []Arg
	seen := make(map[string]struct{}, len(blocks))

	for _, block := range blocks {
		// The schema guarantees us one label.
		name := block.Labels[0]
		if _, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate argument definition",
				Detail:   fmt.Sprintf("Function %q already defines an argument named %q.", function, name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		content, contentDiags := block.Body.Content(argBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, exists := content.Attributes["type"]
		if !exists {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   "The 'type' attribute is required for all arg blocks.",
				Subject:  &missing,
			})
			continue
		}
		argType, typeDiags := typeName(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		arg := Arg{Name: name, Type: argType}
		if attr, exists := content.Attributes["description"]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &arg.Description)...)
		}
		if attr, exists := content.Attributes["optional"]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &arg.Optional)...)
		}
		if attr, exists := content.Attributes["default"]; exists {
			// Defaults must be literal values, so no eval context.
			val, valDiags := attr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			if err := literal.Conforms(val, argType); err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for %q is not compatible with its type: %s.", name, err),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			def, err := literal.FromCty(val)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value",
					Detail:   err.Error(),
					Subject:  attr.Expr.Range().Ptr(),
				})
				continue
			}
			arg.Default = def
			arg.Optional = true
		}
		args = append(args, arg)
	}
	return args, diags
}

// typeName reads a type from either a bare keyword (`type = String`) or a
// string (`type = "List<String>"`).
func typeName(expr hcl.Expression) (string, hcl.Diagnostics) {
	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if !travDiags.HasErrors() && len(traversal) == 1 {
		return traversal.RootName(), nil
	}

	var name string
	diags := gohcl.DecodeExpression(expr, nil, &name)
	if diags.HasErrors() || name == "" {
		return "", hcl.Diagnostics{&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "A type must be a bare type name like String or Image, or a quoted name like \"List<String>\".",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return name, nil
}
