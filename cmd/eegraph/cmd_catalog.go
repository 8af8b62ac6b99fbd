package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/eegraph/pkg/catalog"
)

func newCatalogCmd(rf *rootFlags) *cobra.Command {
	var opts struct {
		json      bool
		all       bool
		namespace string
	}
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the function catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := rf.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			cat := a.Registry().Catalog()
			var sigs []*catalog.Signature
			if opts.namespace != "" {
				sigs = cat.Namespace(opts.namespace)
			} else {
				sigs = cat.All()
			}
			if !opts.all {
				sigs = visible(sigs)
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return catalog.EncodeJSON(out, sigs)
			}

			t := newTable("Function", "Returns", "Arguments", "Notes")
			for _, sig := range sigs {
				t.AppendRow([]any{sig.Name, sig.Returns, formatArgs(sig.Args), notes(sig)})
			}
			wrapColumn(t, 3, 60)
			_, err = fmt.Fprintln(out, t.Render())
			return err
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "Export the catalog as a JSON algorithm listing")
	f.BoolVar(&opts.all, "all", false, "Include hidden functions")
	f.StringVarP(&opts.namespace, "namespace", "n", "", "Only list members of this namespace")
	return cmd
}

func visible(sigs []*catalog.Signature) []*catalog.Signature {
	out := make([]*catalog.Signature, 0, len(sigs))
	for _, sig := range sigs {
		if !sig.Hidden {
			out = append(out, sig)
		}
	}
	return out
}

func formatArgs(args []catalog.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		s := a.Name + " " + a.Type
		if a.Optional {
			s += "?"
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func notes(sig *catalog.Signature) string {
	var deprecated, hidden string
	if sig.Deprecated != "" {
		deprecated = "deprecated: " + sig.Deprecated
	}
	if sig.Hidden {
		hidden = "hidden"
	}
	return joinNonEmpty("; ", deprecated, hidden)
}
