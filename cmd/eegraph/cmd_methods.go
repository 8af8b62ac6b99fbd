package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newMethodsCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "methods TYPE",
		Short: "List the methods a type exposes, including inherited ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rf.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			reg := a.Registry()
			t := newTable("Method", "Function", "Returns")
			seenType := make(map[string]bool)
			shown := make(map[string]bool)
			for typ := args[0]; typ != "" && !seenType[typ]; typ, _ = reg.Parent(typ) {
				seenType[typ] = true
				reg.ImportAPI(typ, typ)
				for _, method := range reg.Methods(typ) {
					// A method of the type itself hides the inherited one.
					if shown[method] {
						continue
					}
					shown[method] = true
					fn, err := reg.Lookup(typ + "." + method)
					if err != nil {
						return err
					}
					t.AppendRow([]any{method, fn.Name(), fn.Signature().Returns})
				}
			}
			if len(shown) == 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("type %s has no methods", args[0])}
			}

			t.SortBy([]table.SortBy{{Name: "Method", Mode: table.Asc}})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
}
