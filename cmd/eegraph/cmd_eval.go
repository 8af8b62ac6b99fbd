package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/eegraph/pkg/ee/serializer"
)

func newEvalCmd(rf *rootFlags) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "eval FILE...",
		Short: "Evaluate graph files on the service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rf.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.Evaluate(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			if jsonOut {
				enc := json.NewEncoder(out)
				for _, r := range results {
					line := map[string]any{"path": r.Path, "result": r.Value}
					if r.Err != nil {
						line["error"] = r.Err.Error()
						failed++
					}
					if err := enc.Encode(line); err != nil {
						return err
					}
				}
			} else {
				t := newTable("File", "Result", "Error")
				for _, r := range results {
					errMsg := ""
					if r.Err != nil {
						errMsg = r.Err.Error()
						failed++
					}
					t.AppendRow([]any{r.Path, renderValue(r.Value), errMsg})
				}
				wrapColumn(t, 2, 80)
				if _, err := fmt.Fprintln(out, t.Render()); err != nil {
					return err
				}
			}

			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d evaluations failed", failed, len(results))}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print one JSON object per file")
	return cmd
}

func renderValue(v any) string {
	if v == nil {
		return ""
	}
	b, err := serializer.Marshal(v, false)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
