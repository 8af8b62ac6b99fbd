package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vk/eegraph/pkg/ee"
)

func newConvertCmd(rf *rootFlags) *cobra.Command {
	var opts struct {
		to     string
		pretty bool
	}
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode a graph in the legacy or cloud encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := ee.ParseEncoding(opts.to)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			a, err := rf.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out, err := a.Convert(args[0], to, opts.pretty)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.to, "to", "cloud", "Target encoding: 'cloud' or 'legacy'")
	f.BoolVar(&opts.pretty, "pretty", false, "Indent the output")
	return cmd
}
