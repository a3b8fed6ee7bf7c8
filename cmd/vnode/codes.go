package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vnode/internal/errors"
)

func codesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "codes [code]",
		Short: "List error codes",
		Long: `List every registered error code on one line each, or explain a
single code with its hint. --json prints one JSON object per code.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := errors.GetAllCodes()
			if len(args) == 1 {
				if _, ok := errors.GetTemplate(args[0]); !ok {
					return fmt.Errorf("unknown error code %q", args[0])
				}
				codes = args
			}

			out := cmd.OutOrStdout()
			for _, code := range codes {
				e := errors.New(code)
				switch {
				case asJSON:
					fmt.Fprintln(out, e.FormatJSON())
				case len(args) == 1:
					fmt.Fprint(out, e.Format())
				default:
					fmt.Fprintln(out, e.FormatCompact())
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print codes as JSON objects")

	return cmd
}
