package main

import (
	"fmt"

	"github.com/sant0-9/essaypolish/internal/essay"
	"github.com/spf13/cobra"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List essay types, focus areas, input types and polish levels",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Essay types and focus areas (--essay-type, --option):")
			for _, t := range essay.Types {
				fmt.Fprintf(out, "  %-14s %s\n", t, t.Label())
				for _, o := range t.Options() {
					fmt.Fprintf(out, "    %-12s %s\n", o, o.Label())
				}
			}

			fmt.Fprintln(out, "\nInput types (--input-type):")
			for _, it := range essay.InputTypes {
				fmt.Fprintf(out, "  %-14s %s\n", it.Key(), it.Label())
			}

			fmt.Fprintln(out, "\nPolish levels (--level):")
			for _, l := range essay.Levels {
				fmt.Fprintf(out, "  %-14s %s\n", l, l.Label())
			}
		},
	}
}
