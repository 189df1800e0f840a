package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/renamarr/pkg/epname"
)

var parseCmd = &cobra.Command{
	Use:   "parse <filename>",
	Short: "Parse a filename locally and print what was recognized",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f := epname.Parse(args[0])

		fmt.Printf("Name:     %s\n", f.Name)
		fmt.Printf("Ext:      %s\n", f.Ext)
		fmt.Printf("Season:   %s\n", formatOpt(f.Season))
		fmt.Printf("Episode:  %s\n", formatOpt(f.Episode))
		fmt.Printf("Residual: %q\n", f.Residual)
	},
}

func formatOpt(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
