package main

import (
	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the receipt-scan version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("receipt-scan %s (%s)\n", version, commit)
		},
	}
}
