package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/categorize"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Inspect the category assignment tables",
	}

	matchCmd := &cobra.Command{
		Use:   "match <item name>",
		Short: "Show the category the matcher assigns to an item name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			cmd.Printf("%s -> %s\n", name, a.matcher.Match(name))
			return nil
		},
	}

	var limit int
	suggestCmd := &cobra.Command{
		Use:   "suggest <item name>",
		Short: "Show ranked category candidates for an item name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := categorize.NewTermIndex(a.matcher)
			if err != nil {
				return err
			}
			defer index.Close()

			name := strings.Join(args, " ")
			suggestions, err := index.Suggest(name, limit)
			if err != nil {
				return err
			}
			for _, s := range suggestions {
				cmd.Printf("%-20s %-25s %.3f\n", s.Category, s.Term, s.Score)
			}
			return nil
		},
	}
	suggestCmd.Flags().IntVar(&limit, "limit", 5, "maximum number of suggestions")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured categories and their term counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, entry := range a.set.Categories.Entries {
				cmd.Printf("%-20s %d terms\n", entry.Name, len(entry.Terms))
			}
			return nil
		},
	}

	cmd.AddCommand(matchCmd, suggestCmd, listCmd)
	return cmd
}
