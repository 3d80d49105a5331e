package main

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"MySupplements/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the catalog dataset without serving it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}

		store, src, err := loadStore(cmd.Context(), cfg)
		if err != nil {
			return errors.Wrap(err, "dataset invalid")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d products OK\n", src.Name(), store.Len())
		for _, p := range store.Products() {
			fmt.Fprintf(out, "  %-16s %-8s %s %s\n", p.ID, p.Country, p.Price.StringFixed(2), p.Currency)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
