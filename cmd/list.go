package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/interop-score/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured categories and runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Categories:")
			for _, c := range cfg.InteropCategories() {
				fmt.Fprintf(out, "  - %s (%d tests)\n", c.Name, len(c.Tests))
			}
			fmt.Fprintln(out, "\nRuns:")
			for _, r := range cfg.Runs {
				fmt.Fprintf(out, "  - %s %v\n", r.Name, r.Reports)
			}
			if len(cfg.ExpectedNotOK) > 0 {
				fmt.Fprintf(out, "\nExpected not OK: %d tests\n", len(cfg.ExpectedNotOK))
			}
			return nil
		},
	}
}
