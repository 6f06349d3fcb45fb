package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/interop-score/internal/wptreport"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <report-pattern>...",
		Short: "Check wptreport files for missing required fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := wptreport.ExpandPaths(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var failed int
			for _, path := range paths {
				if err := wptreport.Validate(path); err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %v\n", err)
					continue
				}
				fmt.Fprintf(out, "ok    %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d reports are malformed", failed, len(paths))
			}
			return nil
		},
	}
}
