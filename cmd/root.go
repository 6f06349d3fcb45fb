package cmd

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	flagLogLevel string
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "interop-score",
		Short:        "Score interoperability test runs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "interop.yaml", "config file path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (overrides config)")
	root.AddCommand(newScoreCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newWatchCmd())
	return root
}

// newLogger builds the CLI logger at the configured level.
func newLogger(w io.Writer, configured string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	if err := applyLogLevel(logger, configured); err != nil {
		return nil, err
	}
	return logger, nil
}

// applyLogLevel sets the logger's level. The --log-level flag wins over the
// configured level; with neither set the level is left alone.
func applyLogLevel(logger *logrus.Logger, configured string) error {
	level := configured
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(lvl)
	return nil
}
