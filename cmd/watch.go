package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/signalnine/interop-score/internal/config"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-score whenever the config file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := scoreAndReport(cfg, logger, out); err != nil {
				logger.WithError(err).Error("scoring failed")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return config.Watch(ctx, cfgFile, logger, func(cfg *config.Config) {
				if err := rescore(cfg, logger, out); err != nil {
					logger.WithError(err).Error("scoring failed")
				}
			})
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json, prom)")
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "log how every scored test contributed")
	cmd.Flags().BoolVar(&flagNoStore, "no-store", false, "print reports without storing summaries")
	return cmd
}

// rescore scores a reloaded config, picking up its log level first.
func rescore(cfg *config.Config, logger *logrus.Logger, w io.Writer) error {
	if err := applyLogLevel(logger, cfg.LogLevel); err != nil {
		return fmt.Errorf("applying log level: %w", err)
	}
	return scoreAndReport(cfg, logger, w)
}
