package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/signalnine/interop-score/internal/config"
	"github.com/signalnine/interop-score/internal/interop"
	"github.com/signalnine/interop-score/internal/report"
	"github.com/signalnine/interop-score/internal/result"
	"github.com/signalnine/interop-score/internal/runner"
	"github.com/signalnine/interop-score/internal/wptreport"
)

var (
	flagFormat   string
	flagParallel int
	flagTrace    bool
	flagNoStore  bool
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [name=pattern[,pattern...]]...",
		Short: "Score runs against the configured interop categories",
		Long: "Load the wptreport files of each run, score every run per category and store the summary.\n" +
			"Runs given as arguments replace the runs in the config file.",
		RunE: runScore,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json, prom)")
	cmd.Flags().IntVar(&flagParallel, "parallel", 0, "override number of runs loaded and scored concurrently")
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "log how every scored test contributed")
	cmd.Flags().BoolVar(&flagNoStore, "no-store", false, "print the report without storing a summary")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagParallel > 0 {
		cfg.Parallel = flagParallel
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		runs, err := parseRunSpecs(args)
		if err != nil {
			return err
		}
		cfg.Runs = runs
	}
	return scoreAndReport(cfg, logger, cmd.OutOrStdout())
}

func scoreAndReport(cfg *config.Config, logger *logrus.Logger, w io.Writer) error {
	summary, err := scoreConfig(cfg, logger, flagTrace)
	if err != nil {
		return err
	}
	if !flagNoStore {
		runDir, err := result.CreateRunDir(cfg.Results.Dir)
		if err != nil {
			return err
		}
		if err := result.WriteSummary(runDir, summary); err != nil {
			return fmt.Errorf("storing summary: %w", err)
		}
		logger.WithField("dir", runDir).Info("stored summary")
	}
	return report.Write(summary, flagFormat, w)
}

// scoreConfig loads every configured run and scores it per category.
func scoreConfig(cfg *config.Config, logger *logrus.Logger, trace bool) (*result.Summary, error) {
	if len(cfg.Runs) == 0 {
		return nil, fmt.Errorf("no runs to score")
	}

	runs := make([]interop.Run, len(cfg.Runs))
	jobs := make([]runner.Job, len(cfg.Runs))
	for i, r := range cfg.Runs {
		jobs[i] = func() error {
			paths, err := wptreport.ExpandPaths(r.Reports)
			if err != nil {
				return fmt.Errorf("run %q: %w", r.Name, err)
			}
			run, err := wptreport.LoadRun(paths, logger.WithField("run", r.Name))
			if err != nil {
				return fmt.Errorf("run %q: %w", r.Name, err)
			}
			runs[i] = run
			return nil
		}
	}
	if errs := runner.RunPool(cfg.Parallel, jobs); len(errs) > 0 {
		for _, err := range errs[1:] {
			logger.WithError(err).Error("loading run failed")
		}
		return nil, errs[0]
	}

	opts := []interop.Option{interop.WithParallelism(cfg.Parallel)}
	if trace {
		opts = append(opts, interop.WithObserver(interop.LogObserver(traceLogger(logger))))
	}
	out, err := interop.ScoreCategories(runs, cfg.InteropCategories(), cfg.ExpectedNotOKSet(), opts...)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(cfg.Runs))
	for i, r := range cfg.Runs {
		names[i] = r.Name
	}
	return result.NewSummary(cfg.Year, names, out), nil
}

// traceLogger returns a debug-level logger writing where logger writes, so
// tracing never changes the level of the shared logger.
func traceLogger(logger *logrus.Logger) *logrus.Logger {
	tl := logrus.New()
	tl.SetOutput(logger.Out)
	tl.SetFormatter(logger.Formatter)
	tl.SetLevel(logrus.DebugLevel)
	return tl
}

// parseRunSpecs reads runs given as name=pattern[,pattern...].
func parseRunSpecs(args []string) ([]config.Run, error) {
	runs := make([]config.Run, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		name, patterns, ok := strings.Cut(arg, "=")
		if !ok || name == "" || patterns == "" {
			return nil, fmt.Errorf("expected runs of the form name=pattern[,pattern...], got %q", arg)
		}
		if seen[name] {
			return nil, fmt.Errorf("run %q: given more than once", name)
		}
		seen[name] = true
		var reports []string
		for _, p := range strings.Split(patterns, ",") {
			if p = strings.TrimSpace(p); p != "" {
				reports = append(reports, p)
			}
		}
		if len(reports) == 0 {
			return nil, fmt.Errorf("run %q: no report patterns", name)
		}
		runs = append(runs, config.Run{Name: name, Reports: reports})
	}
	return runs, nil
}
