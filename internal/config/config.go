package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/signalnine/interop-score/internal/interop"
)

const envPrefix = "INTEROP"

type Config struct {
	Year          int                 `yaml:"year"`
	ExpectedNotOK []string            `yaml:"expected_not_ok"`
	Labels        map[string][]string `yaml:"labels"`
	Categories    []Category          `yaml:"categories"`
	Runs          []Run               `yaml:"runs"`
	Results       Results             `yaml:"results"`
	Parallel      int                 `yaml:"parallel"`
	LogLevel      string              `yaml:"log_level"`
}

// Category lists its tests directly, through labels, or both.
type Category struct {
	Name   string   `yaml:"name"`
	Labels []string `yaml:"labels"`
	Tests  []string `yaml:"tests"`
}

// Run names one execution of the suite and the wptreport files (glob
// patterns) holding its results.
type Run struct {
	Name    string   `yaml:"name"`
	Reports []string `yaml:"reports"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Overrides are read from INTEROP_* environment variables and take
// precedence over the file.
type Overrides struct {
	ResultsDir string `envconfig:"RESULTS_DIR"`
	Parallel   int    `envconfig:"PARALLEL"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var o Overrides
	if err := envconfig.Process(envPrefix, &o); err != nil {
		return err
	}
	if o.ResultsDir != "" {
		cfg.Results.Dir = o.ResultsDir
	}
	if o.Parallel != 0 {
		cfg.Parallel = o.Parallel
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	return nil
}

func validate(cfg *Config) error {
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	seen := make(map[string]bool, len(cfg.Categories))
	for i, c := range cfg.Categories {
		if c.Name == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("category %q: defined more than once", c.Name)
		}
		seen[c.Name] = true
		for _, label := range c.Labels {
			if _, ok := cfg.Labels[label]; !ok {
				return fmt.Errorf("category %q: unknown label %q", c.Name, label)
			}
		}
		if len(cfg.categoryTests(&c)) == 0 {
			return fmt.Errorf("category %q: no tests", c.Name)
		}
	}
	runSeen := make(map[string]bool, len(cfg.Runs))
	for i, r := range cfg.Runs {
		if r.Name == "" {
			return fmt.Errorf("run %d: name is required", i)
		}
		if runSeen[r.Name] {
			return fmt.Errorf("run %q: defined more than once", r.Name)
		}
		runSeen[r.Name] = true
		if len(r.Reports) == 0 {
			return fmt.Errorf("run %q: at least one report is required", r.Name)
		}
	}
	if cfg.Parallel < 1 {
		cfg.Parallel = 1
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return nil
}

func (cfg *Config) categoryTests(c *Category) interop.Set {
	tests := interop.NewSet(c.Tests...)
	for _, label := range c.Labels {
		for _, id := range cfg.Labels[label] {
			tests.Add(id)
		}
	}
	return tests
}

// InteropCategories resolves every category to its full test set.
func (cfg *Config) InteropCategories() []interop.Category {
	out := make([]interop.Category, 0, len(cfg.Categories))
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		out = append(out, interop.Category{Name: c.Name, Tests: cfg.categoryTests(c)})
	}
	return out
}

func (cfg *Config) ExpectedNotOKSet() interop.Set {
	return interop.NewSet(cfg.ExpectedNotOK...)
}
