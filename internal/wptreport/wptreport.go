package wptreport

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
	"github.com/sirupsen/logrus"

	"github.com/signalnine/interop-score/internal/interop"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	schema, err := jsonschema.NewCompiler().Compile(schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile wptreport schema: %w", err)
	}
	return schema, nil
})

type report struct {
	Results []testResult `json:"results"`
}

type testResult struct {
	Test     string    `json:"test"`
	Status   string    `json:"status"`
	Subtests []subtest `json:"subtests"`
}

type subtest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Load reads a wptreport file, gunzipping it when the name ends in ".gz".
func Load(path string) (interop.Run, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	run, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return run, nil
}

// Validate checks that the file at path is a structurally valid wptreport.
func Validate(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := validate(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Parse converts wptreport JSON into a run. Missing required fields are
// reported as interop.ErrMalformedInput; unknown statuses are not errors.
func Parse(data []byte) (interop.Run, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", interop.ErrMalformedInput, err)
	}
	run := make(interop.Run, len(r.Results))
	for _, item := range r.Results {
		res := interop.Results{Status: interop.ParseStatus(item.Status)}
		if len(item.Subtests) > 0 {
			res.Subtests = make([]interop.SubtestResult, 0, len(item.Subtests))
		}
		for _, st := range item.Subtests {
			res.Subtests = append(res.Subtests, interop.SubtestResult{
				ID:     st.Name,
				Status: interop.ParseStatus(st.Status),
			})
		}
		run[item.Test] = res
	}
	return run, nil
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: invalid json", interop.ErrMalformedInput)
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: schema validation failed: %v", interop.ErrMalformedInput, result.Errors)
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return raw, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening gzip report %s: %w", path, err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing report %s: %w", path, err)
	}
	return data, nil
}

// LoadRun merges several reports into one run. When two reports contain the
// same test a warning is logged and the later report wins.
func LoadRun(paths []string, logger logrus.FieldLogger) (interop.Run, error) {
	merged := interop.Run{}
	for _, path := range paths {
		logger.WithField("path", path).Info("loading wptreport")
		run, err := Load(path)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(run))
		for id := range run {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if _, dup := merged[id]; dup {
				logger.WithField("test", id).WithField("path", path).Warn("duplicate results for test")
			}
			merged[id] = run[id]
		}
	}
	return merged, nil
}

// ExpandPaths resolves glob patterns to files. Each pattern must match at
// least one file.
func ExpandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad report pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no reports match %q", pattern)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
