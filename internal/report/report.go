package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/signalnine/interop-score/internal/result"
)

// Generate renders the summary stored in runDir.
func Generate(runDir, format string, w io.Writer) error {
	s, err := result.ReadSummary(filepath.Join(runDir, result.SummaryFile))
	if err != nil {
		return err
	}
	return Write(s, format, w)
}

// Write renders s in the given format: table (default), markdown, json or prom.
func Write(s *result.Summary, format string, w io.Writer) error {
	switch format {
	case "markdown":
		return writeMarkdown(s, w)
	case "json":
		return writeJSON(s, w)
	case "prom":
		return writeProm(s, w)
	case "table", "":
		return writeTable(s, w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func joinScores(scores []uint64, sep string) string {
	parts := make([]string, len(scores))
	for i, v := range scores {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, sep)
}

func writeTable(s *result.Summary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "CATEGORY\t%s\n", strings.Join(s.Runs, "\t"))
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, joinScores(c.Scores, "\t"))
	}
	fmt.Fprintf(tw, "Total\t%s\n", joinScores(s.Totals, "\t"))
	if err := tw.Flush(); err != nil {
		return err
	}

	heading := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	fmt.Fprintln(w)
	fmt.Fprintln(w, heading.Render(fmt.Sprintf("Unexpected not-OK tests (%d)", len(s.UnexpectedNotOK))))
	for _, id := range s.UnexpectedNotOK {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}

func writeMarkdown(s *result.Summary, w io.Writer) error {
	fmt.Fprintf(w, "| Category | %s |\n", strings.Join(s.Runs, " | "))
	fmt.Fprintf(w, "|---|%s\n", strings.Repeat("---|", len(s.Runs)))
	for _, c := range s.Categories {
		fmt.Fprintf(w, "| %s | %s |\n", c.Name, joinScores(c.Scores, " | "))
	}
	fmt.Fprintf(w, "| **Total** | %s |\n", joinScores(s.Totals, " | "))
	if len(s.UnexpectedNotOK) > 0 {
		fmt.Fprintln(w, "\n### Unexpected not-OK tests")
		fmt.Fprintln(w)
		for _, id := range s.UnexpectedNotOK {
			fmt.Fprintf(w, "- `%s`\n", id)
		}
	}
	return nil
}

func writeJSON(s *result.Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
