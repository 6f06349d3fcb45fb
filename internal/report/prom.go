package report

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/signalnine/interop-score/internal/result"
)

func strp(s string) *string { return &s }

func gauge(value float64, labels ...string) *dto.Metric {
	m := &dto.Metric{Gauge: &dto.Gauge{Value: &value}}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{Name: strp(labels[i]), Value: strp(labels[i+1])})
	}
	return m
}

func gaugeFamily(name, help string) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: strp(name),
		Help: strp(help),
		Type: dto.MetricType_GAUGE.Enum(),
	}
}

// writeProm renders s in the Prometheus text exposition format, suitable
// for a node_exporter textfile collector.
func writeProm(s *result.Summary, w io.Writer) error {
	category := gaugeFamily("interop_category_score", "Interop score of a category for a run, 0-1000.")
	for _, c := range s.Categories {
		for i, v := range c.Scores {
			category.Metric = append(category.Metric, gauge(float64(v), "category", c.Name, "run", s.Runs[i]))
		}
	}
	total := gaugeFamily("interop_total_score", "Mean of category scores for a run, 0-1000.")
	for i, v := range s.Totals {
		total.Metric = append(total.Metric, gauge(float64(v), "run", s.Runs[i]))
	}
	unexpected := gaugeFamily("interop_unexpected_not_ok_tests", "Tests with subtests whose overall status was unexpectedly not OK.")
	unexpected.Metric = append(unexpected.Metric, gauge(float64(len(s.UnexpectedNotOK))))

	for _, mf := range []*dto.MetricFamily{category, total, unexpected} {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
