package halstead

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/analyze"
	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// Thresholds for the distinct-operator vocabulary size.
const (
	vocabularyYellow = 20
	vocabularyRed    = 40
)

// Analyzer wraps the Visitor in the standard analyzer surface.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string {
	return "halstead"
}

// Flag returns the CLI flag for the analyzer.
func (a *Analyzer) Flag() string {
	return "hal"
}

// Description returns the analyzer description.
func (a *Analyzer) Description() string {
	return "Counts Halstead operators and operands, total and distinct."
}

// Thresholds returns the color-coded thresholds for Halstead counts.
func (a *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		"distinct_operators": {
			"green":  1,
			"yellow": vocabularyYellow,
			"red":    vocabularyRed,
		},
	}
}

// Analyze runs the Halstead visitor over the given tree and returns the
// four raw numbers downstream composite formulas need.
func (a *Analyzer) Analyze(root *pyast.Node) (analyze.Report, error) {
	v, err := FromTree(root)
	if err != nil {
		return nil, err
	}

	return analyze.Report{
		"analyzer_name":      a.Name(),
		"operators":          v.Operators(),
		"operands":           v.Operands(),
		"distinct_operators": v.DistinctOperators(),
		"distinct_operands":  v.DistinctOperands(),
	}, nil
}

// FormatReport formats Halstead analysis results as human-readable text.
func (a *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Metric", "Value"})

	rows := []struct {
		label string
		key   string
	}{
		{"Distinct operators (n1)", "distinct_operators"},
		{"Distinct operands (n2)", "distinct_operands"},
		{"Total operators (N1)", "operators"},
		{"Total operands (N2)", "operands"},
	}

	for _, row := range rows {
		value, _ := report[row.key].(int)
		tw.AppendRow(table.Row{row.label, humanize.Comma(int64(value))})
	}

	tw.Render()

	return nil
}

// FormatReportJSON formats Halstead analysis results as JSON.
func (a *Analyzer) FormatReportJSON(report analyze.Report, w io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("formatreportjson: %w", err)
	}

	_, err = w.Write(append(data, '\n'))
	if err != nil {
		return fmt.Errorf("formatreportjson: %w", err)
	}

	return nil
}

// FormatReportYAML formats Halstead analysis results as YAML.
func (a *Analyzer) FormatReportYAML(report analyze.Report, w io.Writer) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("formatreportyaml: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("formatreportyaml: %w", err)
	}

	return nil
}
