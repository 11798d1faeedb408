package cyclomatic

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/analyze"
	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// Rank bands. A block ranks by its complexity score; the letters are a
// presentation aid and never feed back into the scores.
const (
	rankBMin = 6
	rankCMin = 11
	rankDMin = 21
	rankEMin = 31
	rankFMin = 41
)

// Analyzer wraps the Visitor in the standard analyzer surface.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Name returns the analyzer name.
func (a *Analyzer) Name() string {
	return "cyclomatic"
}

// Flag returns the CLI flag for the analyzer.
func (a *Analyzer) Flag() string {
	return "cc"
}

// Description returns the analyzer description.
func (a *Analyzer) Description() string {
	return "Computes cyclomatic complexity per function, method, and class."
}

// Thresholds returns the color-coded thresholds for complexity scores.
func (a *Analyzer) Thresholds() analyze.Thresholds {
	return analyze.Thresholds{
		"complexity": {
			"green":  rankBMin - 1,
			"yellow": rankCMin - 1,
			"red":    rankDMin - 1,
		},
	}
}

// Analyze runs the complexity visitor over the given tree and returns the
// aggregate report.
func (a *Analyzer) Analyze(root *pyast.Node) (analyze.Report, error) {
	v, err := FromTree(root)
	if err != nil {
		return nil, err
	}

	return a.buildResult(v), nil
}

// buildResult constructs the final analysis result.
func (a *Analyzer) buildResult(v *Visitor) analyze.Report {
	blocks := v.Blocks()

	sort.Slice(blocks, func(i, j int) bool {
		left, right := blocks[i], blocks[j]

		if left.Complexity() != right.Complexity() {
			return left.Complexity() > right.Complexity()
		}

		return left.FullName() < right.FullName()
	})

	blockRows := make([]map[string]any, 0, len(blocks))
	for _, block := range blocks {
		blockRows = append(blockRows, map[string]any{
			"letter":     block.Letter(),
			"fullname":   block.FullName(),
			"line":       block.Line(),
			"col":        block.Col(),
			"complexity": block.Complexity(),
			"rank":       Rank(block.Complexity()),
		})
	}

	return analyze.Report{
		"analyzer_name":        a.Name(),
		"total_complexity":     v.TotalComplexity(),
		"functions_complexity": v.FunctionsComplexity(),
		"classes_complexity":   v.ClassesComplexity(),
		"total_blocks":         len(blocks),
		"blocks":               blockRows,
	}
}

// Rank maps a complexity score to its letter band A-F.
func Rank(complexity int) string {
	switch {
	case complexity < rankBMin:
		return "A"
	case complexity < rankCMin:
		return "B"
	case complexity < rankDMin:
		return "C"
	case complexity < rankEMin:
		return "D"
	case complexity < rankFMin:
		return "E"
	default:
		return "F"
	}
}

// rankColors maps rank letters to their display color.
//
//nolint:gochecknoglobals // Static display table.
var rankColors = map[string]*color.Color{
	"A": color.New(color.FgGreen),
	"B": color.New(color.FgGreen),
	"C": color.New(color.FgYellow),
	"D": color.New(color.FgYellow),
	"E": color.New(color.FgRed),
	"F": color.New(color.FgRed),
}

// ColorRank returns the rank letter wrapped in its display color. Coloring
// follows the global color settings, so piped output stays plain.
func ColorRank(rank string) string {
	if c, ok := rankColors[rank]; ok {
		return c.Sprint(rank)
	}

	return rank
}

// FormatReport formats complexity analysis results as human-readable text.
func (a *Analyzer) FormatReport(report analyze.Report, w io.Writer) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Block", "Position", "Complexity", "Rank"})

	blocks, _ := report["blocks"].([]map[string]any)
	for _, row := range blocks {
		rank, _ := row["rank"].(string)

		tw.AppendRow(table.Row{
			fmt.Sprintf("%v %v", row["letter"], row["fullname"]),
			fmt.Sprintf("%v:%v", row["line"], row["col"]),
			row["complexity"],
			ColorRank(rank),
		})
	}

	tw.AppendFooter(table.Row{"Total", "", report["total_complexity"], ""})
	tw.Render()

	return nil
}

// FormatReportJSON formats complexity analysis results as JSON.
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

// FormatReportYAML formats complexity analysis results as YAML.
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
