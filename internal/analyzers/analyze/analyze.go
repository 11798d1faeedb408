// Package analyze defines the shared contracts between the metric engines
// and the surfaces that consume them.
package analyze

import (
	"io"

	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// Report is a generic analysis result keyed by metric name.
type Report map[string]any

// Thresholds maps metric names to color-coded threshold values.
type Thresholds map[string]map[string]int

// StaticAnalyzer is the interface every metric analyzer implements.
type StaticAnalyzer interface {
	// Name returns the analyzer name.
	Name() string

	// Flag returns the CLI flag for the analyzer.
	Flag() string

	// Description returns the analyzer description.
	Description() string

	// Thresholds returns the color-coded thresholds for the analyzer's metrics.
	Thresholds() Thresholds

	// Analyze runs the analyzer over an already-parsed tree.
	Analyze(root *pyast.Node) (Report, error)

	// FormatReport writes human-readable text output.
	FormatReport(report Report, w io.Writer) error

	// FormatReportJSON writes the report as JSON.
	FormatReportJSON(report Report, w io.Writer) error

	// FormatReportYAML writes the report as YAML.
	FormatReportYAML(report Report, w io.Writer) error
}
