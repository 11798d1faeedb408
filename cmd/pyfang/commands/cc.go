package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/analyze"
	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/cyclomatic"
	"github.com/Sumatoshi-tech/pyfang/internal/config"
	"github.com/Sumatoshi-tech/pyfang/pkg/pyast"
)

// CCCommand holds the flags for the cc command.
type CCCommand struct {
	configPath string
	format     string
	minRank    string
	noColor    bool
}

// NewCCCommand creates and configures the cc command.
func NewCCCommand() *cobra.Command {
	cmd := &CCCommand{}

	cobraCmd := &cobra.Command{
		Use:   "cc [paths...]",
		Short: "Compute cyclomatic complexity",
		Long:  "Compute cyclomatic complexity per function, method, and class for Python files",
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path (default: .pyfang.yaml)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: text, json, or yaml")
	cobraCmd.Flags().StringVarP(&cmd.minRank, "min-rank", "r", "", "Only show blocks ranked at or worse than this letter (A-F)")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the cc command.
func (c *CCCommand) Run(cobraCmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	if c.format != "" {
		cfg.Format = c.format
	}

	if c.minRank != "" {
		cfg.MinRank = c.minRank
	}

	cfg.NoColor = cfg.NoColor || c.noColor

	validateErr := cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	service := NewService(&rankFilteredAnalyzer{
		Analyzer: cyclomatic.NewAnalyzer(),
		minRank:  cfg.MinRank,
	}, cfg)

	return service.Run(cobraCmd.Context(), args, cobraCmd.OutOrStdout())
}

// rankFilteredAnalyzer drops blocks ranked better than the configured
// minimum from the report. The aggregate numbers stay untouched.
type rankFilteredAnalyzer struct {
	*cyclomatic.Analyzer

	minRank string
}

// Analyze runs the wrapped analyzer and filters the block rows.
func (a *rankFilteredAnalyzer) Analyze(root *pyast.Node) (analyze.Report, error) {
	report, err := a.Analyzer.Analyze(root)
	if err != nil {
		return nil, err
	}

	blocks, ok := report["blocks"].([]map[string]any)
	if !ok || a.minRank == "" || a.minRank == "A" {
		return report, nil
	}

	filtered := make([]map[string]any, 0, len(blocks))

	for _, row := range blocks {
		rank, _ := row["rank"].(string)
		if rank >= a.minRank {
			filtered = append(filtered, row)
		}
	}

	report["blocks"] = filtered

	return report, nil
}
