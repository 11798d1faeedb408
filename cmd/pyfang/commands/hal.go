package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/pyfang/internal/analyzers/halstead"
	"github.com/Sumatoshi-tech/pyfang/internal/config"
)

// HalCommand holds the flags for the hal command.
type HalCommand struct {
	configPath string
	format     string
	noColor    bool
}

// NewHalCommand creates and configures the hal command.
func NewHalCommand() *cobra.Command {
	cmd := &HalCommand{}

	cobraCmd := &cobra.Command{
		Use:   "hal [paths...]",
		Short: "Count Halstead operators and operands",
		Long:  "Report the four raw Halstead numbers (n1, n2, N1, N2) per Python file",
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.configPath, "config", "c", "", "Config file path (default: .pyfang.yaml)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: text, json, or yaml")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the hal command.
func (c *HalCommand) Run(cobraCmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return err
	}

	if c.format != "" {
		cfg.Format = c.format
	}

	cfg.NoColor = cfg.NoColor || c.noColor

	validateErr := cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	service := NewService(halstead.NewAnalyzer(), cfg)

	return service.Run(cobraCmd.Context(), args, cobraCmd.OutOrStdout())
}
