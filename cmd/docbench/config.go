package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docbench/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the merged configuration (defaults overridden by the
config file and environment) as YAML, in the layout the config file uses.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	out, err := yaml.Marshal(effectiveConfig())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

// effectiveConfig assembles the per-stage settings each command resolves
// individually into a single pipeline view.
func effectiveConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Chunking:   chunkingFromConfig(),
		Thresholds: thresholdsFromConfig(),
		Conversion: conversionFromConfig(),
		Bench:      benchFromConfig(),
	}
}

// conversionFromConfig returns the conversion settings, with any values
// present in the config file overriding the defaults (markitdown, output
// directory "markdown").
func conversionFromConfig() types.ConversionConfig {
	cfg := types.ConversionConfig{
		Backend:   types.ConversionBackend(viper.GetString("conversion.backend")),
		OutputDir: viper.GetString("conversion.output_dir"),
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendMarkitdown
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "markdown"
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(configCmd)
}
