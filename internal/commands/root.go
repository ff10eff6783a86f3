// Package commands implements the sld-extract CLI.
package commands

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/config"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/extract"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/llm"
	"github.com/PabloBotinGP/SLD-LLM-JSON/internal/observability"
)

const version = "1.0.0"

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "sld-extract",
	Short:   "Render solar installation diagrams and extract equipment metadata",
	Version: version,
	Long: `sld-extract renders PDF single-line diagrams to PNG images and extracts
structured equipment metadata (inverter, module, racking system) from them
using a hosted multimodal model.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger = observability.NewLogger(observability.LogConfig{
			Level:   level,
			Format:  cfg.Log.Format,
			Service: "sld-extract",
		})

		if noColor {
			color.NoColor = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newAPIClient builds the hosted-API client from the loaded configuration
func newAPIClient() (*llm.Client, error) {
	key, err := cfg.RequireAPIKey()
	if err != nil {
		return nil, err
	}
	return llm.NewClient(llm.Config{
		APIKey:  key,
		Model:   cfg.API.Model,
		BaseURL: cfg.API.BaseURL,
	}, logger)
}

// newRegistry wires every extraction strategy against the given client
func newRegistry(client *llm.Client) *extract.Registry {
	registry := extract.NewRegistry()
	registry.Register(extract.NewEquipmentExtractor(client, logger))
	registry.Register(extract.NewDescribeExtractor(client, logger))
	return registry
}
