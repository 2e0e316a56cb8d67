// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the skilltools CLI: PDF page
// rasterization and skill file validation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/skilltools/internal/logging"
	"github.com/pdiddy/skilltools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// toolsCfg is the effective configuration, loaded before any subcommand runs.
	toolsCfg = types.DefaultToolsConfig()

	logger = zerolog.Nop()
)

// rootCmd is the base command for the skilltools CLI.
var rootCmd = &cobra.Command{
	Use:   "skilltools",
	Short: "Utilities for authoring skills: PDF rendering and SKILL.md checks",
	Long: `skilltools bundles two small utilities used when authoring skills.

convert renders the pages of a PDF into numbered PNG images with pdftoppm,
either from the host PATH or from a poppler container image. validate checks
that a skill file has frontmatter with a well-formed name and a description,
followed by a non-empty body of reasonable length.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		toolsCfg = cfg
		logger = logging.New(cfg.Log, os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info().Str("file", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./skilltools.yaml or ~/.config/skilltools/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "diagnostic log level: trace, debug, info, warn, error, disabled")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// setDefaults registers every configuration key so that environment
// variables are picked up by Unmarshal even without a config file.
func setDefaults() {
	d := types.DefaultToolsConfig()
	viper.SetDefault("raster.dpi", d.Raster.DPI)
	viper.SetDefault("raster.backend", string(d.Raster.Backend))
	viper.SetDefault("raster.image", d.Raster.Image)
	viper.SetDefault("raster.timeout", d.Raster.Timeout)
	viper.SetDefault("validation.max_body_lines", d.Validation.MaxBodyLines)
	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.no_color", d.Log.NoColor)
	viper.SetDefault("log.timestamp", d.Log.Timestamp)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("skilltools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "skilltools"))
		}
	}

	viper.SetEnvPrefix("SKILLTOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}

// loadConfig decodes the merged viper settings (flags, env, file, defaults)
// and validates them.
func loadConfig() (types.ToolsConfig, error) {
	cfg := types.DefaultToolsConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
