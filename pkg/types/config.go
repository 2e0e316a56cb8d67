// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RasterBackend identifies where the rasterization tool runs.
type RasterBackend string

const (
	// BackendLocal runs pdftoppm from the host PATH.
	BackendLocal RasterBackend = "local"
	// BackendContainer runs pdftoppm inside a poppler image via docker or podman.
	BackendContainer RasterBackend = "container"
)

const (
	// DefaultDPI is the rasterization resolution used when none is given.
	DefaultDPI = 150
	// DefaultMaxBodyLines is the body line ceiling for skill files.
	DefaultMaxBodyLines = 500
	// DefaultPopplerImage is the container image used by the container backend.
	DefaultPopplerImage = "poppler-utils:latest"
)

// RasterConfig holds settings for the convert command.
type RasterConfig struct {
	// DPI is the output resolution passed to the rasterizer (default 150).
	DPI int `json:"dpi" yaml:"dpi" mapstructure:"dpi"`

	// Backend selects the rasterizer backend: local or container.
	Backend RasterBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Image is the poppler image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Timeout bounds a single rasterization run. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Validate checks the raster settings.
func (c RasterConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DPI, validation.Required, validation.Min(1)),
		validation.Field(&c.Backend, validation.Required, validation.In(BackendLocal, BackendContainer)),
		validation.Field(&c.Image, validation.When(c.Backend == BackendContainer, validation.Required)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// ValidationConfig holds settings for the validate command.
type ValidationConfig struct {
	// MaxBodyLines is the largest body line count accepted (default 500).
	MaxBodyLines int `json:"max_body_lines" yaml:"max_body_lines" mapstructure:"max_body_lines"`
}

// Validate checks the validation settings.
func (c ValidationConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MaxBodyLines, validation.Required, validation.Min(1)),
	)
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// NoColor disables ANSI colors in console output.
	NoColor bool `json:"no_color" yaml:"no_color" mapstructure:"no_color"`

	// Timestamp prefixes each log line with the time.
	Timestamp bool `json:"timestamp" yaml:"timestamp" mapstructure:"timestamp"`
}

// Validate checks the log settings.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("trace", "debug", "info", "warn", "error", "disabled")),
	)
}

// ToolsConfig groups all command configurations.
type ToolsConfig struct {
	Raster     RasterConfig     `json:"raster" yaml:"raster" mapstructure:"raster"`
	Validation ValidationConfig `json:"validation" yaml:"validation" mapstructure:"validation"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultToolsConfig returns the configuration used when no file or flag
// overrides a value.
func DefaultToolsConfig() ToolsConfig {
	return ToolsConfig{
		Raster: RasterConfig{
			DPI:     DefaultDPI,
			Backend: BackendLocal,
			Image:   DefaultPopplerImage,
		},
		Validation: ValidationConfig{
			MaxBodyLines: DefaultMaxBodyLines,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Validate checks every section.
func (c ToolsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Raster),
		validation.Field(&c.Validation),
		validation.Field(&c.Log),
	)
}
