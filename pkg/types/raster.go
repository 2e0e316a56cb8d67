// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ConversionRequest describes one PDF-to-PNG rasterization run.
type ConversionRequest struct {
	// SourcePath is the PDF to rasterize. It must exist.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputDir receives the page images. It is created if absent; empty means ".".
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DPI is the output resolution; zero means DefaultDPI.
	DPI int `json:"dpi" yaml:"dpi"`
}

// WithDefaults returns a copy of the request with empty fields filled in.
func (r ConversionRequest) WithDefaults() ConversionRequest {
	if r.OutputDir == "" {
		r.OutputDir = "."
	}
	if r.DPI == 0 {
		r.DPI = DefaultDPI
	}
	return r
}

// Validate checks that the request can be executed.
func (r ConversionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SourcePath, validation.Required),
		validation.Field(&r.OutputDir, validation.Required),
		validation.Field(&r.DPI, validation.Required, validation.Min(1)),
	)
}
