// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rasterizes PDF pages into numbered PNG files by delegating
// to an external tool (pdftoppm), either on the host or inside a container.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/skilltools/pkg/types"
)

// Job is a single backend invocation. Prefix is the output path prefix; the
// tool appends "-<page>.png" to it.
type Job struct {
	Input  string
	Prefix string
	DPI    int
}

// Backend runs the rasterization tool. Different backends (host pdftoppm,
// containerized pdftoppm) implement this interface. A failed run is reported
// as a *ProcessError.
type Backend interface {
	Name() string
	Rasterize(ctx context.Context, job Job) error
}

// ProcessError reports that the external rasterization tool could not be
// started or exited with a non-zero status.
type ProcessError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ProcessError) Unwrap() error { return e.Err }

// ExitCode returns the tool's exit status, or -1 when it never ran.
func (e *ProcessError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Rasterizer converts PDFs to page images with a Backend.
type Rasterizer struct {
	backend Backend
	log     zerolog.Logger
}

// NewRasterizer returns a Rasterizer that runs b.
func NewRasterizer(b Backend, log zerolog.Logger) *Rasterizer {
	return &Rasterizer{backend: b, log: log}
}

// Convert rasterizes every page of req.SourcePath into req.OutputDir and
// returns the produced image paths in page order. The output directory is
// created if needed. A backend failure is returned as-is (a *ProcessError)
// with no partial result; a run that produces no images returns an empty
// slice.
func (r *Rasterizer) Convert(ctx context.Context, req types.ConversionRequest) ([]string, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid conversion request: %w", err)
	}

	info, err := os.Stat(req.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading PDF %s: %w", req.SourcePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading PDF %s: is a directory", req.SourcePath)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", req.OutputDir, err)
	}

	stem := Stem(req.SourcePath)
	job := Job{
		Input:  req.SourcePath,
		Prefix: filepath.Join(req.OutputDir, stem),
		DPI:    req.DPI,
	}

	r.log.Debug().
		Str("backend", r.backend.Name()).
		Str("source", job.Input).
		Str("prefix", job.Prefix).
		Int("dpi", job.DPI).
		Msg("rasterizing")

	if err := r.backend.Rasterize(ctx, job); err != nil {
		return nil, err
	}

	pages, err := CollectPages(req.OutputDir, stem)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Int("pages", len(pages)).Str("output_dir", req.OutputDir).Msg("rasterized")
	return pages, nil
}

// Stem returns the base name of path without its extension. A leading dot
// does not start an extension: ".report" and ".pdf" are kept whole.
func Stem(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	return base
}

// CollectPages lists files in dir named "<stem>-<digits>.png", sorted
// lexicographically, as full paths. pdftoppm zero-pads page numbers to a
// common width, so lexicographic order is page order.
func CollectPages(dir, stem string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing output directory %s: %w", dir, err)
	}

	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(stem) + `-\d+\.png$`)
	pages := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		pages = append(pages, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(pages)
	return pages, nil
}
