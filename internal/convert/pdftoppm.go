// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strconv"
)

const toolPdftoppm = "pdftoppm"

// runFunc executes a command to completion, writing its stderr to stderr.
type runFunc func(ctx context.Context, name string, args []string, stderr io.Writer) error

func runCommand(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// PdftoppmBackend runs pdftoppm (poppler-utils) from the host PATH.
type PdftoppmBackend struct {
	bin string
	run runFunc
}

// NewPdftoppmBackend returns the host pdftoppm backend.
func NewPdftoppmBackend() *PdftoppmBackend {
	return &PdftoppmBackend{bin: toolPdftoppm, run: runCommand}
}

func (b *PdftoppmBackend) Name() string { return b.bin }

// Rasterize runs "pdftoppm -png -r <dpi> <input> <prefix>". A missing binary
// and a non-zero exit both come back as a *ProcessError.
func (b *PdftoppmBackend) Rasterize(ctx context.Context, job Job) error {
	args := pdftoppmArgs(job.Input, job.Prefix, job.DPI)

	var stderr bytes.Buffer
	if err := b.run(ctx, b.bin, args, &stderr); err != nil {
		return &ProcessError{Tool: b.bin, Args: args, Stderr: stderr.String(), Err: err}
	}
	return nil
}

func pdftoppmArgs(input, prefix string, dpi int) []string {
	return []string{"-png", "-r", strconv.Itoa(dpi), input, prefix}
}
