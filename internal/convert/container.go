// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/pdiddy/skilltools/internal/container"
)

const (
	mountIn  = "/in"
	mountOut = "/out"
)

// ContainerBackend runs pdftoppm inside a poppler image. The source PDF's
// directory is mounted read-only at /in and the output directory at /out.
type ContainerBackend struct {
	runtime container.Runtime
	image   string
}

// NewContainerBackend creates a backend that uses rt to run image. It
// verifies that the image exists locally before returning.
func NewContainerBackend(rt container.Runtime, image string) (*ContainerBackend, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("poppler image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerBackend{runtime: rt, image: image}, nil
}

func (b *ContainerBackend) Name() string {
	return toolPdftoppm + " (" + b.runtime.Name() + ")"
}

// Rasterize runs pdftoppm in the container with the job's paths translated
// to their mount points.
func (b *ContainerBackend) Rasterize(ctx context.Context, job Job) error {
	inDir, err := filepath.Abs(filepath.Dir(job.Input))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", job.Input, err)
	}
	outDir, err := filepath.Abs(filepath.Dir(job.Prefix))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", job.Prefix, err)
	}

	args := append([]string{toolPdftoppm}, pdftoppmArgs(
		path.Join(mountIn, filepath.Base(job.Input)),
		path.Join(mountOut, filepath.Base(job.Prefix)),
		job.DPI,
	)...)
	spec := container.RunSpec{
		Image: b.image,
		Mounts: []container.Mount{
			{Source: inDir, Target: mountIn, ReadOnly: true},
			{Source: outDir, Target: mountOut},
		},
		Args: args,
	}

	var stderr bytes.Buffer
	if err := b.runtime.Run(ctx, spec, &stderr); err != nil {
		return &ProcessError{Tool: b.runtime.Name(), Args: args, Stderr: stderr.String(), Err: err}
	}
	return nil
}
