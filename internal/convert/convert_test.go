// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/skilltools/pkg/types"
)

// fakeBackend implements Backend for testing. It writes one empty PNG per
// page in reverse order, the way a real tool may finish pages out of order,
// or fails with err.
type fakeBackend struct {
	pages int
	width int
	err   error

	jobs []Job
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Rasterize(_ context.Context, job Job) error {
	f.jobs = append(f.jobs, job)
	if f.err != nil {
		return f.err
	}
	for p := f.pages; p >= 1; p-- {
		name := fmt.Sprintf("%s-%0*d.png", job.Prefix, f.width, p)
		if err := os.WriteFile(name, []byte("png"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// setupPDF creates a temporary PDF file and returns its path and the temp dir.
func setupPDF(t *testing.T, name string) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	pdfPath = filepath.Join(tmpDir, name)
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.7 fake"), 0o644))
	return pdfPath, tmpDir
}

func TestConvert_ReturnsPagesInOrder(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, "report.pdf")
	outDir := filepath.Join(tmpDir, "out", "nested")
	backend := &fakeBackend{pages: 12, width: 2}

	pages, err := NewRasterizer(backend, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: pdfPath,
		OutputDir:  outDir,
	})
	require.NoError(t, err)

	require.Len(t, pages, 12)
	for i, p := range pages {
		assert.Equal(t, filepath.Join(outDir, fmt.Sprintf("report-%02d.png", i+1)), p)
	}

	require.Len(t, backend.jobs, 1)
	assert.Equal(t, filepath.Join(outDir, "report"), backend.jobs[0].Prefix)
	assert.Equal(t, types.DefaultDPI, backend.jobs[0].DPI)
}

func TestConvert_ExistingNonEmptyOutputDir(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, "slides.pdf")
	outDir := filepath.Join(tmpDir, "out")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	for _, name := range []string{"notes.txt", "other-1.png", "slides-cover.png", "slides-1.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(outDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(outDir, "slides-9.png"), 0o755))

	pages, err := NewRasterizer(&fakeBackend{pages: 3, width: 1}, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: pdfPath,
		OutputDir:  outDir,
		DPI:        300,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "slides-1.png"),
		filepath.Join(outDir, "slides-2.png"),
		filepath.Join(outDir, "slides-3.png"),
	}, pages)
}

func TestConvert_NoPagesIsEmptyNotError(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, "empty.pdf")

	pages, err := NewRasterizer(&fakeBackend{}, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: pdfPath,
		OutputDir:  tmpDir,
	})
	require.NoError(t, err)
	assert.NotNil(t, pages)
	assert.Empty(t, pages)
}

func TestConvert_BackendFailure(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, "broken.pdf")
	backend := &fakeBackend{err: &ProcessError{
		Tool:   "pdftoppm",
		Args:   []string{"-png"},
		Stderr: "Syntax Error: Couldn't find trailer dictionary",
		Err:    errors.New("exit status 99"),
	}}

	pages, err := NewRasterizer(backend, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: pdfPath,
		OutputDir:  tmpDir,
	})
	require.Error(t, err)
	assert.Nil(t, pages)

	var pe *ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "pdftoppm", pe.Tool)
	assert.Equal(t, -1, pe.ExitCode())
	assert.Contains(t, err.Error(), "trailer dictionary")
}

func TestConvert_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	backend := &fakeBackend{pages: 1, width: 1}

	_, err := NewRasterizer(backend, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: filepath.Join(tmpDir, "missing.pdf"),
		OutputDir:  outDir,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Empty(t, backend.jobs)
	assert.NoDirExists(t, outDir)
}

func TestConvert_InvalidRequest(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, "doc.pdf")
	tests := []struct {
		name string
		req  types.ConversionRequest
	}{
		{name: "negative dpi", req: types.ConversionRequest{SourcePath: pdfPath, OutputDir: tmpDir, DPI: -72}},
		{name: "no source", req: types.ConversionRequest{OutputDir: tmpDir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			_, err := NewRasterizer(backend, zerolog.Nop()).Convert(context.Background(), tt.req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid conversion request")
			assert.Empty(t, backend.jobs)
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "report", Stem("/tmp/docs/report.pdf"))
	assert.Equal(t, "v1.2-notes", Stem("v1.2-notes.pdf"))
	assert.Equal(t, "README", Stem("README"))
	assert.Equal(t, ".report", Stem(".report"))
	assert.Equal(t, ".pdf", Stem(".pdf"))
	assert.Equal(t, ".report", Stem("/docs/.report.pdf"))
}

func TestConvert_DotNamedSourceStaysInOutputDir(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t, ".report")
	outDir := filepath.Join(tmpDir, "out")
	backend := &fakeBackend{pages: 2, width: 1}

	pages, err := NewRasterizer(backend, zerolog.Nop()).Convert(context.Background(), types.ConversionRequest{
		SourcePath: pdfPath,
		OutputDir:  outDir,
	})
	require.NoError(t, err)

	require.Len(t, backend.jobs, 1)
	assert.Equal(t, filepath.Join(outDir, ".report"), backend.jobs[0].Prefix)
	assert.Equal(t, []string{
		filepath.Join(outDir, ".report-1.png"),
		filepath.Join(outDir, ".report-2.png"),
	}, pages)
	assert.NoFileExists(t, filepath.Join(tmpDir, "out-1.png"))
}

func TestCollectPages_QuotesStem(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a+b-1.png", "aab-1.png", "a+b-10.png", "a+b-2.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	pages, err := CollectPages(dir, "a+b")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a+b-1.png"),
		filepath.Join(dir, "a+b-10.png"),
		filepath.Join(dir, "a+b-2.png"),
	}, pages)
}
