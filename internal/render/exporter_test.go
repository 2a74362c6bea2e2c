package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christophergentle/perfgraph/internal/axis"
	"github.com/christophergentle/perfgraph/internal/layout"
	"github.com/christophergentle/perfgraph/internal/series"
	"github.com/christophergentle/perfgraph/internal/style"
)

func testGeometry(t *testing.T, strategy axis.Strategy, p style.Profile) layout.Geometry {
	t.Helper()
	s, err := series.Load([]series.Sample{
		{Date: "2026-01-04", Value: 294.24, Label: "Initial Parallel Model"},
		{Date: "2026-01-05", Value: 248.14, Label: "Action Pruning"},
		{Date: "2026-01-06", Value: 65.3, Label: "Wordle LUT"},
		{Date: "2026-01-19", Value: 55.89, Label: "FastBitset Iterator"},
	})
	require.NoError(t, err)
	m, err := axis.Map(s, strategy)
	require.NoError(t, err)
	return layout.Layout(s, m, p)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRenderWritesCroppedPNG(t *testing.T) {
	for _, strategy := range []axis.Strategy{axis.Ordinal, axis.Temporal} {
		t.Run(strategy.String(), func(t *testing.T) {
			p := style.Dark()
			g := testGeometry(t, strategy, p)
			out := filepath.Join(t.TempDir(), "performance_graph.png")

			var saved []string
			exporter := NewExporter(ReporterFunc(func(path string) { saved = append(saved, path) }))
			require.NoError(t, exporter.Render(g, p, out))

			assert.Equal(t, []string{out}, saved)

			img := decodePNG(t, out)
			b := img.Bounds()
			assert.Greater(t, b.Dx(), 500)
			assert.Greater(t, b.Dy(), 300)
			assert.Less(t, b.Dx(), g.Viewport.CanvasWidth)
			assert.Less(t, b.Dy(), g.Viewport.CanvasHeight)

			// Transparent background survives in the crop padding
			_, _, _, a := img.At(b.Min.X, b.Min.Y).RGBA()
			assert.Zero(t, a)
		})
	}
}

func TestRenderOpaqueBackground(t *testing.T) {
	p := style.Light()
	g := testGeometry(t, axis.Ordinal, p)
	out := filepath.Join(t.TempDir(), "light.png")

	require.NoError(t, NewExporter(nil).Render(g, p, out))

	img := decodePNG(t, out)
	r, gr, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), a)
	assert.Equal(t, []uint32{0xffff, 0xffff, 0xffff}, []uint32{r, gr, b})
}

func TestRenderOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "graph.png")
	require.NoError(t, os.WriteFile(out, []byte("stale"), 0644))

	p := style.Dark()
	require.NoError(t, NewExporter(nil).Render(testGeometry(t, axis.Ordinal, p), p, out))
	decodePNG(t, out)

	// No temporary files are left next to the output
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderIsDeterministic(t *testing.T) {
	p := style.Dark()
	g := testGeometry(t, axis.Temporal, p)
	exporter := NewExporter(nil)

	a, err := exporter.Encode(g, p)
	require.NoError(t, err)
	b, err := exporter.Encode(g, p)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestRenderUnwritablePath(t *testing.T) {
	p := style.Dark()
	out := filepath.Join(t.TempDir(), "missing", "graph.png")

	called := false
	err := NewExporter(ReporterFunc(func(string) { called = true })).Render(testGeometry(t, axis.Ordinal, p), p, out)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, out, ioErr.Path)
	assert.False(t, called)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderInvalidProfile(t *testing.T) {
	p := style.Dark()
	g := testGeometry(t, axis.Ordinal, p)
	out := filepath.Join(t.TempDir(), "graph.png")

	p.DPI = 0
	err := NewExporter(nil).Render(g, p, out)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr), "got %v", err)
	assert.Equal(t, "validate profile", renderErr.Op)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderMissingFontFile(t *testing.T) {
	p := style.Dark()
	p.FontPath = filepath.Join(t.TempDir(), "nope.ttf")
	g := testGeometry(t, axis.Ordinal, p)

	err := NewExporter(nil).Render(g, p, filepath.Join(t.TempDir(), "graph.png"))

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr), "got %v", err)
	assert.Equal(t, "load fonts", renderErr.Op)
}

func TestCropTight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	img.Set(30, 20, color.White)
	img.Set(60, 50, color.White)

	out := cropTight(img, color.Transparent, 5)
	assert.Equal(t, image.Rect(0, 0, 41, 41), out.Bounds())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, out.RGBAAt(35, 35))

	// Padding is clipped to the canvas
	img.Set(0, 0, color.White)
	out = cropTight(img, color.Transparent, 5)
	assert.Equal(t, image.Rect(0, 0, 66, 56), out.Bounds())

	// A blank canvas is kept whole
	blank := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Equal(t, blank.Bounds(), cropTight(blank, color.Transparent, 2).Bounds())
}

func TestLogReporter(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogReporter{Logger: logger}.Saved("performance_graph.png")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "Graph saved as performance_graph.png", entry.Message)
	assert.Equal(t, "performance_graph.png", entry.Data["path"])
}
