// Package chart is the entry point of the rendering pipeline: a validated
// series is mapped onto an axis, laid out, and exported as one image.
package chart

import (
	"github.com/christophergentle/perfgraph/internal/axis"
	"github.com/christophergentle/perfgraph/internal/layout"
	"github.com/christophergentle/perfgraph/internal/render"
	"github.com/christophergentle/perfgraph/internal/series"
	"github.com/christophergentle/perfgraph/internal/style"
)

// DefaultOutputPath is where the image goes when no path is given
const DefaultOutputPath = "performance_graph.png"

// Renderer runs the pipeline. It holds no per-render state, so one
// Renderer can serve any number of independent renders.
type Renderer struct {
	exporter *render.Exporter
}

// New creates a Renderer that announces written files to reporter
func New(reporter render.Reporter) *Renderer {
	return &Renderer{exporter: render.NewExporter(reporter)}
}

// Build computes the axis mapping and geometry without drawing anything
func Build(s series.Series, strategy axis.Strategy, p style.Profile) (layout.Geometry, axis.Mapping, error) {
	m, err := axis.Map(s, strategy)
	if err != nil {
		return layout.Geometry{}, axis.Mapping{}, err
	}
	return layout.Layout(s, m, p), m, nil
}

// Render draws s on a strategy axis with profile p and writes the image to
// outputPath. It returns the geometry that was drawn.
func (r *Renderer) Render(s series.Series, strategy axis.Strategy, p style.Profile, outputPath string) (layout.Geometry, error) {
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}

	g, _, err := Build(s, strategy, p)
	if err != nil {
		return layout.Geometry{}, err
	}
	if err := r.exporter.Render(g, p, outputPath); err != nil {
		return layout.Geometry{}, err
	}
	return g, nil
}

// RenderSamples validates raw samples for strategy and renders them
func (r *Renderer) RenderSamples(samples []series.Sample, strategy axis.Strategy, p style.Profile, outputPath string) (layout.Geometry, error) {
	load := series.Load
	if strategy == axis.Temporal {
		load = series.LoadDated
	}
	s, err := load(samples)
	if err != nil {
		return layout.Geometry{}, err
	}
	return r.Render(s, strategy, p, outputPath)
}
