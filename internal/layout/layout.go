// Package layout turns a series and its axis mapping into drawable
// geometry: the line path, the markers, the annotation placements and the
// data-to-pixel transform the exporter draws with.
//
// Annotations are placed with a fixed offset and no collision avoidance;
// labels of neighbouring samples may overlap.
package layout

import (
	"math"

	"github.com/christophergentle/perfgraph/internal/axis"
	"github.com/christophergentle/perfgraph/internal/series"
	"github.com/christophergentle/perfgraph/internal/style"
)

// Point is a coordinate pair, in data or pixel space depending on context
type Point struct {
	X, Y float64
}

// Annotation is a label attached to a marker. Anchor is the marker in
// canvas pixels; the offset is in pixels with up as positive Y.
type Annotation struct {
	AnchorX, AnchorY float64
	OffsetX, OffsetY float64
	Text             string
}

// TextPosition returns the canvas pixel where the label text starts
func (a Annotation) TextPosition() (x, y float64) {
	return a.AnchorX + a.OffsetX, a.AnchorY - a.OffsetY
}

// Geometry is everything the exporter needs to draw one chart
type Geometry struct {
	Polyline    []Point // data space, series order
	Markers     []Point // data space, series order
	Annotations []Annotation

	XTicks        []axis.Tick
	YTicks        []axis.Tick
	LabelRotation float64
	LabelAlign    float64

	Viewport Viewport
}

// Layout computes the geometry of s under mapping m at the size and
// offsets of p. The path joins samples in input order, so an out-of-order
// series draws a self-intersecting line. An empty series yields an empty
// frame around the origin.
func Layout(s series.Series, m axis.Mapping, p style.Profile) Geometry {
	n := s.Len()
	g := Geometry{
		Polyline:      make([]Point, n),
		Markers:       make([]Point, n),
		Annotations:   make([]Annotation, n),
		XTicks:        append([]axis.Tick(nil), m.Ticks...),
		LabelRotation: m.LabelRotation,
		LabelAlign:    m.LabelAlign,
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		pt := Point{X: m.Positions[i], Y: s.At(i).Value}
		g.Polyline[i] = pt
		g.Markers[i] = pt

		xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
		ymin, ymax = math.Min(ymin, pt.Y), math.Max(ymax, pt.Y)
	}
	if n == 0 {
		xmin, xmax, ymin, ymax = 0, 0, 0, 0
	}
	g.Viewport = newViewport(p, xmin, xmax, ymin, ymax)

	dx, dy := p.Pixels(p.AnnotationOffsetX), p.Pixels(p.AnnotationOffsetY)
	for i, pt := range g.Markers {
		anchor := g.Viewport.ToPixel(pt)
		g.Annotations[i] = Annotation{
			AnchorX: anchor.X,
			AnchorY: anchor.Y,
			OffsetX: dx,
			OffsetY: dy,
			Text:    s.At(i).Label,
		}
	}

	for _, y := range g.Viewport.yTicks() {
		g.YTicks = append(g.YTicks, axis.Tick{Position: y, Label: formatTick(y)})
	}
	return g
}
