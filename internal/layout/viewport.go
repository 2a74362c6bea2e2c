package layout

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"

	"github.com/christophergentle/perfgraph/internal/style"
)

// Subplot fractions of the figure occupied by the plot frame
const (
	frameLeft   = 0.125
	frameRight  = 0.9
	frameBottom = 0.11
	frameTop    = 0.88

	dataMargin = 0.05
	maxYTicks  = 8
)

// Viewport maps data coordinates into canvas pixels. The canvas is the
// figure plus a one-inch gutter on every side; the frame is the plotting
// rectangle inside the figure.
type Viewport struct {
	CanvasWidth, CanvasHeight int
	// Figure rectangle within the canvas
	FigureX, FigureY, FigureWidth, FigureHeight float64
	// Frame rectangle within the canvas
	FrameX, FrameY, FrameWidth, FrameHeight float64

	X, Y scale.Linear // data limits mapped onto [0, 1]
}

func newViewport(p style.Profile, xmin, xmax, ymin, ymax float64) Viewport {
	fw, fh := p.PixelSize()
	gutter := math.Round(p.DPI)

	v := Viewport{
		CanvasWidth:  fw + 2*int(gutter),
		CanvasHeight: fh + 2*int(gutter),
		FigureX:      gutter,
		FigureY:      gutter,
		FigureWidth:  float64(fw),
		FigureHeight: float64(fh),
	}
	v.FrameX = v.FigureX + frameLeft*v.FigureWidth
	v.FrameY = v.FigureY + (1-frameTop)*v.FigureHeight
	v.FrameWidth = (frameRight - frameLeft) * v.FigureWidth
	v.FrameHeight = (frameTop - frameBottom) * v.FigureHeight

	xlo, xhi := padLimits(xmin, xmax, 0.5)
	ylo, yhi := padLimits(ymin, ymax, math.Max(math.Abs(ymin)*dataMargin, 0.5))
	v.X = scale.Linear{Min: xlo, Max: xhi}
	v.Y = scale.Linear{Min: ylo, Max: yhi}
	return v
}

// padLimits widens [lo, hi] by the data margin on both sides, or by
// flat when the range is empty.
func padLimits(lo, hi, flat float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		return lo - flat, hi + flat
	}
	return lo - span*dataMargin, hi + span*dataMargin
}

// PixelX maps a data x coordinate to a canvas column
func (v Viewport) PixelX(x float64) float64 {
	return v.FrameX + v.X.Map(x)*v.FrameWidth
}

// PixelY maps a data y coordinate to a canvas row; larger values are higher
func (v Viewport) PixelY(y float64) float64 {
	return v.FrameY + v.FrameHeight - v.Y.Map(y)*v.FrameHeight
}

// ToPixel maps a data point to canvas pixels
func (v Viewport) ToPixel(pt Point) Point {
	return Point{X: v.PixelX(pt.X), Y: v.PixelY(pt.Y)}
}

// yTicks returns "nice" ticks inside the y limits
func (v Viewport) yTicks() []float64 {
	o := scale.TickOptions{Max: maxYTicks, MinLevel: -40, MaxLevel: 40}
	level, ok := o.FindLevel(&v.Y, 0)
	if !ok {
		return []float64{v.Y.Min, v.Y.Max}
	}
	return v.Y.TicksAtLevel(level).([]float64)
}

func formatTick(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	return fmt.Sprintf("%.6g", v)
}
