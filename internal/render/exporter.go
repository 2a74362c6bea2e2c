// Package render draws chart geometry with gg and writes it as a PNG.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/christophergentle/perfgraph/internal/layout"
	"github.com/christophergentle/perfgraph/internal/style"
)

// Lengths in points, matching common plotting defaults
const (
	tickLength   = 3.5
	tickPad      = 3.5
	labelPad     = 4.0
	frameWidth   = 0.8
	leaderWidth  = 1.0
	tightCropPad = 0.1 * 72 // 0.1 inch
)

// Exporter renders geometry to image files
type Exporter struct {
	reporter Reporter
}

// NewExporter creates an exporter that announces written files to
// reporter. A nil reporter discards the announcements.
func NewExporter(reporter Reporter) *Exporter {
	if reporter == nil {
		reporter = discardReporter{}
	}
	return &Exporter{reporter: reporter}
}

// Render draws g with profile p and writes the PNG to outputPath,
// replacing any existing file. Either the complete image is written or
// nothing is.
func (e *Exporter) Render(g layout.Geometry, p style.Profile, outputPath string) error {
	data, err := e.Encode(g, p)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(outputPath, data); err != nil {
		return &IOError{Path: outputPath, Err: err}
	}

	e.reporter.Saved(outputPath)
	return nil
}

// Encode draws g with profile p and returns the cropped PNG bytes
func (e *Exporter) Encode(g layout.Geometry, p style.Profile) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, &RenderError{Op: "validate profile", Err: err}
	}
	v := g.Viewport
	if v.CanvasWidth <= 0 || v.CanvasHeight <= 0 {
		return nil, &RenderError{Op: "create canvas", Err: fmt.Errorf("invalid canvas size %dx%d", v.CanvasWidth, v.CanvasHeight)}
	}

	fonts, err := loadFaces(p)
	if err != nil {
		return nil, &RenderError{Op: "load fonts", Err: err}
	}

	dc := gg.NewContext(v.CanvasWidth, v.CanvasHeight)

	// Fill background
	var background color.Color = color.Transparent
	if !p.Transparent {
		background = p.Background
		dc.SetColor(background)
		dc.Clear()
	}

	c := &canvas{dc: dc, p: p, faces: fonts, v: v}
	c.drawGrid(g)
	c.drawFrame(g)
	c.drawSeries(g)
	c.drawAnnotations(g)
	c.drawLabels(g)

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, &RenderError{Op: "read canvas", Err: fmt.Errorf("unexpected image type %T", dc.Image())}
	}
	cropped := cropTight(img, background, int(math.Ceil(p.Pixels(tightCropPad))))

	var buf bytes.Buffer
	if err := gg.NewContextForRGBA(cropped).EncodePNG(&buf); err != nil {
		return nil, &RenderError{Op: "encode PNG", Err: err}
	}
	return buf.Bytes(), nil
}

// canvas bundles the state of one render
type canvas struct {
	dc    *gg.Context
	p     style.Profile
	faces *faces
	v     layout.Viewport
}

func (c *canvas) px(points float64) float64 {
	return c.p.Pixels(points)
}

func (c *canvas) frameBottom() float64 {
	return c.v.FrameY + c.v.FrameHeight
}

// visibleX reports whether a data x coordinate falls inside the x limits
func (c *canvas) visibleX(x float64) bool {
	return x >= c.v.X.Min && x <= c.v.X.Max
}

// drawGrid draws the dashed, translucent grid at every tick
func (c *canvas) drawGrid(g layout.Geometry) {
	dc := c.dc
	dc.SetColor(c.p.GridColor.WithAlpha(c.p.GridAlpha))
	dc.SetLineWidth(c.px(c.p.GridLineWidth))

	dashes := make([]float64, len(c.p.GridDash))
	for i, d := range c.p.GridDash {
		dashes[i] = c.px(d)
	}
	dc.SetDash(dashes...)

	for _, tick := range g.XTicks {
		if !c.visibleX(tick.Position) {
			continue
		}
		x := c.v.PixelX(tick.Position)
		dc.DrawLine(x, c.v.FrameY, x, c.frameBottom())
		dc.Stroke()
	}
	for _, tick := range g.YTicks {
		y := c.v.PixelY(tick.Position)
		dc.DrawLine(c.v.FrameX, y, c.v.FrameX+c.v.FrameWidth, y)
		dc.Stroke()
	}

	dc.SetDash() // Reset dash pattern
}

// drawFrame draws the axes rectangle and the outward tick marks
func (c *canvas) drawFrame(g layout.Geometry) {
	dc := c.dc
	dc.SetColor(c.p.TextColor)
	dc.SetLineWidth(c.px(frameWidth))

	dc.DrawRectangle(c.v.FrameX, c.v.FrameY, c.v.FrameWidth, c.v.FrameHeight)
	dc.Stroke()

	for _, tick := range g.XTicks {
		if !c.visibleX(tick.Position) {
			continue
		}
		x := c.v.PixelX(tick.Position)
		dc.DrawLine(x, c.frameBottom(), x, c.frameBottom()+c.px(tickLength))
		dc.Stroke()
	}
	for _, tick := range g.YTicks {
		y := c.v.PixelY(tick.Position)
		dc.DrawLine(c.v.FrameX-c.px(tickLength), y, c.v.FrameX, y)
		dc.Stroke()
	}
}

// drawSeries draws the line through the samples in input order, then the markers
func (c *canvas) drawSeries(g layout.Geometry) {
	dc := c.dc
	dc.SetColor(c.p.LineColor)
	dc.SetLineWidth(c.px(c.p.LineWidth))
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)

	for i, pt := range g.Polyline {
		p := c.v.ToPixel(pt)
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.Stroke()

	radius := c.px(c.p.MarkerSize) / 2
	for _, pt := range g.Markers {
		p := c.v.ToPixel(pt)
		dc.DrawCircle(p.X, p.Y, radius)
		dc.Fill()
	}
}

// drawAnnotations draws each label with a leader line back to its marker
func (c *canvas) drawAnnotations(g layout.Geometry) {
	dc := c.dc
	dc.SetFontFace(c.faces.annotation)
	dc.SetLineWidth(c.px(leaderWidth))

	for _, a := range g.Annotations {
		x, y := a.TextPosition()

		dc.SetColor(c.p.LeaderColor)
		dc.DrawLine(a.AnchorX, a.AnchorY, x, y)
		dc.Stroke()

		dc.SetColor(c.p.AnnotationColor)
		dc.DrawStringAnchored(a.Text, x, y, 0, 0)
	}
}

// drawLabels draws tick labels, axis labels and the title
func (c *canvas) drawLabels(g layout.Geometry) {
	dc := c.dc
	dc.SetColor(c.p.TextColor)
	centerX := c.v.FrameX + c.v.FrameWidth/2

	// X tick labels, rotated about their anchor below the tick
	dc.SetFontFace(c.faces.tick)
	labelY := c.frameBottom() + c.px(tickLength+tickPad)
	theta := g.LabelRotation * math.Pi / 180
	xExtent := 0.0
	for _, tick := range g.XTicks {
		if !c.visibleX(tick.Position) {
			continue
		}
		x := c.v.PixelX(tick.Position)
		dc.Push()
		dc.RotateAbout(-theta, x, labelY)
		dc.DrawStringAnchored(tick.Label, x, labelY, g.LabelAlign, 1)
		dc.Pop()

		w, h := dc.MeasureString(tick.Label)
		xExtent = math.Max(xExtent, w*math.Abs(math.Sin(theta))+h*math.Abs(math.Cos(theta)))
	}

	// Y tick labels
	labelX := c.v.FrameX - c.px(tickLength+tickPad)
	yExtent := 0.0
	for _, tick := range g.YTicks {
		dc.DrawStringAnchored(tick.Label, labelX, c.v.PixelY(tick.Position), 1, 0.5)
		w, _ := dc.MeasureString(tick.Label)
		yExtent = math.Max(yExtent, w)
	}

	// Axis labels
	dc.SetFontFace(c.faces.axisLabel)
	if c.p.XAxisLabel != "" {
		dc.DrawStringAnchored(c.p.XAxisLabel, centerX, labelY+xExtent+c.px(labelPad), 0.5, 1)
	}
	if c.p.YAxisLabel != "" {
		x := labelX - yExtent - c.px(labelPad)
		y := c.v.FrameY + c.v.FrameHeight/2
		dc.Push()
		dc.RotateAbout(-math.Pi/2, x, y)
		dc.DrawStringAnchored(c.p.YAxisLabel, x, y, 0.5, 0)
		dc.Pop()
	}

	// Draw title
	if c.p.TitleText != "" {
		dc.SetFontFace(c.faces.title)
		dc.DrawStringAnchored(c.p.TitleText, centerX, c.v.FrameY-c.px(c.p.TitlePad), 0.5, 0)
	}
}

// cropTight copies the smallest rectangle holding every pixel that differs
// from background, grown by pad pixels, into a new image at the origin.
func cropTight(img *image.RGBA, background color.Color, pad int) *image.RGBA {
	bg := color.RGBAModel.Convert(background).(color.RGBA)
	b := img.Bounds()
	content := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				content = content.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	if content.Empty() {
		content = b
	}
	content = content.Inset(-pad).Intersect(b)

	out := image.NewRGBA(image.Rect(0, 0, content.Dx(), content.Dy()))
	draw.Draw(out, out.Bounds(), img, content.Min, draw.Src)
	return out
}

// writeFileAtomic writes data next to path and renames it into place so a
// failed write never leaves a partial image behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
