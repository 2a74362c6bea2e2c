package render

import (
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/christophergentle/perfgraph/internal/style"
)

// faces holds the font faces of one render, sized for the profile DPI
type faces struct {
	tick, axisLabel, annotation, title font.Face
}

func loadFaces(p style.Profile) (*faces, error) {
	regular, err := fontLoader(p, p.FontPath, goregular.TTF)
	if err != nil {
		return nil, err
	}
	bold, err := fontLoader(p, p.BoldFontPath, gobold.TTF)
	if err != nil {
		return nil, err
	}

	f := &faces{}
	for _, face := range []struct {
		dst  *font.Face
		load func(float64) (font.Face, error)
		size float64
	}{
		{&f.tick, regular, p.TickFontSize},
		{&f.axisLabel, regular, p.AxisLabelFontSize},
		{&f.annotation, regular, p.AnnotationFontSize},
		{&f.title, bold, p.TitleFontSize},
	} {
		if *face.dst, err = face.load(face.size); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// fontLoader returns a face constructor for a TrueType file, or for the
// embedded fallback font when path is empty.
func fontLoader(p style.Profile, path string, fallback []byte) (func(float64) (font.Face, error), error) {
	if path != "" {
		return func(points float64) (font.Face, error) {
			// gg loads at 72 DPI, so ask for the pixel size directly
			return gg.LoadFontFace(path, p.Pixels(points))
		}, nil
	}

	ttf, err := truetype.Parse(fallback)
	if err != nil {
		return nil, err
	}
	return func(points float64) (font.Face, error) {
		return truetype.NewFace(ttf, &truetype.Options{
			Size:    points,
			DPI:     p.DPI,
			Hinting: font.HintingFull,
		}), nil
	}, nil
}
