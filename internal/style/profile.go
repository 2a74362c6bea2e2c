// Package style holds the named visual profiles a chart is rendered with.
// A Profile is plain configuration; nothing here draws.
package style

import (
	"fmt"
	"sort"
	"strings"
)

// Theme sets the figure background and the default text color
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Profile holds every visual parameter of one render. Sizes given in
// points are converted to pixels at DPI.
type Profile struct {
	Name  string `yaml:"name"`
	Theme Theme  `yaml:"theme"`

	Background Color `yaml:"background"`
	TextColor  Color `yaml:"text_color"`

	LineColor  Color   `yaml:"line_color"`
	LineWidth  float64 `yaml:"line_width"`  // points
	MarkerSize float64 `yaml:"marker_size"` // marker diameter, points

	GridColor     Color     `yaml:"grid_color"`
	GridAlpha     float64   `yaml:"grid_alpha"`
	GridDash      []float64 `yaml:"grid_dash"` // on/off lengths, points
	GridLineWidth float64   `yaml:"grid_line_width"`

	AnnotationColor    Color   `yaml:"annotation_color"`
	LeaderColor        Color   `yaml:"leader_color"`
	AnnotationFontSize float64 `yaml:"annotation_font_size"`
	AnnotationOffsetX  float64 `yaml:"annotation_offset_x"` // points, right is positive
	AnnotationOffsetY  float64 `yaml:"annotation_offset_y"` // points, up is positive

	TitleText         string  `yaml:"title_text"`
	TitleFontSize     float64 `yaml:"title_font_size"`
	TitlePad          float64 `yaml:"title_pad"`
	YAxisLabel        string  `yaml:"y_axis_label"`
	XAxisLabel        string  `yaml:"x_axis_label"`
	AxisLabelFontSize float64 `yaml:"axis_label_font_size"`
	TickFontSize      float64 `yaml:"tick_font_size"`

	FigureWidth  float64 `yaml:"figure_width"`  // inches
	FigureHeight float64 `yaml:"figure_height"` // inches
	DPI          float64 `yaml:"dpi"`
	Transparent  bool    `yaml:"transparent"`

	// Optional TrueType files; the embedded Go fonts are used otherwise
	FontPath     string `yaml:"font_path"`
	BoldFontPath string `yaml:"bold_font_path"`
}

// Dark returns the terminal-style profile: green line on a transparent
// dark background, meant for README embedding.
func Dark() Profile {
	return Profile{
		Name:               "dark",
		Theme:              ThemeDark,
		Background:         MustHex("#000000"),
		TextColor:          MustHex("#ffffff"),
		LineColor:          MustHex("#00ff41"),
		LineWidth:          2,
		MarkerSize:         8,
		GridColor:          MustHex("#808080"),
		GridAlpha:          0.3,
		GridDash:           []float64{3.7, 1.6},
		GridLineWidth:      0.5,
		AnnotationColor:    MustHex("#ffffff"),
		LeaderColor:        MustHex("#808080"),
		AnnotationFontSize: 9,
		AnnotationOffsetX:  10,
		AnnotationOffsetY:  10,
		TitleText:          "Solver Optimization - 50 answers, full guesses",
		TitleFontSize:      16,
		TitlePad:           20,
		YAxisLabel:         "Benchmark Time (seconds)",
		XAxisLabel:         "Date / Commit",
		AxisLabelFontSize:  12,
		TickFontSize:       10,
		FigureWidth:        10,
		FigureHeight:       6,
		DPI:                100,
		Transparent:        true,
	}
}

// Light returns an opaque profile on a white background
func Light() Profile {
	p := Dark()
	p.Name = "light"
	p.Theme = ThemeLight
	p.Background = MustHex("#ffffff")
	p.TextColor = MustHex("#000000")
	p.LineColor = MustHex("#1f77b4")
	p.GridColor = MustHex("#b0b0b0")
	p.GridAlpha = 0.5
	p.AnnotationColor = MustHex("#000000")
	p.LeaderColor = MustHex("#808080")
	p.Transparent = false
	return p
}

var profiles = map[string]func() Profile{
	"dark":  Dark,
	"light": Light,
}

// DefaultName is the profile used when none is configured
const DefaultName = "dark"

// Named returns a fresh copy of a named profile
func Named(name string) (Profile, error) {
	if name == "" {
		name = DefaultName
	}
	fn, ok := profiles[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown style profile %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// Names lists the named profiles in sorted order
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the settings the renderer cannot work without
func (p Profile) Validate() error {
	switch {
	case p.Theme != ThemeDark && p.Theme != ThemeLight:
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, p.Theme)
	case p.FigureWidth <= 0 || p.FigureHeight <= 0:
		return fmt.Errorf("figure size must be positive, got %gx%g", p.FigureWidth, p.FigureHeight)
	case p.DPI <= 0:
		return fmt.Errorf("dpi must be positive, got %g", p.DPI)
	case p.GridAlpha < 0 || p.GridAlpha > 1:
		return fmt.Errorf("grid alpha must be within [0, 1], got %g", p.GridAlpha)
	}
	for _, size := range []float64{p.AnnotationFontSize, p.TitleFontSize, p.AxisLabelFontSize, p.TickFontSize} {
		if size <= 0 {
			return fmt.Errorf("font sizes must be positive, got %g", size)
		}
	}
	return nil
}

// Pixels converts a length in points to pixels at the profile DPI
func (p Profile) Pixels(points float64) float64 {
	return points * p.DPI / 72
}

// PixelSize returns the figure size in pixels
func (p Profile) PixelSize() (width, height int) {
	return int(p.FigureWidth*p.DPI + 0.5), int(p.FigureHeight*p.DPI + 0.5)
}
