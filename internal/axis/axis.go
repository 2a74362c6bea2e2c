// Package axis maps a series onto x-axis positions and tick marks.
//
// Two strategies are supported. The ordinal strategy spaces samples at
// consecutive integers and labels every sample with its raw date string,
// so the commit sequence is the axis and wall-clock gaps are ignored. The
// temporal strategy places samples at their calendar day, so long gaps
// between samples stay visible, and picks its own date ticks.
package axis

import (
	"fmt"
	"strings"

	"github.com/christophergentle/perfgraph/internal/series"
)

// Strategy selects how samples are positioned along the x axis
type Strategy int

const (
	// Ordinal places sample i at position i
	Ordinal Strategy = iota
	// Temporal places samples at their date, in days since the Unix epoch
	Temporal
)

func (s Strategy) String() string {
	switch s {
	case Ordinal:
		return "ordinal"
	case Temporal:
		return "temporal"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses a strategy name as accepted in config files and flags
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ordinal", "index":
		return Ordinal, nil
	case "temporal", "time", "date":
		return Temporal, nil
	default:
		return 0, fmt.Errorf("unknown axis strategy %q (must be ordinal or temporal)", name)
	}
}

// Tick is a labelled position on the x axis
type Tick struct {
	Position float64
	Label    string
}

// Mapping is the x-axis layout of one series under one strategy
type Mapping struct {
	Strategy  Strategy
	Positions []float64 // one per sample, in series order
	Ticks     []Tick    // in increasing position order

	// LabelRotation is the tick label angle in degrees, counter-clockwise
	LabelRotation float64
	// LabelAlign is the horizontal anchor of the rotated label, 0 left .. 1 right
	LabelAlign float64
}

// Map dispatches to the mapper for strategy
func Map(s series.Series, strategy Strategy) (Mapping, error) {
	if err := checkNotEmpty(s); err != nil {
		return Mapping{}, err
	}
	switch strategy {
	case Ordinal:
		return MapOrdinal(s), nil
	case Temporal:
		return MapTemporal(s)
	default:
		return Mapping{}, fmt.Errorf("unknown axis strategy %v", strategy)
	}
}

// MapOrdinal places samples at 0, 1, ..., n-1 with one tick per sample
func MapOrdinal(s series.Series) Mapping {
	m := Mapping{
		Strategy:      Ordinal,
		Positions:     make([]float64, s.Len()),
		Ticks:         make([]Tick, s.Len()),
		LabelRotation: 45,
		LabelAlign:    1,
	}
	for i := 0; i < s.Len(); i++ {
		m.Positions[i] = float64(i)
		m.Ticks[i] = Tick{Position: float64(i), Label: s.At(i).Date}
	}
	return m
}

func checkNotEmpty(s series.Series) error {
	if s.Len() == 0 {
		return &series.ValidationError{Index: -1, Reason: "no samples provided"}
	}
	return nil
}
