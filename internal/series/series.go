package series

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the ISO calendar date format every sample date uses
const DateLayout = "2006-01-02"

// Sample is a single benchmark measurement
type Sample struct {
	Date  string  `yaml:"date" json:"date"`
	Value float64 `yaml:"value" json:"value"`
	Label string  `yaml:"label" json:"label"`
}

// Series is an ordered, validated, non-empty list of samples.
// The zero value is empty and is never returned by Load.
type Series struct {
	samples []Sample
}

// ValidationError reports malformed input samples
type ValidationError struct {
	Index  int // -1 when the failure concerns the whole list
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("sample %d: %s %s", e.Index, e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "invalid series: " + msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Load validates samples and returns them as a Series in input order.
// Dates are treated as opaque labels.
func Load(samples []Sample) (Series, error) {
	if len(samples) == 0 {
		return Series{}, &ValidationError{Index: -1, Reason: "no samples provided"}
	}

	for i, s := range samples {
		switch {
		case math.IsNaN(s.Value) || math.IsInf(s.Value, 0):
			return Series{}, &ValidationError{Index: i, Field: "value", Reason: "is not a finite number"}
		case s.Value < 0:
			return Series{}, &ValidationError{Index: i, Field: "value", Reason: fmt.Sprintf("must not be negative, got %g", s.Value)}
		}
	}

	owned := make([]Sample, len(samples))
	copy(owned, samples)
	return Series{samples: owned}, nil
}

// LoadDated is Load plus the requirement that every date is a valid
// calendar date. Use it when the series will be plotted on a time axis.
func LoadDated(samples []Sample) (Series, error) {
	s, err := Load(samples)
	if err != nil {
		return Series{}, err
	}
	if _, err := s.Dates(); err != nil {
		return Series{}, err
	}
	return s, nil
}

// ParseDate parses an ISO "YYYY-MM-DD" date as midnight UTC
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// Len returns the number of samples
func (s Series) Len() int {
	return len(s.samples)
}

// At returns the i-th sample
func (s Series) At(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of the samples in input order
func (s Series) Samples() []Sample {
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)
	return out
}

// Values returns the sample values in input order
func (s Series) Values() []float64 {
	values := make([]float64, len(s.samples))
	for i, sample := range s.samples {
		values[i] = sample.Value
	}
	return values
}

// Dates parses every sample date, failing on the first invalid one
func (s Series) Dates() ([]time.Time, error) {
	dates := make([]time.Time, len(s.samples))
	for i, sample := range s.samples {
		t, err := ParseDate(sample.Date)
		if err != nil {
			return nil, &ValidationError{Index: i, Field: "date", Reason: fmt.Sprintf("%q is not a calendar date", sample.Date), Err: err}
		}
		dates[i] = t
	}
	return dates, nil
}
