package axis

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"

	"github.com/christophergentle/perfgraph/internal/series"
)

const (
	secondsPerDay    = 24 * 60 * 60
	maxTemporalTicks = 10
	maxStrideLevel   = 40
)

// dayStrides are the sub-year tick spacings tried, finest first. Coarser
// levels step through 2, 5, 10, 20, 50, ... years.
var dayStrides = []int64{1, 2, 3, 5, 7, 14, 30, 91, 182, 365}

// yearSteps are the mantissas of the multi-year strides
var yearSteps = []float64{1, 2, 5}

// MapTemporal places samples at their calendar day and chooses date ticks
// spanning the data. It fails if any date does not parse.
func MapTemporal(s series.Series) (Mapping, error) {
	if err := checkNotEmpty(s); err != nil {
		return Mapping{}, err
	}
	dates, err := s.Dates()
	if err != nil {
		return Mapping{}, err
	}

	m := Mapping{
		Strategy:      Temporal,
		Positions:     make([]float64, len(dates)),
		LabelRotation: 30,
		LabelAlign:    1,
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, d := range dates {
		m.Positions[i] = epochDays(d)
		lo = math.Min(lo, m.Positions[i])
		hi = math.Max(hi, m.Positions[i])
	}

	for _, day := range dateTicks(lo, hi) {
		m.Ticks = append(m.Ticks, Tick{
			Position: day,
			Label:    time.Unix(int64(day)*secondsPerDay, 0).UTC().Format(series.DateLayout),
		})
	}
	return m, nil
}

func epochDays(t time.Time) float64 {
	return float64(t.Unix()) / secondsPerDay
}

// dateTicks picks the finest stride that yields at most maxTemporalTicks
// ticks within [lo, hi].
func dateTicks(lo, hi float64) []float64 {
	ticker := dayTicker{lo: lo, hi: hi}
	o := scale.TickOptions{Max: maxTemporalTicks, MinLevel: 0, MaxLevel: maxStrideLevel}
	level, ok := o.FindLevel(ticker, 0)
	if !ok {
		level = maxStrideLevel
	}
	ticks := ticker.TicksAtLevel(level).([]float64)
	if len(ticks) == 0 {
		// Coarse strides can miss a short range entirely; fall back to its start
		ticks = []float64{math.Ceil(lo)}
	}
	return ticks
}

// dayTicker implements scale.Ticker over whole days. Ticks sit on
// multiples of the level's stride counted from the epoch.
type dayTicker struct {
	lo, hi float64
}

func (t dayTicker) stride(level int) int64 {
	if level < 0 {
		level = 0
	}
	if level > maxStrideLevel {
		level = maxStrideLevel
	}
	if level < len(dayStrides) {
		return dayStrides[level]
	}
	k := level - len(dayStrides) + 1
	years := yearSteps[k%len(yearSteps)] * math.Pow(10, float64(k/len(yearSteps)))
	return int64(math.Round(years * 365.25))
}

func (t dayTicker) bounds(level int) (first, last, stride int64) {
	stride = t.stride(level)
	first = int64(math.Ceil(t.lo/float64(stride))) * stride
	last = int64(math.Floor(t.hi/float64(stride))) * stride
	return first, last, stride
}

func (t dayTicker) CountTicks(level int) int {
	first, last, stride := t.bounds(level)
	if last < first {
		return 0
	}
	return int((last-first)/stride) + 1
}

func (t dayTicker) TicksAtLevel(level int) interface{} {
	first, last, stride := t.bounds(level)
	var ticks []float64
	for d := first; d <= last; d += stride {
		ticks = append(ticks, float64(d))
	}
	return ticks
}
