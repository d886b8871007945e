package series

import (
	"sort"
	"time"
)

// Tick models a single trade print used to assemble a Series.
type Tick struct {
	Symbol string
	Price  float64
	Size   float64
	Ts     time.Time
}

// FromTicks converts trade prints into a Series of seconds elapsed since origin.
// Ticks are ordered by time; prints sharing a timestamp collapse to the last one so timestamps
// stay strictly increasing.
func FromTicks(ticks []Tick, origin time.Time) Series {
	sorted := make([]Tick, len(ticks))
	copy(sorted, ticks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ts.Before(sorted[j].Ts) })

	s := Series{
		Timestamps: make([]float64, 0, len(sorted)),
		Values:     make([]float64, 0, len(sorted)),
	}
	for _, tk := range sorted {
		ts := tk.Ts.Sub(origin).Seconds()
		if n := len(s.Timestamps); n > 0 && ts <= s.Timestamps[n-1] {
			s.Values[n-1] = tk.Price
			continue
		}
		s.Timestamps = append(s.Timestamps, ts)
		s.Values = append(s.Values, tk.Price)
	}
	return s
}
