package series

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		s    Series
		want error
	}{
		"ok":         {Series{Timestamps: []float64{0, 1, 2}, Values: []float64{1, 2, 3}}, nil},
		"shape":      {Series{Timestamps: []float64{0, 1, 2}, Values: []float64{1, 2}}, ErrShapeMismatch},
		"degenerate": {Series{Timestamps: []float64{0}, Values: []float64{1}}, ErrDegenerateSeries},
		"empty":      {Series{}, ErrDegenerateSeries},
		"unsorted":   {Series{Timestamps: []float64{0, 2, 1}, Values: []float64{1, 2, 3}}, ErrUnsortedTimestamps},
		"duplicate":  {Series{Timestamps: []float64{0, 1, 1}, Values: []float64{1, 2, 3}}, ErrUnsortedTimestamps},
		"nan ts":     {Series{Timestamps: []float64{0, math.NaN(), 2}, Values: []float64{1, 2, 3}}, ErrUnsortedTimestamps},
		"nan value":  {Series{Timestamps: []float64{0, 1, 2}, Values: []float64{1, math.NaN(), 3}}, ErrNonFiniteValue},
	}
	for name, tc := range cases {
		err := tc.s.Validate()
		if tc.want == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New([]float64{1}, []float64{0, 1}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	s, err := New([]float64{1, 2}, []float64{0, 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
}

func TestIncrementsAndQuadraticVariation(t *testing.T) {
	s := Series{Timestamps: []float64{0, 1, 3}, Values: []float64{1, 3, 2}}
	inc := s.Increments()
	if len(inc) != 2 {
		t.Fatalf("expected 2 increments, got %d", len(inc))
	}
	if inc[0] != (Increment{Start: 0, End: 1, Delta: 2}) || inc[1] != (Increment{Start: 1, End: 3, Delta: -1}) {
		t.Fatalf("unexpected increments %+v", inc)
	}
	if qv := s.QuadraticVariation(); qv != 5 {
		t.Fatalf("expected qv 5, got %v", qv)
	}
}

func TestShiftCopies(t *testing.T) {
	s := Series{Timestamps: []float64{0, 1}, Values: []float64{5, 6}}
	shifted := Shift(s, 2)
	if shifted.Timestamps[0] != 2 || shifted.Timestamps[1] != 3 {
		t.Fatalf("unexpected shifted timestamps %v", shifted.Timestamps)
	}
	shifted.Values[0] = 100
	if s.Values[0] != 5 {
		t.Fatalf("Shift aliased the input values")
	}
}

func TestFromTicksCollapsesDuplicates(t *testing.T) {
	origin := time.UnixMilli(1_000)
	ticks := []Tick{
		{Symbol: "BTCUSDT", Price: 3, Ts: time.UnixMilli(3_000)},
		{Symbol: "BTCUSDT", Price: 1, Ts: time.UnixMilli(1_000)},
		{Symbol: "BTCUSDT", Price: 2, Ts: time.UnixMilli(1_500)},
		{Symbol: "BTCUSDT", Price: 2.5, Ts: time.UnixMilli(1_500)},
	}
	s := FromTicks(ticks, origin)
	if err := s.Validate(); err != nil {
		t.Fatalf("series from ticks invalid: %v", err)
	}
	want := []float64{0, 0.5, 2}
	for i, ts := range want {
		if s.Timestamps[i] != ts {
			t.Fatalf("timestamp %d: expected %v got %v", i, ts, s.Timestamps[i])
		}
	}
	if s.Values[1] != 2.5 {
		t.Fatalf("expected last print to win, got %v", s.Values[1])
	}
}
