package contrast

import "leadlag-go/internal/series"

// Sweep computes the same contrast as Reference in linear time per lag.
//
// Both increment sequences are time ordered and a shift moves every y interval by the same amount,
// so the y intervals that can overlap x interval i form a window [lo, hi) whose bounds only move
// forward as i advances. Two partitions of the line overlap in at most n+m-1 pairs, so the total
// work inside the windows is linear as well.
//
// Products are added in the order Reference adds them (x ascending, then y ascending), which makes
// the two results identical rather than merely close.
type Sweep struct{}

// Name returns the identifier used in logs and metrics.
func (Sweep) Name() string { return NameSweep }

// Contrast returns the shifted modified Hayashi-Yoshida contrast at lag.
func (Sweep) Contrast(x, y series.Series, lag float64, normalize bool) (float64, error) {
	if err := validate(x, y, lag); err != nil {
		return 0, err
	}
	return finish(x, y, sweep(x, y, lag), normalize)
}

func sweep(x, y series.Series, lag float64) float64 {
	tx, vx := x.Timestamps, x.Values
	ty, vy := y.Timestamps, y.Values
	m := len(ty) - 1

	var acc float64
	lo, hi := 0, 0
	for i := 0; i+1 < len(tx); i++ {
		x0, x1 := tx[i], tx[i+1]

		// y intervals ending at or before x0 cannot reach this or any later x interval.
		for lo < m && ty[lo+1]-lag <= x0 {
			lo++
		}
		if hi < lo {
			hi = lo
		}
		// y intervals starting before x1 may overlap; the rest start too late for this one.
		for hi < m && ty[hi]-lag < x1 {
			hi++
		}

		dx := vx[i+1] - vx[i]
		for j := lo; j < hi; j++ {
			if Overlap(x0, x1, ty[j]-lag, ty[j+1]-lag) > 0 {
				acc += dx * (vy[j+1] - vy[j])
			}
		}
	}
	return acc
}
