package contrast

import "leadlag-go/internal/series"

// Reference evaluates every pair of increments. It is quadratic in the series lengths and serves
// as the oracle the sweep is checked against.
type Reference struct{}

// Name returns the identifier used in logs and metrics.
func (Reference) Name() string { return NameReference }

// Contrast sums dx*dy over every pair of increments whose intervals overlap once y is moved back
// by lag. Only the presence of overlap matters, not its length.
func (Reference) Contrast(x, y series.Series, lag float64, normalize bool) (float64, error) {
	if err := validate(x, y, lag); err != nil {
		return 0, err
	}
	var acc float64
	ys := y.Increments()
	for _, a := range x.Increments() {
		for _, b := range ys {
			if Overlap(a.Start, a.End, b.Start-lag, b.End-lag) > 0 {
				acc += a.Delta * b.Delta
			}
		}
	}
	return finish(x, y, acc, normalize)
}
