package contrast

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlap(t *testing.T) {
	assert.Equal(t, 1.0, Overlap(0, 2, 1, 3))
	assert.Equal(t, 2.0, Overlap(0, 10, 4, 6))
	assert.Equal(t, 0.0, Overlap(0, 1, 1, 2), "touching intervals share no length")
	assert.Equal(t, 0.0, Overlap(0, 1, 5, 6))
	assert.Equal(t, 0.0, Overlap(3, 1, 0, 10), "inverted interval is empty")
}

func TestOverlapProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 10_000; n++ {
		a, b, c, d := rng.NormFloat64()*5, rng.NormFloat64()*5, rng.NormFloat64()*5, rng.NormFloat64()*5
		got := Overlap(a, b, c, d)
		assert.Equal(t, got, Overlap(c, d, a, b))
		assert.GreaterOrEqual(t, got, 0.0)
		if b <= c || d <= a {
			assert.Equal(t, 0.0, got)
		}
	}
}
