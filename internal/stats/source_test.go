package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaussianReproducible(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Gaussian(10, 2), b.Gaussian(10, 2))
	}
}

func TestGaussianMoments(t *testing.T) {
	src := NewSource(7)
	draws := make([]float64, 20000)
	for i := range draws {
		draws[i] = src.Gaussian(100, 15)
	}
	assert.InDelta(t, 100, Mean(draws), 0.5)
	assert.InDelta(t, 15, StdDev(draws), 0.5)
}

func TestGaussianDegenerateSD(t *testing.T) {
	src := NewSource(1)
	assert.Equal(t, 50.0, src.Gaussian(50, 0))
	assert.Equal(t, 50.0, src.Gaussian(50, -3))
}
