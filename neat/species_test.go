package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecies_FitnessesAndBest(t *testing.T) {
	reg := NewRegistry(2, 1)
	a := NewGenome(reg, false, nil)
	b := NewGenome(reg, false, nil)
	c := NewGenome(reg, false, nil)
	a.Fitness, b.Fitness, c.Fitness = 1, 3, 3

	s := &Species{Members: []*Genome{a, b, c}}

	assert.Equal(t, 3, s.Len())
	assert.Same(t, a, s.Representative())
	assert.Equal(t, []float64{1, 3, 3}, s.Fitnesses())
	assert.Same(t, b, s.Best())
	assert.InDelta(t, 7.0/3.0, Mean(s.Fitnesses()), 1e-12)
	assert.Equal(t, 3.0, MaxFloat(s.Fitnesses()))
}

func TestMathUtil(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Stdev([]float64{4}))
	assert.InDelta(t, 1.0, Stdev([]float64{1, 2, 3}), 1e-12)
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
	assert.True(t, MaxFloat(nil) < 0)
}
