package nn

import (
	"math/rand"
	"testing"

	"github.com/baldhumanity/neat-innovation/neat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFeedForwardNetwork_Linear(t *testing.T) {
	reg := neat.NewRegistry(2, 1)
	g := neat.NewGenome(reg, false, nil)
	g.AddConnection(neat.Gene{Source: 0, Dest: 2}, true, 0.5)
	g.AddConnection(neat.Gene{Source: 1, Dest: 2}, true, -1.0)
	g.AddConnection(neat.Gene{Source: reg.BiasIndex(), Dest: 2}, true, 2.0)
	require.NoError(t, g.SplitConnection(neat.Gene{Source: 1, Dest: 2}))

	net, err := CreateFeedForwardNetwork(g)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, net.InputKeys)
	assert.Equal(t, []int{2}, net.OutputKeys)
	assert.Equal(t, 3, net.BiasKey)
	assert.Len(t, net.Incoming[2], 3, "disabled 1->2 is dropped")

	out, err := net.Activate([]float64{1.0, 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, out[0], 1e-12)

	_, err = net.Activate([]float64{1.0})
	assert.ErrorIs(t, err, neat.ErrInputSize)
}

func TestCreateFeedForwardNetwork_Cycle(t *testing.T) {
	reg := neat.NewRegistry(1, 1)
	a := reg.RegisterNode(0.5)
	b := reg.RegisterNode(0.5)

	g := neat.NewGenome(reg, false, nil)
	g.AddConnection(neat.Gene{Source: 0, Dest: a}, true, 1)
	g.AddConnection(neat.Gene{Source: a, Dest: b}, true, 1)
	g.AddConnection(neat.Gene{Source: b, Dest: a}, true, 1)
	g.AddConnection(neat.Gene{Source: b, Dest: 1}, true, 1)

	_, err := CreateFeedForwardNetwork(g)
	assert.Error(t, err)
}

func TestActivate_MatchesDepthForward(t *testing.T) {
	reg := neat.NewRegistry(3, 2)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 25; i++ {
		g := neat.NewGenome(reg, true, rng)
		for m := 0; m < 15; m++ {
			g.SplitRandomConnection(rng)
			g.AddRandomConnection(rng)
		}

		net, err := CreateFeedForwardNetwork(g)
		require.NoError(t, err)

		inputs := []float64{rng.Float64(), -rng.Float64(), rng.Float64()*2 - 1}
		byDepth, err := g.Forward(inputs)
		require.NoError(t, err)
		byTopology, err := net.Activate(inputs)
		require.NoError(t, err)
		assert.InDeltaSlice(t, byDepth, byTopology, 1e-9)
	}
}
