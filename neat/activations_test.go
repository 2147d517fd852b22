package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActivation(t *testing.T) {
	for name := range ActivationFunctions {
		fn, err := GetActivation(name)
		require.NoError(t, err, name)
		assert.NotNil(t, fn)
	}

	_, err := GetActivation("softmax")
	assert.Error(t, err)
}

func TestActivations(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.Greater(t, Sigmoid(1), 0.99)
	assert.Equal(t, 0.0, ReLU(-2))
	assert.Equal(t, 2.0, ReLU(2))
	assert.Equal(t, -1.0, Clamped(-3))
	assert.Equal(t, 0.25, Identity(0.25))
	assert.InDelta(t, 0.0, Tanh(0), 1e-12)
}
