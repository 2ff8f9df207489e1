package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputeBMI(t *testing.T) {
	bmi := ComputeBMI(f(170), f(70))
	require.NotNil(t, bmi)
	assert.Equal(t, 24.2, *bmi)
}

func TestComputeBMIRounding(t *testing.T) {
	bmi := ComputeBMI(f(180), f(80))
	require.NotNil(t, bmi)
	assert.Equal(t, 24.7, *bmi)
}

func TestComputeBMIMissingInputs(t *testing.T) {
	assert.Nil(t, ComputeBMI(nil, f(70)))
	assert.Nil(t, ComputeBMI(f(170), nil))
	assert.Nil(t, ComputeBMI(nil, nil))
}

func TestComputeBMIDegenerateHeight(t *testing.T) {
	assert.Nil(t, ComputeBMI(f(0), f(70)))
}
