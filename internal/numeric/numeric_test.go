package numeric_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/farsight/internal/numeric"
	"github.com/stretchr/testify/assert"
)

func TestIsClose(t *testing.T) {
	assert.True(t, numeric.IsClose(1, 1, 0))
	assert.True(t, numeric.IsClose(100, 100.0005, numeric.DefaultAtol))
	assert.False(t, numeric.IsClose(100, 100.01, numeric.DefaultAtol))
	assert.True(t, numeric.IsClose(0, 1e-13, numeric.DefaultAtol))
	assert.False(t, numeric.IsClose(0, 1e-11, numeric.DefaultAtol))
	assert.False(t, numeric.IsClose(math.NaN(), math.NaN(), 1))
	assert.True(t, numeric.IsClose(math.Inf(1), math.Inf(1), 0))
}

func TestAllClose(t *testing.T) {
	assert.True(t, numeric.AllClose([]float64{1, 2}, []float64{1, 2 + 1e-9}, numeric.SumAtol))
	assert.False(t, numeric.AllClose([]float64{1}, []float64{1, 2}, numeric.SumAtol))
}

func TestInUnit(t *testing.T) {
	assert.True(t, numeric.InUnit(0))
	assert.True(t, numeric.InUnit(1))
	assert.False(t, numeric.InUnit(-1e-300))
	assert.False(t, numeric.InUnit(1.0000001))
}
