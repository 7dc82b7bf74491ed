package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/costmodel/types"
)

func TestQuantizeParam(t *testing.T) {
	cases := []struct {
		in       float64
		expected uint64
	}{
		{0, 0},
		{0.04, 0}, // rounds to 0.0 before the ceil
		{0.4, 1},
		{1.0, 1},
		{1.04, 1}, // rounds to 1.0 before the ceil
		{10.0, 10},
		{10.5, 11},
		{123.449, 124}, // "123.4" -> 124
		{123.96, 124},  // "124.0" -> 124
	}
	for _, tc := range cases {
		got, err := quantizeParam("p", tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got, "quantize %g", tc.in)
	}
}

func TestQuantizeNeverDecreasesAParameter(t *testing.T) {
	for _, p := range []float64{0, 0.01, 0.09, 0.11, 0.5, 1, 1.5, 3.14159, 42, 1e6 + 0.3} {
		got, err := quantizeParam("p", p)
		require.NoError(t, err)
		// one decimal digit of slack is the documented noise filter
		assert.GreaterOrEqual(t, float64(got), p-0.05, "quantize %g", p)
		assert.GreaterOrEqual(t, float64(got), math.Floor(p), "quantize %g", p)
	}
}

func TestQuantizeRejectsBadParams(t *testing.T) {
	for _, p := range []float64{-0.01, -1, math.NaN(), math.Inf(1)} {
		_, err := Quantize(types.CostModel{ConstParam: p, LinParam: 1})
		require.Error(t, err, "const_param %g", p)
		assert.IsType(t, types.NegativeParamError{}, err)

		_, err = Quantize(types.CostModel{ConstParam: 1, LinParam: p})
		require.Error(t, err, "lin_param %g", p)
		assert.IsType(t, types.NegativeParamError{}, err)
	}
}

func TestQuantizeModel(t *testing.T) {
	q, err := Quantize(types.CostModel{ConstParam: 12.31, LinParam: 0.07, RSquared: 0.98})
	require.NoError(t, err)
	assert.Equal(t, types.Uint64(13), q.ConstParam) // "12.3" -> 13
	assert.Equal(t, types.Uint64(1), q.LinParam)    // "0.1" -> 1
}
