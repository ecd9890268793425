package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectAlgorithm(t *testing.T) {
	tests := []struct {
		name           string
		hasSeasonality bool
		hasTrend       bool
		sampleSize     int
		want           Algorithm
	}{
		{"both signals large sample", true, true, 250, AlgorithmNeuralNetwork},
		{"both signals", true, true, 50, AlgorithmHybrid},
		{"seasonality only", true, false, 50, AlgorithmArima},
		{"trend only", false, true, 50, AlgorithmLinearRegression},
		{"neither", false, false, 50, AlgorithmExponentialSmoothing},
		{"neither large sample", false, false, 500, AlgorithmExponentialSmoothing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectAlgorithm(tt.hasSeasonality, tt.hasTrend, tt.sampleSize))
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	got, ok := ParseAlgorithm("linear_regression")
	assert.True(t, ok)
	assert.Equal(t, AlgorithmLinearRegression, got)

	_, ok = ParseAlgorithm("prophet")
	assert.False(t, ok)

	_, ok = ParseAlgorithm("")
	assert.False(t, ok)
}

func TestSelectAlgorithm_AlwaysReturnsKnownLabel(t *testing.T) {
	known := map[Algorithm]bool{
		AlgorithmArima:                true,
		AlgorithmExponentialSmoothing: true,
		AlgorithmLinearRegression:     true,
		AlgorithmNeuralNetwork:        true,
		AlgorithmHybrid:               true,
	}
	for _, seasonality := range []bool{false, true} {
		for _, trend := range []bool{false, true} {
			for _, size := range []int{1, 30, 199, 200, 10000} {
				got := SelectAlgorithm(seasonality, trend, size)
				assert.True(t, known[got], "unexpected label %q", got)
			}
		}
	}
}
