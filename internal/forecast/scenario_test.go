package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBaseScenario(t *testing.T) {
	base := BuildBaseScenario(2000, 1500, 6, "medium")

	assert.InDelta(t, 12000, base.ProjectedIncome, 0.001)
	assert.InDelta(t, 9000, base.ProjectedExpenses, 0.001)
	assert.InDelta(t, 3000, base.ProjectedSavings, 0.001)
	assert.Equal(t, "medium", base.Confidence)
}

func TestBuildScenarios(t *testing.T) {
	base := BuildBaseScenario(2000, 1500, 6, "high")
	scenarios := BuildScenarios(base)

	require.Len(t, scenarios, 3)
	assert.Equal(t, "optimistic", scenarios[0].Name)
	assert.Equal(t, "realistic", scenarios[1].Name)
	assert.Equal(t, "pessimistic", scenarios[2].Name)

	assert.Equal(t, 0.2, scenarios[0].Probability)
	assert.Equal(t, 0.6, scenarios[1].Probability)
	assert.Equal(t, 0.2, scenarios[2].Probability)

	var sum float64
	for _, s := range scenarios {
		sum += s.Probability
	}
	assert.InDelta(t, 1.0, sum, 0.05)

	// The realistic band equals the base estimate; the others bracket it.
	assert.Equal(t, base.ProjectedIncome, scenarios[1].ProjectedIncome)
	assert.Equal(t, base.ProjectedExpenses, scenarios[1].ProjectedExpenses)
	assert.Greater(t, scenarios[0].ProjectedIncome, base.ProjectedIncome)
	assert.Less(t, scenarios[0].ProjectedExpenses, base.ProjectedExpenses)
	assert.Less(t, scenarios[2].ProjectedIncome, base.ProjectedIncome)
	assert.Greater(t, scenarios[2].ProjectedExpenses, base.ProjectedExpenses)
}

func TestBuildScenarios_DegenerateInputsStayFinite(t *testing.T) {
	t.Run("zero amounts", func(t *testing.T) {
		base := BuildBaseScenario(0, 0, 12, "low")
		assert.Zero(t, base.ProjectedIncome)
		assert.Zero(t, base.ProjectedExpenses)
		for _, s := range BuildScenarios(base) {
			assert.Zero(t, s.ProjectedIncome)
			assert.Zero(t, s.ProjectedExpenses)
		}
	})

	t.Run("very large amounts", func(t *testing.T) {
		base := BuildBaseScenario(2000*10000, 1500*10000, 12, "low")
		for _, s := range BuildScenarios(base) {
			assert.False(t, math.IsNaN(s.ProjectedIncome))
			assert.False(t, math.IsInf(s.ProjectedIncome, 0))
			assert.False(t, math.IsNaN(s.ProjectedExpenses))
			assert.False(t, math.IsInf(s.ProjectedExpenses, 0))
			assert.False(t, math.IsNaN(s.ProjectedSavings))
			assert.False(t, math.IsInf(s.ProjectedSavings, 0))
		}
	})
}
