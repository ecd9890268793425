package forecast

import "github.com/SvetozarP/finance-tracker/internal/models"

// Scenario probabilities are fixed constants independent of the data
// and always sum to 1.0.
const (
	ProbabilityOptimistic  = 0.2
	ProbabilityRealistic   = 0.6
	ProbabilityPessimistic = 0.2
)

// Band factors applied relative to the base scenario.
const (
	optimisticIncomeFactor   = 1.1
	optimisticExpenseFactor  = 0.9
	pessimisticIncomeFactor  = 0.9
	pessimisticExpenseFactor = 1.1
)

// BuildBaseScenario projects monthly averages over the period length.
func BuildBaseScenario(monthlyIncome, monthlyExpense float64, months int, confidence string) models.BaseScenario {
	income := sanitize(monthlyIncome * float64(months))
	expenses := sanitize(monthlyExpense * float64(months))
	savings := sanitize(income - expenses)
	return models.BaseScenario{
		ProjectedIncome:   income,
		ProjectedExpenses: expenses,
		ProjectedNetWorth: savings,
		ProjectedSavings:  savings,
		Confidence:        confidence,
	}
}

// BuildScenarios brackets the base scenario with optimistic, realistic
// and pessimistic bands in that fixed order. The realistic band equals
// the base scenario's central estimate.
func BuildScenarios(base models.BaseScenario) []models.Scenario {
	optimistic := scenarioBand("optimistic", ProbabilityOptimistic,
		base.ProjectedIncome*optimisticIncomeFactor,
		base.ProjectedExpenses*optimisticExpenseFactor,
		base.Confidence)
	realistic := scenarioBand("realistic", ProbabilityRealistic,
		base.ProjectedIncome, base.ProjectedExpenses, base.Confidence)
	pessimistic := scenarioBand("pessimistic", ProbabilityPessimistic,
		base.ProjectedIncome*pessimisticIncomeFactor,
		base.ProjectedExpenses*pessimisticExpenseFactor,
		base.Confidence)
	return []models.Scenario{optimistic, realistic, pessimistic}
}

func scenarioBand(name string, probability, income, expenses float64, confidence string) models.Scenario {
	income = sanitize(income)
	expenses = sanitize(expenses)
	savings := sanitize(income - expenses)
	return models.Scenario{
		Name:              name,
		Probability:       probability,
		ProjectedIncome:   income,
		ProjectedExpenses: expenses,
		ProjectedNetWorth: savings,
		ProjectedSavings:  savings,
		Confidence:        confidence,
	}
}
