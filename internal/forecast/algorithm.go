package forecast

// Algorithm labels the forecasting method a history's shape calls for.
// The labels are descriptive: they name the model family the data
// would suit, not an implementation of that model.
type Algorithm string

const (
	AlgorithmArima                Algorithm = "arima"
	AlgorithmExponentialSmoothing Algorithm = "exponential_smoothing"
	AlgorithmLinearRegression     Algorithm = "linear_regression"
	AlgorithmNeuralNetwork        Algorithm = "neural_network"
	AlgorithmHybrid               Algorithm = "hybrid"
)

// largeSampleSize is where both-signal histories graduate from hybrid
// to neural_network.
const largeSampleSize = 200

// ParseAlgorithm maps a requested label to its Algorithm, reporting
// whether the label is known.
func ParseAlgorithm(label string) (Algorithm, bool) {
	switch Algorithm(label) {
	case AlgorithmArima, AlgorithmExponentialSmoothing, AlgorithmLinearRegression,
		AlgorithmNeuralNetwork, AlgorithmHybrid:
		return Algorithm(label), true
	}
	return "", false
}

// SelectAlgorithm maps detected seasonality, trend and sample size to
// a method label. Same input always yields the same label.
func SelectAlgorithm(hasSeasonality, hasTrend bool, sampleSize int) Algorithm {
	switch {
	case hasSeasonality && hasTrend && sampleSize >= largeSampleSize:
		return AlgorithmNeuralNetwork
	case hasSeasonality && hasTrend:
		return AlgorithmHybrid
	case hasSeasonality:
		return AlgorithmArima
	case hasTrend:
		return AlgorithmLinearRegression
	default:
		return AlgorithmExponentialSmoothing
	}
}
