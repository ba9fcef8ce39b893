package search

import "github.com/ssimtune/ssimtune/internal/config"

// Reduce aggregates per-sample scores into one decision value using the
// configured metric. An empty slice reduces to 0.
func Reduce(metric config.Metric, scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	switch metric {
	case config.MetricMin:
		return minOf(scores)
	case config.MetricMax:
		return maxOf(scores)
	default:
		return mean(scores)
	}
}

func mean(scores []float64) float64 {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func minOf(scores []float64) float64 {
	m := scores[0]
	for _, s := range scores[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

func maxOf(scores []float64) float64 {
	m := scores[0]
	for _, s := range scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}
