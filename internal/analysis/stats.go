package analysis

import "metalwatch/internal/models"

// ComputeStats summarises the finite subset of a price series. An empty
// subset yields {0,0,0}. Both the on-screen summary and the PDF summary go
// through this one function so the two can never diverge.
func ComputeStats(values []float64) models.Stats {
	finite := filterFinite(values)
	if len(finite) == 0 {
		return models.Stats{}
	}

	min, max, sum := finite[0], finite[0], 0.0
	for _, v := range finite {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	return models.Stats{
		Min: min,
		Max: max,
		Avg: sum / float64(len(finite)),
	}
}
