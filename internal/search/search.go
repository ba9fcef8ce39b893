package search

import "context"

// FindBestQP returns the highest QP in [minQP, maxQP] whose aggregate
// sample score still meets target, assuming score is non-increasing in
// QP. The assumption is not verified; if it fails for some content the
// result is a QP that satisfied the bisection path, not a global
// optimum. Terminates in at most ceil(log2(maxQP-minQP)) evaluator
// calls plus the initial probe.
func FindBestQP(ctx context.Context, ev Evaluator, minQP, maxQP int, target float64) (int, error) {
	// Nothing to search in a degenerate range; skip the wasted probe.
	if minQP == maxQP {
		return minQP, nil
	}

	low, high := minQP, maxQP

	// Probe the most aggressive setting first: when it already clears
	// the bar there is no better answer, so skip the bisection.
	highScore, err := ev.Score(ctx, high)
	if err != nil {
		return 0, err
	}
	if highScore >= target {
		return high, nil
	}

	best := low

	for high-low > 1 {
		mid := (low + high) / 2
		score, err := ev.Score(ctx, mid)
		if err != nil {
			return 0, err
		}
		if score >= target {
			best = mid
			low = mid
		} else {
			high = mid
		}
	}

	return best, nil
}
