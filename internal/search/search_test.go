package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ssimtune/ssimtune/internal/config"
)

// funcEvaluator scores QPs through a function and counts invocations.
type funcEvaluator struct {
	score func(qp int) (float64, error)
	calls int
}

func (f *funcEvaluator) Score(_ context.Context, qp int) (float64, error) {
	f.calls++
	return f.score(qp)
}

// linearScore is monotonically decreasing in QP, crossing 0.8 at QP 20.
func linearScore(qp int) (float64, error) {
	return 1.0 - 0.01*float64(qp), nil
}

func TestFindBestQP(t *testing.T) {
	tests := []struct {
		name     string
		minQP    int
		maxQP    int
		target   float64
		score    func(qp int) (float64, error)
		expected int
	}{
		{
			name:   "boundary inside range",
			minQP:  10,
			maxQP:  40,
			target: 0.8,
			score:  linearScore,
			// score(20) = 0.80 meets, score(21) = 0.79 does not
			expected: 20,
		},
		{
			name:     "max already meets target",
			minQP:    10,
			maxQP:    40,
			target:   0.5,
			score:    linearScore,
			expected: 40,
		},
		{
			name:   "nothing meets target",
			minQP:  10,
			maxQP:  40,
			target: 0.999,
			score:  linearScore,
			// min is returned without being evaluated
			expected: 10,
		},
		{
			name:     "boundary at min plus one",
			minQP:    10,
			maxQP:    40,
			target:   0.89,
			score:    linearScore,
			expected: 11,
		},
		{
			name:     "adjacent range upper meets",
			minQP:    20,
			maxQP:    21,
			target:   0.75,
			score:    linearScore,
			expected: 21,
		},
		{
			name:     "adjacent range upper fails",
			minQP:    20,
			maxQP:    21,
			target:   0.795,
			score:    linearScore,
			expected: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := &funcEvaluator{score: tt.score}
			got, err := FindBestQP(context.Background(), ev, tt.minQP, tt.maxQP, tt.target)
			if err != nil {
				t.Fatalf("FindBestQP() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("FindBestQP(%d, %d, %v) = %d, want %d",
					tt.minQP, tt.maxQP, tt.target, got, tt.expected)
			}

			bound := 1
			if span := tt.maxQP - tt.minQP; span > 0 {
				bound = int(math.Ceil(math.Log2(float64(span)))) + 1
			}
			if ev.calls > bound {
				t.Errorf("FindBestQP made %d evaluator calls, bound is %d", ev.calls, bound)
			}
		})
	}
}

func TestFindBestQPDegenerateRange(t *testing.T) {
	ev := &funcEvaluator{score: linearScore}
	got, err := FindBestQP(context.Background(), ev, 25, 25, 0.8)
	if err != nil {
		t.Fatalf("FindBestQP() error = %v", err)
	}
	if got != 25 {
		t.Errorf("FindBestQP(25, 25) = %d, want 25", got)
	}
	if ev.calls != 0 {
		t.Errorf("degenerate range made %d evaluator calls, want 0", ev.calls)
	}
}

func TestFindBestQPUpperBoundShortcut(t *testing.T) {
	ev := &funcEvaluator{score: linearScore}
	got, err := FindBestQP(context.Background(), ev, 10, 40, 0.5)
	if err != nil {
		t.Fatalf("FindBestQP() error = %v", err)
	}
	if got != 40 {
		t.Errorf("FindBestQP() = %d, want 40", got)
	}
	if ev.calls != 1 {
		t.Errorf("upper-bound shortcut made %d evaluator calls, want 1", ev.calls)
	}
}

func TestFindBestQPPropagatesError(t *testing.T) {
	wantErr := errors.New("encode failed")
	ev := &funcEvaluator{score: func(int) (float64, error) { return 0, wantErr }}

	_, err := FindBestQP(context.Background(), ev, 10, 40, 0.8)
	if !errors.Is(err, wantErr) {
		t.Errorf("FindBestQP() error = %v, want %v", err, wantErr)
	}
}

func TestReduce(t *testing.T) {
	scores := []float64{0.95, 0.99, 0.91}

	tests := []struct {
		name     string
		metric   config.Metric
		scores   []float64
		expected float64
	}{
		{"avg", config.MetricAvg, scores, 0.95},
		{"min", config.MetricMin, scores, 0.91},
		{"max", config.MetricMax, scores, 0.99},
		{"single value", config.MetricMin, []float64{0.97}, 0.97},
		{"empty avg", config.MetricAvg, nil, 0},
		{"empty min", config.MetricMin, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(tt.metric, tt.scores)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Reduce(%s, %v) = %v, want %v", tt.metric, tt.scores, got, tt.expected)
			}
		})
	}
}
