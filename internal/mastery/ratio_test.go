package mastery

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/multiplier/internal/operand"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestPerformanceRatio(t *testing.T) {
	tests := []struct {
		allowed, elapsed time.Duration
		want             float64
	}{
		{2 * time.Second, 1 * time.Second, 2.0},
		{2 * time.Second, 2 * time.Second, 1.0},
		{2 * time.Second, 4 * time.Second, 0.5},
	}
	for _, tt := range tests {
		if got := PerformanceRatio(tt.allowed, tt.elapsed); !almostEqual(got, tt.want) {
			t.Errorf("PerformanceRatio(%v, %v) = %f, want %f", tt.allowed, tt.elapsed, got, tt.want)
		}
	}
	if !math.IsInf(PerformanceRatio(time.Second, 0), 1) {
		t.Error("expected +Inf for zero elapsed time")
	}
}

func TestReportRatio(t *testing.T) {
	if got := ReportRatio(1.25); !almostEqual(got, 25) {
		t.Errorf("ReportRatio(1.25) = %f, want 25", got)
	}
	if got := ReportRatio(0.5); !almostEqual(got, -50) {
		t.Errorf("ReportRatio(0.5) = %f, want -50", got)
	}
}

func TestExtremes(t *testing.T) {
	var e Extremes
	if _, _, ok := e.Get(); ok {
		t.Fatal("zero Extremes should have nothing recorded")
	}

	e.Record(operand.New(3, 4), 1.5)
	worst, best, ok := e.Get()
	if !ok || worst.Ratio != 1.5 || best.Ratio != 1.5 {
		t.Fatalf("after one record: worst=%v best=%v ok=%v", worst, best, ok)
	}

	e.Record(operand.New(7, 8), 1.1)
	e.Record(operand.New(2, 2), 3.0)
	worst, best, _ = e.Get()
	if worst.Pair != operand.New(7, 8) || !almostEqual(worst.Ratio, 1.1) {
		t.Errorf("worst = %+v, want 7×8 at 1.1", worst)
	}
	if best.Pair != operand.New(2, 2) || !almostEqual(best.Ratio, 3.0) {
		t.Errorf("best = %+v, want 2×2 at 3.0", best)
	}

	e.Reset()
	if _, _, ok := e.Get(); ok {
		t.Error("expected nothing recorded after Reset")
	}
}
