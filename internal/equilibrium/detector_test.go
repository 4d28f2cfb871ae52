package equilibrium

import (
	"math"
	"testing"
)

func TestSettledTooFewSamples(t *testing.T) {
	det := Detector{Window: 5, Tolerance: 1e-3}

	if det.Settled(nil) {
		t.Error("expected false for empty history")
	}
	if det.Settled([]float64{1.0}) {
		t.Error("expected false for single sample")
	}
}

func TestSettledWindowOfOneNeverFires(t *testing.T) {
	det := Detector{Window: 1, Tolerance: 1e-3}

	history := []float64{1.0, 1.0, 1.0, 1.0}
	if det.Settled(history) {
		t.Error("window of one must never settle")
	}
}

func TestSettledWindowClippedToHistory(t *testing.T) {
	det := Detector{Window: 100, Tolerance: 1e-3}

	if !det.Settled([]float64{2.0, 2.0, 2.0}) {
		t.Error("expected settled for constant history shorter than window")
	}
}

func TestSettledConvergingSequence(t *testing.T) {
	det := Detector{Window: 4, Tolerance: 1e-3}

	// Residual decays as 1/2^k toward the limit 1.
	history := make([]float64, 40)
	for k := range history {
		history[k] = 1.0 - math.Pow(0.5, float64(k))
	}

	first := -1
	for i := 2; i <= len(history); i++ {
		if det.Settled(history[:i]) {
			first = i
			break
		}
	}
	if first < 0 {
		t.Fatal("detector never fired on a converging sequence")
	}

	// No premature firing, and no flapping back to false afterwards.
	for i := 2; i < first; i++ {
		if det.Settled(history[:i]) {
			t.Errorf("premature settled at %d samples (threshold %d)", i, first)
		}
	}
	for i := first; i <= len(history); i++ {
		if !det.Settled(history[:i]) {
			t.Errorf("detector flapped to false at %d samples", i)
		}
	}
}

func TestSettledNonFiniteSamples(t *testing.T) {
	det := Detector{Window: 3, Tolerance: 1e-3}

	if det.Settled([]float64{1.0, 1.0, math.NaN()}) {
		t.Error("expected false when the window holds NaN")
	}
	if det.Settled([]float64{1.0, math.Inf(1), math.Inf(1)}) {
		t.Error("expected false when the window holds Inf")
	}
}

func TestSettledAllRequiresEveryHistory(t *testing.T) {
	det := Detector{Window: 3, Tolerance: 1e-6}

	flat := []float64{1.0, 1.0, 1.0, 1.0}
	drifting := []float64{1.0, 2.0, 3.0, 4.0}

	if det.SettledAll(flat, flat, drifting) {
		t.Error("joint check must fail while one history still drifts")
	}
	if det.SettledAll(drifting, flat, flat) {
		t.Error("joint check must fail regardless of which history drifts")
	}
	if !det.SettledAll(flat, flat, flat) {
		t.Error("joint check must pass once every history settled")
	}
}

func TestSettledAllNoHistories(t *testing.T) {
	det := Detector{Window: 3, Tolerance: 1e-6}
	if det.SettledAll() {
		t.Error("expected false with no histories")
	}
}
