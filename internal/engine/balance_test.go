package engine

import (
	"math"
	"testing"
)

func TestRation(t *testing.T) {
	tests := []struct {
		name         string
		avail, floor float64
		turnover     float64
		claims       []float64
		wantTurnover float64
		wantClaims   []float64
		wantOutcome  Outcome
	}{
		{
			name:  "fits",
			avail: 10, turnover: 1, claims: []float64{2, 3},
			wantTurnover: 1, wantClaims: []float64{2, 3}, wantOutcome: Unchanged,
		},
		{
			name:  "exact fit",
			avail: 6, turnover: 1, claims: []float64{2, 3},
			wantTurnover: 1, wantClaims: []float64{2, 3}, wantOutcome: Unchanged,
		},
		{
			name:  "prorated",
			avail: 10, turnover: 2, claims: []float64{4, 4, 8},
			wantTurnover: 2, wantClaims: []float64{2, 2, 4}, wantOutcome: Prorated,
		},
		{
			name:  "turnover exceeds stock",
			avail: 1, turnover: 2, claims: []float64{4, 4},
			wantTurnover: 1, wantClaims: []float64{0, 0}, wantOutcome: Exhausted,
		},
		{
			name:  "floor triggers rationing",
			avail: 1, floor: 0.5, turnover: 0.2, claims: []float64{0.2, 0.2},
			wantTurnover: 0.2, wantClaims: []float64{0.4, 0.4}, wantOutcome: Prorated,
		},
		{
			name:  "floor exhausts",
			avail: 1, floor: 0.5, turnover: 0.6, claims: []float64{0.1},
			wantTurnover: 1, wantClaims: []float64{0}, wantOutcome: Exhausted,
		},
		{
			name:  "mandatory only",
			avail: 1, floor: 1e-4, turnover: 2,
			wantTurnover: 1, wantClaims: []float64{}, wantOutcome: Exhausted,
		},
		{
			name:  "empty stock",
			avail: 0, turnover: 0, claims: []float64{1, 2},
			wantTurnover: 0, wantClaims: []float64{0, 0}, wantOutcome: Prorated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turnover, claims, outcome := Ration(tt.avail, tt.floor, tt.turnover, tt.claims)

			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", outcome, tt.wantOutcome)
			}
			if math.Abs(turnover-tt.wantTurnover) > 1e-12 {
				t.Errorf("turnover = %g, want %g", turnover, tt.wantTurnover)
			}
			if len(claims) != len(tt.wantClaims) {
				t.Fatalf("got %d claims, want %d", len(claims), len(tt.wantClaims))
			}
			for k := range claims {
				if math.IsNaN(claims[k]) || math.Abs(claims[k]-tt.wantClaims[k]) > 1e-12 {
					t.Errorf("claim %d = %g, want %g", k, claims[k], tt.wantClaims[k])
				}
			}
		})
	}
}

func TestRationSumsToRemaining(t *testing.T) {
	claims := []float64{0.3, 1.7, 2.9, 0.01}
	avail, turnover := 3.3, 0.4

	_, out, outcome := Ration(avail, 0, turnover, claims)
	if outcome != Prorated {
		t.Fatalf("expected prorated, got %v", outcome)
	}

	sum := 0.0
	for _, c := range out {
		sum += c
	}
	if sum != avail-turnover {
		t.Errorf("claims sum to %.17g, want %.17g", sum, avail-turnover)
	}

	// proportions are preserved
	for k := 0; k < len(out)-1; k++ {
		if math.Abs(out[k]/claims[k]-out[0]/claims[0]) > 1e-12 {
			t.Errorf("claim %d scaled by %g, claim 0 by %g", k, out[k]/claims[k], out[0]/claims[0])
		}
	}
}

func TestRationDoesNotModifyInput(t *testing.T) {
	claims := []float64{5, 5}
	Ration(4, 0, 0, claims)
	if claims[0] != 5 || claims[1] != 5 {
		t.Errorf("input modified: %v", claims)
	}
}

func TestCatchUp(t *testing.T) {
	tests := []struct {
		name        string
		surplus     float64
		owed        float64
		deficits    []float64
		wantGranted float64
		wantExtra   []float64
	}{
		{"bounded by owed", 10, 3, []float64{-1, -2}, 3, []float64{1, 2}},
		{"bounded by surplus", 1, 3, []float64{-1, -2}, 1, []float64{1.0 / 3, 2.0 / 3}},
		{"nothing owed", 10, 0, []float64{-1}, 0, []float64{0}},
		{"negative owed", 10, -2, []float64{-1}, 0, []float64{0}},
		{"no surplus", 0, 3, []float64{-3}, 0, []float64{0}},
		{"positive sub-deficit skipped", 4, 4, []float64{-4, 2}, 4, []float64{4, 0}},
		{"no negative sub-deficit", 4, 4, []float64{1, 2}, 0, []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			granted, extra := CatchUp(tt.surplus, tt.owed, tt.deficits)
			if math.Abs(granted-tt.wantGranted) > 1e-12 {
				t.Errorf("granted = %g, want %g", granted, tt.wantGranted)
			}
			sum := 0.0
			for k := range extra {
				sum += extra[k]
				if math.Abs(extra[k]-tt.wantExtra[k]) > 1e-12 {
					t.Errorf("extra[%d] = %g, want %g", k, extra[k], tt.wantExtra[k])
				}
			}
			if math.Abs(sum-granted) > 1e-12 {
				t.Errorf("extras sum to %g, granted %g", sum, granted)
			}
		})
	}
}

func TestBalanceWritesBack(t *testing.T) {
	turnover, a, b := 1.0, 3.0, 6.0
	outcome := balance(4, 0, &turnover, &a, &b)

	if outcome != Prorated {
		t.Fatalf("expected prorated, got %v", outcome)
	}
	if turnover != 1 || math.Abs(a-1) > 1e-12 || math.Abs(b-2) > 1e-12 {
		t.Errorf("got turnover=%g a=%g b=%g", turnover, a, b)
	}
}

func TestSafeDivAndSnap(t *testing.T) {
	if safeDiv(1, 0) != 0 {
		t.Error("division by zero should yield 0")
	}
	if safeDiv(6, 3) != 2 {
		t.Error("expected 2")
	}
	if snap(-1e-12) != 0 {
		t.Error("residue should snap to zero")
	}
	if snap(-1) != -1 {
		t.Error("real negatives must not be hidden")
	}
}

func TestOutcomeString(t *testing.T) {
	if Unchanged.String() != "unchanged" || Exhausted.String() != "exhausted" || Prorated.String() != "prorated" {
		t.Error("unexpected outcome names")
	}
}
