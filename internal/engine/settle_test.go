package engine

import (
	"math"
	"testing"

	"github.com/san-kum/gssem/internal/params"
)

const tol = 1e-12

func newTestEngine(t *testing.T, T int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Horizon = T
	e, err := New(params.Default(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func near(a, b float64) bool { return math.Abs(a-b) <= tol }

func TestBalanceP1CatchUpIsBoundAcrossPasses(t *testing.T) {
	e := newTestEngine(t, 3)
	st := e.st
	st.P1[0] = 1
	st.P1H1Deficit[0] = -0.003
	st.P1HHDeficit[0] = -0.004
	st.P1Deficit[0] = -0.007

	s := &step{i: 0}
	s.rec.RPP1 = 0.1
	s.rec.P1RP = 0.1
	s.rec.P1H1 = 0.2
	s.rec.P1HH = 0.3

	e.balanceP1(s)
	e.balanceP1(s)

	if !near(s.p1Granted, 0.007) {
		t.Errorf("granted = %g, want 0.007", s.p1Granted)
	}
	if !near(s.rec.P1H1, 0.203) || !near(s.rec.P1HH, 0.304) {
		t.Errorf("P1H1 = %g, P1HH = %g, want 0.203 and 0.304", s.rec.P1H1, s.rec.P1HH)
	}
	if s.rec.P1IS != 0 {
		t.Errorf("P1IS had no deficit but received %g", s.rec.P1IS)
	}
}

func TestBalanceP1CatchUpLimitedBySurplus(t *testing.T) {
	e := newTestEngine(t, 3)
	st := e.st
	st.P1[0] = 0.5
	st.P1H1Deficit[0] = -1
	st.P1HHDeficit[0] = -3
	st.P1Deficit[0] = -4

	s := &step{i: 0}
	s.rec.P1H1 = 0.2
	s.rec.P1HH = 0.2

	e.balanceP1(s)

	// surplus 0.1 split 1:3
	if !near(s.p1Granted, 0.1) || !near(s.rec.P1H1, 0.225) || !near(s.rec.P1HH, 0.275) {
		t.Errorf("granted = %g, P1H1 = %g, P1HH = %g", s.p1Granted, s.rec.P1H1, s.rec.P1HH)
	}
}

func TestBalanceH1CatchUpIsBoundAcrossPasses(t *testing.T) {
	e := newTestEngine(t, 3)
	st := e.st
	st.H1[0] = 1
	st.H1Deficit[0] = -0.002

	s := &step{i: 0}
	s.rec.H1HH = 0.5

	e.balanceH1(s)
	e.balanceH1(s)

	if !near(s.rec.H1HH, 0.502) || !near(s.h1Granted, 0.002) {
		t.Errorf("H1HH = %g, granted = %g, want 0.502 and 0.002", s.rec.H1HH, s.h1Granted)
	}
}

func TestSettleIndustryCatchUp(t *testing.T) {
	tests := []struct {
		name      string
		numHH     float64
		isMass    float64
		deficit   float64
		wantISIRP float64
	}{
		{"covers deficit", 1000, 0.5, -0.01, 0.01},
		{"limited by mass", 1000, 0.004, -0.01, 0.004},
		{"single household", 1, 0.5, -0.01, 0},
		{"no deficit", 1000, 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 3)
			st := e.st
			st.NumHH[0] = tt.numHH
			st.ISMass[0] = tt.isMass
			st.ISDeficit[0] = tt.deficit

			s := &step{i: 0}
			e.settleIndustry(s)

			if !near(s.rec.ISIRP, tt.wantISIRP) {
				t.Errorf("ISIRP = %g, want %g", s.rec.ISIRP, tt.wantISIRP)
			}
		})
	}
}

func TestClaimIRPCapsAtPool(t *testing.T) {
	e := newTestEngine(t, 3)
	p, st := e.p, e.st
	st.IRP[0] = 0.3

	s := &step{i: 0, rpirp: 0.1}
	s.rec.IRPRP = 0.1
	s.rec.IRPP2 = 0.5
	s.rec.IRPP3 = 0.5

	e.claimIRP(s)

	// pool = 0.3 - 0.1 + 0.1, split by the draw rates
	rates := p.RIRPP2 + p.RIRPP3
	if !near(s.rec.IRPP2, 0.3*p.RIRPP2/rates) || !near(s.rec.IRPP3, 0.3*p.RIRPP3/rates) {
		t.Errorf("IRPP2 = %g, IRPP3 = %g", s.rec.IRPP2, s.rec.IRPP3)
	}
	if !near(s.rec.IRPP2+s.rec.IRPP3, 0.3) {
		t.Errorf("draws sum to %g, want the pool 0.3", s.rec.IRPP2+s.rec.IRPP3)
	}

	st.IRP[0] = 0
	s = &step{i: 0}
	s.rec.IRPP2, s.rec.IRPP3 = 0.5, 0.5
	e.claimIRP(s)
	if s.rec.IRPP2 != 0 || s.rec.IRPP3 != 0 {
		t.Errorf("empty pool still drawn: %g, %g", s.rec.IRPP2, s.rec.IRPP3)
	}
}

// The resource pool holds 0.1 against a P1 uptake claim of 0.5. Settlement
// shrinks RPP1, and the second pass must then ration P1's outflows to the
// smaller inflow.
func TestResourcePoolShortageReRationsP1(t *testing.T) {
	tests := []struct {
		name      string
		rpirp     float64
		rpp2      float64
		wantRPIRP float64
		wantRPP1  float64
		wantRPP2  float64
		outcome   Outcome
	}{
		{"prorated claims", 0, 0, 0, 0.1, 0, Prorated},
		{"prorated after transfer", 0.04, 0.1, 0.04, 0.05, 0.01, Prorated},
		{"transfer exhausts pool", 0.2, 0.1, 0.1, 0, 0, Exhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 3)
			st := e.st
			st.P1[0] = 0.9
			st.RP[0] = 0
			st.HH[0] = 0
			st.PerCapMass[0] = 0

			s := &step{i: 0, rpirp: tt.rpirp}
			r := &s.rec
			r.RPP1 = 0.5
			r.RPP2 = tt.rpp2
			r.P1RP = 0.1
			r.P1H2 = 0.1
			r.P1H1 = 0.4
			r.P1HH = 0.5

			e.balancePass(s)
			if !near(r.P1H1, 0.4) || !near(r.P1HH, 0.5) {
				t.Fatalf("first pass rationed P1: P1H1 = %g, P1HH = %g", r.P1H1, r.P1HH)
			}

			e.settleResourcePool(s)
			if !near(s.stockRP, 0.1) {
				t.Fatalf("stockRP = %g, want 0.1", s.stockRP)
			}
			if !near(s.rpirp, tt.wantRPIRP) || !near(r.RPP1, tt.wantRPP1) || !near(r.RPP2, tt.wantRPP2) {
				t.Errorf("rpirp = %g, RPP1 = %g, RPP2 = %g, want %g, %g, %g",
					s.rpirp, r.RPP1, r.RPP2, tt.wantRPIRP, tt.wantRPP1, tt.wantRPP2)
			}
			if got := r.RPP1 + r.RPP2 + r.RPP3 + r.RPIS + s.rpirp; !near(got, s.stockRP) {
				t.Errorf("pool outflows = %g, want stockRP %g", got, s.stockRP)
			}
			if tt.outcome == Prorated && r.RPP1 == 0 {
				t.Error("prorated settlement zeroed the uptake claim")
			}

			e.balancePass(s)
			out := r.P1RP + r.P1H2 + r.P1H1 + r.P1HH + r.P1IS
			if !near(out, st.P1[0]+r.RPP1) {
				t.Errorf("P1 outflows = %g, want P1 + RPP1 = %g", out, st.P1[0]+r.RPP1)
			}
			if !near(r.P1H1/r.P1HH, 0.8) {
				t.Errorf("P1 claims lost their proportions: %g / %g", r.P1H1, r.P1HH)
			}
		})
	}
}

// Deficits carried into a step are made up from surplus and settle at zero.
func TestStepClosesCarriedDeficits(t *testing.T) {
	e := newTestEngine(t, 3)
	st := e.st
	st.P1H1Deficit[0] = -0.003
	st.P1HHDeficit[0] = -0.004
	st.P1Deficit[0] = -0.007
	st.H1Deficit[0] = -0.002
	st.ISDeficit[0] = -0.002

	e.Step(0)

	deficits := []struct {
		name   string
		series []float64
	}{
		{"P1H1", st.P1H1Deficit},
		{"P1IS", st.P1ISDeficit},
		{"P1HH", st.P1HHDeficit},
		{"P1", st.P1Deficit},
		{"H1", st.H1Deficit},
		{"IS", st.ISDeficit},
	}
	for _, d := range deficits {
		if v := d.series[1]; math.Abs(v) > 1e-9 {
			t.Errorf("%s deficit = %g after catch-up, want 0", d.name, v)
		}
	}
}
