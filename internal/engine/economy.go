package engine

import "math"

// economy sets wages, the mobility factor, and the price and production of
// each traded good. A good whose stock is empty, or a society below the
// viability threshold, trades nothing.
func (e *Engine) economy(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	s.isSignal = safeDiv(p.ISBar-(st.ISDeficit[i]+st.ISMass[i]), p.Theta+p.Lambda)
	s.viable = st.HH[i] != 0 && st.NumHH[i] >= p.MinViableHouseholds

	r.W1 = math.Max(p.AW1+p.CW1*s.isSignal-p.DW1*st.NumHH[i], 0)
	r.W2 = math.Max(p.AW2+p.CW2*s.isSignal-p.DW2*st.NumHH[i], 0)
	r.W = r.W1*s.alfa1 + r.W2*s.alfa2

	e.mobility(s)

	if st.P1[i] != 0 {
		gap := st.P1Deficit[i] + st.P1[i] - p.P1Bar
		r.PriceP1 = math.Max(p.AP1+p.BP1*r.W-p.CP1*gap, 0)
		r.P1Production = math.Max(p.AP1p-p.BP1p*r.W-p.CP1p*gap, 0)
	}

	if st.H1[i] != 0 {
		gap := st.H1Deficit[i] + st.H1[i] - p.H1Bar
		r.PriceH1 = math.Max(p.AH1+p.BH1*r.W-p.CH1*gap, 0)
		r.H1Production = math.Max(p.AH1p-p.BH1p*r.W-p.CH1p*gap, 0)
	}

	if s.viable {
		r.PriceIS = math.Max(p.AIS+p.BIS*r.W+p.CIS*s.isSignal, 0)
		r.ISProduction = math.Max(p.AISp-p.BISp*r.W+p.CISp*s.isSignal, 0)
		r.PriceEE = math.Max(p.AEE+p.BEE*r.W+safeDiv(p.CEE, st.ERP[i]), 0)
	}
}

// mobility computes the economic mobility factor, the signed share of
// households moving between cohorts, capped by the size of the source cohort.
func (e *Engine) mobility(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i
	n := st.NumHH[i]

	emf := p.Psi * safeDiv(p.Wgid-r.W*n, p.Wgid)
	if emf*n > st.NumHH1[i] {
		emf = safeDiv(st.NumHH1[i], n)
	}
	if emf*n < -st.NumHH2[i] {
		emf = safeDiv(st.NumHH2[i], n)
	}

	r.EMF = emf
	r.EMFHH = math.RoundToEven(emf * n)
}
