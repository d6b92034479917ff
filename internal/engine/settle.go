package engine

import "math"

// settleResourcePool collects every turnover flow into the resource pool and
// rations the pool's outgoing claims. The transfer to the industrial resource
// pool is served first; plant uptake and industrial extraction share what is
// left pro rata.
func (e *Engine) settleResourcePool(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	r.RPIS = math.Min(safeDiv(p.Lambda*r.P1IS, p.Theta), r.RPISDemand)

	s.stockRP = math.Max(st.RP[i]+
		r.P1RP+r.P2RP+r.P3RP+
		r.H1RP+r.H2RP+r.H3RP+
		r.C1RP+r.C2RP+
		r.HHRP+r.IRPRP, 0)

	balance(s.stockRP, 0, &s.rpirp, &r.RPP1, &r.RPP2, &r.RPP3, &r.RPIS)

	// industry takes P1 and RP in fixed proportion
	r.P1IS = math.Min(safeDiv(p.Theta*r.RPIS, p.Lambda), r.P1IS)
}

// settleEnergy draws the energy demanded by households and industry from the
// energy resource pool. An exhausted pool delivers only what it holds; an
// empty one zeroes every energy quantity for the step.
func (e *Engine) settleEnergy(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	if st.ERP[i] <= 0 {
		r.PriceEE = 0
		r.EEProduction = 0
		r.EEHHMass = 0
		r.EEHHTotDemand = 0
		r.EEISDemand = 0
		r.EEHHDemand = 0
		r.EEIRP = 0
		s.erpee = 0
		return
	}

	r.EEProduction = r.EEHHTotDemand + r.EEISDemand
	r.EEHHMass = r.EEHHTotDemand * p.GammaEEIRP
	s.erpee = math.Min(r.EEProduction*p.GammaEEIRP, st.ERP[i])
	r.EEIRP = s.erpee
}

// settleIndustry delivers industrial goods to households, capped at the
// industrial mass available, and lets surplus make up an accumulated
// shortfall.
func (e *Engine) settleIndustry(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	s.isHHFlow = math.Max((p.Theta+p.Lambda)*r.ISHHDemand*st.NumHH[i], 0)
	r.ISIRP = s.isHHFlow

	avail := st.ISMass[i] + r.P1IS + r.RPIS
	if balance(avail, 0, &r.ISIRP) != Unchanged {
		return
	}
	if st.ISDeficit[i] < 0 && st.NumHH[i] >= 2 {
		granted, _ := CatchUp(avail-r.ISIRP, -st.ISDeficit[i], []float64{st.ISDeficit[i]})
		r.ISIRP += granted
	}
}
