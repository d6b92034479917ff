package engine

import "math"

// CohortWeights returns the population shares of the two cohorts. Cohorts
// are floored at one household, so the denominator is never zero in a run.
func CohortWeights(n1, n2 float64) (float64, float64) {
	return safeDiv(n1, n1+n2), safeDiv(n2, n1+n2)
}

func (e *Engine) weights(s *step) {
	s.alfa1, s.alfa2 = CohortWeights(e.st.NumHH1[s.i], e.st.NumHH2[s.i])
}

// demographicRates evaluates the mortality and base birth trends at year
// i+YearOffset, adds the shocks, then applies the temperature modifier to the
// aggregate mortality and to plant growth.
func (e *Engine) demographicRates(s *step) {
	p, r := e.p, &s.rec
	t := float64(s.i) + p.YearOffset

	m1 := (p.Mort1Log*math.Log(t)+p.Mort1Base)/1000 + p.SigmaM*e.noise.M1.At(s.i)
	m2 := (p.Mort2Lin*t+p.Mort2Base)/1000 + p.SigmaM*e.noise.M2.At(s.i)
	m := m1*s.alfa1 + m2*s.alfa2

	s.etaa1 = (p.Birth1Amp*math.Exp(-p.Birth1Rate*t) + p.BirthFloor) / 1000
	s.etaa2 = (p.Birth2Amp*math.Exp(-p.Birth2Rate*t) + p.BirthFloor) / 1000

	f := e.growthFactor(s.i)
	r.GRPP1 = p.GRPP1p * f
	r.GRPP2 = p.GRPP2p * f
	r.GRPP3 = p.GRPP3p * f

	mHH := 2*m - m*f

	r.MHH1, r.MHH2, r.MHH = m1, m2, mHH
	r.AA, r.BB, r.CC = m1, m2, m
	r.DD, r.EE, r.FF = m1, m2, mHH
}

// births sets the per-capita birth rates from the wage relative to the
// consumption-weighted price. With nothing consumed, or nothing priced, no
// births occur.
func (e *Engine) births(s *step) {
	p, r := e.p, &s.rec

	consumed := r.P1HH + r.H1HH + r.ISIRP
	spend := r.PriceP1*r.P1HH + r.PriceH1*r.H1HH + r.PriceIS*r.ISIRP
	if consumed == 0 || spend == 0 {
		r.WeightedPrice, r.Births, r.Births1, r.Births2 = 0, 0, 0, 0
		return
	}

	r.WeightedPrice = (spend + r.PriceEE*r.EEHHMass) / (consumed + r.EEHHMass)
	pressure := p.Etab * math.Sqrt(safeDiv(r.W, r.WeightedPrice))

	r.Births1 = math.Max(s.etaa1-pressure+p.SigmaB*e.noise.B1.At(s.i), 0)
	r.Births2 = math.Max(s.etaa2-pressure+p.SigmaB*e.noise.B2.At(s.i), 0)
	r.Births = r.Births1*s.alfa1 + r.Births2*s.alfa2
}

// nextPopulation applies births, deaths and the quadratic excess-mass
// penalty, flooring at one household.
func nextPopulation(n, births, deaths, health, perCapMass, ideal float64) float64 {
	dev := perCapMass - ideal
	next := n + math.Ceil(births*n) - math.Ceil(deaths*n) - math.Ceil(n*health*dev*dev)
	return math.Max(next, 1)
}

func (e *Engine) advancePopulation(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	st.NumHH1[i+1] = nextPopulation(st.NumHH1[i], r.Births1, r.MHH1, p.Phi-p.Phi1, st.PerCapMass1[i], p.IdealPerCapMass)
	st.NumHH2[i+1] = nextPopulation(st.NumHH2[i], r.Births2, r.MHH2, p.Phi-p.Phi2, st.PerCapMass2[i], p.IdealPerCapMass)
	st.NumHH[i+1] = nextPopulation(st.NumHH[i], r.Births, r.MHH, p.Phi-p.Phi1, st.PerCapMass[i], p.IdealPerCapMass)

	st.PerCapMass1[i+1] = st.HH1[i+1] / st.NumHH1[i+1]
	st.PerCapMass2[i+1] = st.HH2[i+1] / st.NumHH2[i+1]
	st.PerCapMass[i+1] = s.alfa1*st.PerCapMass1[i+1] + s.alfa2*st.PerCapMass2[i+1]
}
