package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// growthFactor is the Gaussian temperature response of growth, 1 at the
// baseline temperature.
func (e *Engine) growthFactor(i int) float64 {
	d := e.st.Temp[i] - e.p.TempO
	return math.Exp(-(d * d) / e.p.GrowthTempWidth)
}

// temperature writes the anomaly and temperature of step i+1 from the
// current CO2eq. Growth in step i keeps using temp[i].
func (e *Engine) temperature(s *step) {
	st, i := e.st, s.i
	st.ATemp[i+1] = e.p.TempSlope*st.CO2eq[i] + e.p.TempIntercept
	st.Temp[i+1] = e.p.TempO + st.ATemp[i+1]
}

// emissions accumulates CO2eq from the ten indicator quantities of step i.
func (e *Engine) emissions(s *step) {
	st, r, i := e.st, &s.rec, s.i
	indicators := []float64{
		st.P1[i],
		st.H1[i],
		st.NumHH[i],
		r.P1Production,
		r.H1Production,
		r.ISProduction,
		r.EEProduction,
		st.P2[i],
		st.P3[i],
		st.RP[i],
	}
	st.CO2eq[i+1] = st.CO2eq[i] + floats.Dot(indicators, e.p.GtCO2eq[:])*e.p.PPMCO2eq
}
