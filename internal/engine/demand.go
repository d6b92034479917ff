package engine

import (
	"math"

	"github.com/san-kum/gssem/internal/params"
)

// good holds one household demand equation's coefficients: intercept d,
// budget share z, and the sensitivities k, m, n to the P1, H1 and own or
// industrial price.
type good struct {
	d, z, k, m, n float64
}

func householdGoods(p *params.Params) (p1, h1, is, ee good) {
	p1 = good{p.DP1HH, p.ZP1HH, p.KP1HH, p.MP1HH, p.NP1HH}
	h1 = good{p.DH1HH, p.ZH1HH, p.KH1HH, p.MH1HH, p.NH1HH}
	is = good{p.DISHH, p.ZISHH, p.KISHH, p.MISHH, p.NISHH}
	ee = good{p.DEEHH, p.ZEEHH, p.KEEHH, p.MEEHH, p.NEEHH}
	return
}

// plantDemand is the closed-form per-household P1 demand of the system
// formed by P1, H1 and the outside good x priced at px.
func plantDemand(p1, h1, x good, pP1, pH1, px float64) float64 {
	den := -1 + p1.z + h1.z + x.z
	a := p1.d + p1.m*pH1 + p1.n*px - p1.k*pP1
	num := -a*(1-h1.z-x.z) +
		p1.z*(-h1.d-x.d+(h1.m-x.m)*pH1+(x.n-h1.n)*px-h1.k*pP1)
	return math.Max(safeDiv(num, den), 0)
}

func herbivoreDemand(p1, h1, x good, pP1, pH1, px float64) float64 {
	den := -1 + p1.z + h1.z + x.z
	b := h1.d - h1.m*pH1 + h1.n*px + h1.k*pP1
	num := -b*(1-p1.z-x.z) +
		h1.z*(-x.d-p1.d-(x.m+p1.m)*pH1+(x.n-p1.n)*px+(p1.k-x.k)*pP1)
	return math.Max(safeDiv(num, den), 0)
}

// outsideDemand is the demand for the third good x of the system; it serves
// both industrial goods and energy.
func outsideDemand(p1, h1, x good, pP1, pH1, px float64) float64 {
	den := -1 + p1.z + h1.z + x.z
	base := x.d + x.m*pH1 - x.n*px + x.k*pP1
	num := base*(1-p1.z-h1.z) +
		x.z*(h1.d+p1.d+(p1.m-h1.m)*pH1+(h1.n+p1.n)*px+(h1.k-p1.k)*pP1)
	return math.Max(-safeDiv(num, den), 0)
}

// demand computes household demands split by cohort, industrial and energy
// demands, and the consumption of P1 by H2 and H1 by C1.
func (e *Engine) demand(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	if st.H1[i] == 0 || !s.viable {
		s.p1h1Demand = 0
		r.P2H1 = 0
	} else {
		gap := st.H1Deficit[i] + st.H1[i] - p.H1Bar
		s.p1h1Demand = math.Max(p.DP1H1-p.EP1H1*r.W-p.FP1H1*r.PriceP1-p.GP1H1*gap, 0)
		r.P2H1 = p.KHat
	}

	var p1HH, h1HH, isHH, eeHH float64
	if s.viable {
		gP1, gH1, gIS, gEE := householdGoods(p)
		pP1, pH1 := r.PriceP1, r.PriceH1
		p1HH = plantDemand(gP1, gH1, gIS, pP1, pH1, r.PriceIS) * p.DemandScale
		h1HH = herbivoreDemand(gP1, gH1, gIS, pP1, pH1, r.PriceIS) * p.DemandScale
		isHH = outsideDemand(gP1, gH1, gIS, pP1, pH1, r.PriceIS) * p.DemandScale
		eeHH = outsideDemand(gP1, gH1, gEE, pP1, pH1, r.PriceEE) * p.DemandScale
	}

	r.P1HHDemand1, r.P1HHDemand2 = p1HH*p.F2Pc[0], p1HH*p.F2Pc[1]
	r.H1HHDemand1, r.H1HHDemand2 = h1HH*p.F2Pc[0], h1HH*p.F2Pc[1]
	r.ISHHDemand1, r.ISHHDemand2 = isHH*p.F2Pd[0], isHH*p.F2Pd[1]
	r.EEHHDemand1, r.EEHHDemand2 = eeHH*p.F2Pd[0], eeHH*p.F2Pd[1]

	r.P1HHDemand = r.P1HHDemand1*s.alfa1 + r.P1HHDemand2*s.alfa2
	r.H1HHDemand = r.H1HHDemand1*s.alfa1 + r.H1HHDemand2*s.alfa2
	r.ISHHDemand = r.ISHHDemand1*s.alfa1 + r.ISHHDemand2*s.alfa2
	r.EEHHDemand = r.EEHHDemand1*s.alfa1 + r.EEHHDemand2*s.alfa2

	r.EEHHTotDemand = r.EEHHDemand * st.NumHH[i]
	r.EEISDemand = r.ISProduction * p.GammaEEIS

	if s.viable {
		if st.P1[i] != 0 && st.H2[i] != 0 {
			r.P1H2 = math.Max(r.GRPP1*st.P1[i]*st.RP[i]-p.MP1*st.P1[i]-r.P1Production, 0)
		}
		if st.H1[i] != 0 && st.C1[i] != 0 {
			r.H1C1 = math.Max(s.p1h1Demand+r.P2H1-p.MH1*st.H1[i]-r.H1Production, 0)
		}
	} else {
		// no economy: predation reverts to Lotka-Volterra
		r.P1H2 = p.GP1H2 * st.P1[i] * st.H2[i]
		r.H1C1 = p.GH1C1 * st.H1[i] * st.C1[i]
	}

	r.P1ISDemand = p.Theta * r.ISProduction
	r.RPISDemand = p.Lambda * r.ISProduction
}
