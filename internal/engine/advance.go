package engine

// advance writes index i+1 of every compartment, flow series and deficit
// from the settled flows of step i.
func (e *Engine) advance(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i
	next := i + 1

	st.P1[next] = snap(st.P1[i] + r.RPP1 - r.P1RP - r.P1H2 - r.P1H1 - r.P1HH - r.P1IS)
	st.IP1[next] = r.RPP1
	st.DP1[next] = r.P1RP + r.P1H1 + r.P1H2 + r.P1HH + r.P1IS

	// a plant stock that was empty demanded nothing
	if st.P1[i] == 0 {
		s.p1h1Demand = 0
		r.P1ISDemand = 0
		r.P1HHDemand = 0
		r.P1HHDemand1 = 0
		r.P1HHDemand2 = 0
	}
	st.P1H1Deficit[next] = st.P1H1Deficit[i] + r.P1H1 - s.p1h1Demand
	st.P1ISDeficit[next] = st.P1ISDeficit[i] + r.P1IS - r.P1ISDemand
	st.P1HHDeficit[next] = st.P1HHDeficit[i] + r.P1HH - r.P1HHDemand*st.NumHH[i]
	st.P1Deficit[next] = st.P1H1Deficit[next] + st.P1ISDeficit[next] + st.P1HHDeficit[next]

	st.P2[next] = snap(st.P2[i] + r.IRPP2 + r.RPP2 - r.P2RP - r.P2H2 - r.P2H3 - r.P2H1)
	st.IP2[next] = r.RPP2 + r.IRPP2
	st.DP2[next] = r.P2RP + r.P2H1 + r.P2H2 + r.P2H3

	st.P3[next] = snap(st.P3[i] + r.IRPP3 + r.RPP3 - r.P3RP - r.P3H3)
	st.IP3[next] = r.RPP3 + r.IRPP3
	st.DP3[next] = r.P3RP + r.P3H3

	st.H1[next] = snap(st.H1[i] + r.P1H1 + r.P2H1 - r.H1RP - r.H1C1 - r.H1HH)
	st.IH1[next] = r.P1H1 + r.P2H1
	st.DH1[next] = r.H1RP + r.H1C1 + r.H1HH

	if st.H1[i] == 0 {
		r.H1HHDemand = 0
		r.H1HHDemand1 = 0
		r.H1HHDemand2 = 0
	}
	st.H1Deficit[next] = st.H1Deficit[i] + r.H1HH - r.H1HHDemand*st.NumHH[i]

	st.H2[next] = snap(st.H2[i] + r.P1H2 + r.P2H2 - r.H2RP - r.H2C1 - r.H2C2)
	st.IH2[next] = r.P1H2 + r.P2H2
	st.DH2[next] = r.H2RP + r.H2C1 + r.H2C2

	st.H3[next] = snap(st.H3[i] + r.P2H3 + r.P3H3 - r.H3RP - r.H3C2)
	st.IH3[next] = r.P2H3 + r.P3H3
	st.DH3[next] = r.H3RP + r.H3C2

	st.C1[next] = snap(st.C1[i] + r.H1C1 + r.H2C1 - r.C1RP)
	st.IC1[next] = r.H1C1 + r.H2C1
	st.DC1[next] = r.C1RP

	st.C2[next] = snap(st.C2[i] + r.H2C2 + r.H3C2 - r.C2RP)
	st.IC2[next] = r.H2C2 + r.H3C2
	st.DC2[next] = r.C2RP

	st.HH[next] = snap(st.HH[i] + r.P1HH + r.H1HH - r.HHRP)
	st.IHH[next] = r.P1HH + r.H1HH
	st.DHH[next] = r.HHRP
	st.HH1[next] = st.HH[next] * p.F2Pe[0]
	st.HH2[next] = st.HH[next] * p.F2Pe[1]

	st.ISMass[next] = snap(st.ISMass[i] + r.P1IS + r.RPIS - r.ISIRP)
	st.ISDeficit[next] = st.ISDeficit[i] + r.ISIRP - s.isHHFlow

	st.IRP[next] = snap(st.IRP[i] - r.IRPP2 - r.IRPP3 + s.rpirp + r.ISIRP - r.IRPRP + r.EEIRP)
	st.IIRP[next] = s.rpirp + r.ISIRP + r.EEIRP
	st.DIRP[next] = r.IRPP2 + r.IRPP3 + r.IRPRP

	st.RP[next] = snap(s.stockRP - (r.RPP1 + r.RPP2 + r.RPP3) - s.rpirp - r.RPIS)
	st.INRP[next] = s.stockRP
	st.DRP[next] = r.RPP1 + r.RPP2 + r.RPP3 + s.rpirp + r.RPIS

	st.ERP[next] = snap(st.ERP[i] - r.EEIRP)
	st.EE[next] = snap(st.EE[i] + s.erpee - r.EEIRP)

	e.advancePopulation(s)
}
