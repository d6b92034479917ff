package engine

import "math"

// rawFlows computes every unbalanced flow from the state at index i.
func (e *Engine) rawFlows(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	r.P1RP = math.Max(p.MP1*st.P1[i], 0)
	r.RPP1 = math.Max(r.GRPP1*st.P1[i]*st.RP[i], 0)
	r.P1H1 = s.p1h1Demand
	r.P1IS = r.P1ISDemand
	r.P1HH = r.P1HHDemand * st.NumHH[i]

	r.P2H2 = p.GP2H2 * st.P2[i] * st.H2[i]
	r.P2H3 = p.GP2H3 * st.P2[i] * st.H3[i]
	r.P2RP = math.Max(p.MP2*st.P2[i], 0)
	r.RPP2 = math.Max(r.GRPP2*st.RP[i]*st.P2[i], 0)
	r.IRPP2 = math.Max(p.RIRPP2*st.P2[i]*st.IRP[i], 0)

	r.P3RP = math.Max(p.MP3*st.P3[i], 0)
	r.P3H3 = p.GP3H3 * st.P3[i] * st.H3[i]
	r.RPP3 = math.Max(r.GRPP3*st.RP[i]*st.P3[i], 0)
	r.IRPP3 = math.Max(p.RIRPP3*st.P3[i]*st.IRP[i], 0)

	r.H1RP = math.Max(p.MH1*st.H1[i], 0)
	r.H1HH = r.H1HHDemand * st.NumHH[i]

	r.H2C1 = p.GH2C1 * st.C1[i] * st.H2[i]
	r.H2C2 = p.GH2C2 * st.H2[i] * st.C2[i]
	r.H2RP = math.Max(p.MH2*st.H2[i], 0)

	r.H3RP = math.Max(p.MH3*st.H3[i], 0)
	r.H3C2 = p.GH3C2 * st.H3[i] * st.C2[i]

	r.C1RP = math.Max(p.MC1*st.C1[i], 0)
	r.C2RP = math.Max(p.MC2*st.C2[i], 0)

	r.IRPRP = math.Max(st.IRP[i]*p.MIRPRP, 0)
}

// balancePass settles every compartment in turn. It runs once on the raw
// flows and again after the resource pool is settled; inflows only shrink
// between passes, so the second pass can only ration further.
func (e *Engine) balancePass(s *step) {
	e.balanceP1(s)
	e.claimIRP(s)
	e.balanceProducers(s)
	e.balanceH1(s)
	e.balanceConsumers(s)
	e.householdTurnover(s)
}

func (e *Engine) balanceP1(s *step) {
	r, st, i := &s.rec, e.st, s.i

	avail := st.P1[i] + r.RPP1
	if balance(avail, 0, &r.P1RP, &r.P1H2, &r.P1H1, &r.P1HH, &r.P1IS) != Unchanged {
		return
	}

	surplus := avail - r.P1RP - r.P1H2 - r.P1H1 - r.P1HH - r.P1IS
	owed := -st.P1Deficit[i] - s.p1Granted
	granted, extra := CatchUp(surplus, owed, []float64{
		st.P1H1Deficit[i],
		st.P1ISDeficit[i],
		st.P1HHDeficit[i],
	})
	r.P1H1 += extra[0]
	r.P1IS += extra[1]
	r.P1HH += extra[2]
	s.p1Granted += granted
}

// claimIRP caps the plant draws on the industrial resource pool at what the
// pool holds, split by the draw rates.
func (e *Engine) claimIRP(s *step) {
	p, r, st, i := e.p, &s.rec, e.st, s.i

	irp := st.IRP[i]
	if irp <= 0 {
		r.IRPP2, r.IRPP3 = 0, 0
		return
	}

	pool := irp - r.IRPRP + s.rpirp
	if pool-r.IRPP2-r.IRPP3 >= 0 {
		return
	}
	rates := p.RIRPP2 + p.RIRPP3
	if st.P2[i] != 0 {
		r.IRPP2 = math.Max(safeDiv(p.RIRPP2*pool, rates), 0)
	}
	if st.P3[i] != 0 {
		r.IRPP3 = math.Max(safeDiv(p.RIRPP3*pool, rates), 0)
	}
}

func (e *Engine) balanceProducers(s *step) {
	floor, r, st, i := e.p.BelowNoReproduction, &s.rec, e.st, s.i

	balance(st.P2[i]+r.IRPP2+r.RPP2, floor, &r.P2RP, &r.P2H2, &r.P2H3, &r.P2H1)
	balance(st.P3[i]+r.IRPP3+r.RPP3, floor, &r.P3RP, &r.P3H3)
}

func (e *Engine) balanceH1(s *step) {
	r, st, i := &s.rec, e.st, s.i

	avail := st.H1[i] + r.P1H1 + r.P2H1
	if balance(avail, 0, &r.H1RP, &r.H1C1, &r.H1HH) != Unchanged {
		return
	}

	surplus := avail - r.H1RP - r.H1C1 - r.H1HH
	owed := -st.H1Deficit[i] - s.h1Granted
	granted, extra := CatchUp(surplus, owed, []float64{st.H1Deficit[i]})
	r.H1HH += extra[0]
	s.h1Granted += granted
}

func (e *Engine) balanceConsumers(s *step) {
	floor, r, st, i := e.p.BelowNoReproduction, &s.rec, e.st, s.i

	balance(st.H2[i]+r.P1H2+r.P2H2, floor, &r.H2RP, &r.H2C1, &r.H2C2)
	balance(st.H3[i]+r.P2H3+r.P3H3, floor, &r.H3RP, &r.H3C2)
	balance(st.C1[i]+r.H1C1+r.H2C1, floor, &r.C1RP)
	balance(st.C2[i]+r.H2C2+r.H3C2, floor, &r.C2RP)
}

// householdTurnover returns dead households' mass to the resource pool,
// never more than the households hold after consumption.
func (e *Engine) householdTurnover(s *step) {
	r, st, i := &s.rec, e.st, s.i

	r.HHRP = math.Ceil(e.p.MHH*st.NumHH[i]) * st.PerCapMass[i]
	if limit := st.HH[i] + r.P1HH + r.H1HH; r.HHRP > limit {
		r.HHRP = limit
	}
}
