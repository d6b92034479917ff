// Package state holds the time-indexed compartment arrays of one run.
//
// Every series has length T and is pre-filled with its initial value, so an
// index the engine never writes still reads as the starting condition.
package state

import (
	"github.com/san-kum/gssem/internal/params"
)

type State struct {
	T int

	// ecosystem compartments
	P1, P2, P3 []float64
	H1, H2, H3 []float64
	C1, C2     []float64

	// human and industrial compartments
	HH, HH1, HH2 []float64
	ISMass       []float64
	RP, IRP      []float64
	ERP, EE      []float64

	// demographics
	NumHH, NumHH1, NumHH2                []float64
	PerCapMass, PerCapMass1, PerCapMass2 []float64

	// mass deficits, signed; negative means under-delivered
	P1H1Deficit, P1ISDeficit, P1HHDeficit []float64
	P1Deficit, H1Deficit, ISDeficit       []float64

	// climate
	CO2eq, ATemp, Temp []float64

	// per-step inflows (I*) and outflows (D*)
	IP1, DP1, IP2, DP2, IP3, DP3 []float64
	IH1, DH1, IH2, DH2, IH3, DH3 []float64
	IC1, DC1, IC2, DC2           []float64
	IHH, DHH                     []float64
	IIRP, DIRP, INRP, DRP        []float64
}

// New allocates every series with length T from the bundle's initial values.
// T is not validated here; callers reject horizons shorter than two steps.
func New(p *params.Params, T int) *State {
	in := p.Initial
	fill := func(v float64) []float64 {
		s := make([]float64, T)
		for i := range s {
			s[i] = v
		}
		return s
	}

	numHH1 := p.Share1 * in.NumHH
	numHH2 := p.Share2 * in.NumHH
	hh1 := in.HH * p.Share1
	hh2 := in.HH * p.Share2

	return &State{
		T: T,

		P1: fill(in.P1), P2: fill(in.P2), P3: fill(in.P3),
		H1: fill(in.H1), H2: fill(in.H2), H3: fill(in.H3),
		C1: fill(in.C1), C2: fill(in.C2),

		HH:     fill(in.HH),
		HH1:    fill(hh1),
		HH2:    fill(hh2),
		ISMass: fill(in.ISMass),
		RP:     fill(in.RP),
		IRP:    fill(in.IRP),
		ERP:    fill(in.ERP),
		EE:     fill(in.EE),

		NumHH:       fill(in.NumHH),
		NumHH1:      fill(numHH1),
		NumHH2:      fill(numHH2),
		PerCapMass:  fill(in.HH / in.NumHH),
		PerCapMass1: fill(hh1 / numHH1),
		PerCapMass2: fill(hh2 / numHH2),

		P1H1Deficit: fill(0), P1ISDeficit: fill(0), P1HHDeficit: fill(0),
		P1Deficit: fill(0), H1Deficit: fill(0), ISDeficit: fill(0),

		CO2eq: fill(in.CO2eq),
		ATemp: fill(in.ATemp),
		Temp:  fill(in.Temp),

		IP1: fill(0), DP1: fill(0), IP2: fill(0), DP2: fill(0), IP3: fill(0), DP3: fill(0),
		IH1: fill(0), DH1: fill(0), IH2: fill(0), DH2: fill(0), IH3: fill(0), DH3: fill(0),
		IC1: fill(0), DC1: fill(0), IC2: fill(0), DC2: fill(0),
		IHH: fill(0), DHH: fill(0),
		IIRP: fill(0), DIRP: fill(0), INRP: fill(0), DRP: fill(0),
	}
}
