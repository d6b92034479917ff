package params

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnknownParam = errors.New("params: unknown parameter")
	ErrDerivedParam = errors.New("params: derived parameter cannot be set")
)

// Initial holds the starting value of every compartment.
type Initial struct {
	P1     float64 `param:"P1" group:"initial"`
	P2     float64 `param:"P2" group:"initial"`
	P3     float64 `param:"P3" group:"initial"`
	H1     float64 `param:"H1" group:"initial"`
	H2     float64 `param:"H2" group:"initial"`
	H3     float64 `param:"H3" group:"initial"`
	C1     float64 `param:"C1" group:"initial"`
	C2     float64 `param:"C2" group:"initial"`
	HH     float64 `param:"HH" group:"initial"`
	ISMass float64 `param:"ISmass" group:"initial"`
	RP     float64 `param:"RP" group:"initial"`
	IRP    float64 `param:"IRP" group:"initial"`
	NumHH  float64 `param:"numHH" group:"initial"`
	ERP    float64 `param:"ERP" group:"initial"`
	EE     float64 `param:"EE" group:"initial"`
	CO2eq  float64 `param:"CO2eq" group:"initial"`
	ATemp  float64 `param:"atemp" group:"initial"`
	Temp   float64 `param:"temp" group:"initial"`
}

// Params is the full constant bundle consumed by the step engine. Fields
// tagged derived are recomputed by Derive and cannot be overridden.
type Params struct {
	Initial Initial

	Case                int     `param:"Case" group:"general"`
	BelowNoReproduction float64 `param:"belownoreproduction" group:"general"`
	MinViableHouseholds float64 `param:"minViableHH" group:"general"`
	DemandScale         float64 `param:"demandScale" group:"general"`

	// temperature
	TempO           float64 `param:"tempo" group:"temperature"`
	TempSlope       float64 `param:"tempSlope" group:"temperature"`
	TempIntercept   float64 `param:"tempIntercept" group:"temperature"`
	GrowthTempWidth float64 `param:"growthTempWidth" group:"temperature"`

	GRPP1p float64 `param:"gRPP1p" group:"growth"`
	GRPP2p float64 `param:"gRPP2p" group:"growth"`
	GRPP3p float64 `param:"gRPP3p" group:"growth"`

	GP2H2  float64 `param:"gP2H2" group:"natural"`
	GP2H3  float64 `param:"gP2H3" group:"natural"`
	GP3H3  float64 `param:"gP3H3" group:"natural"`
	GH2C1  float64 `param:"gH2C1" group:"natural"`
	GH2C2  float64 `param:"gH2C2" group:"natural"`
	GH3C2  float64 `param:"gH3C2" group:"natural"`
	RIRPP2 float64 `param:"rIRPP2" group:"natural"`
	RIRPP3 float64 `param:"rIRPP3" group:"natural"`
	MP2    float64 `param:"mP2" group:"natural"`
	MP3    float64 `param:"mP3" group:"natural"`
	MH2    float64 `param:"mH2" group:"natural"`
	MH3    float64 `param:"mH3" group:"natural"`
	MC1    float64 `param:"mC1" group:"natural"`
	MC2    float64 `param:"mC2" group:"natural"`
	MIRPRP float64 `param:"mIRPRP" group:"natural"`
	RPIRP  float64 `param:"RPIRP" group:"natural"`
	GP1H2  float64 `param:"gP1H2" group:"natural"`
	GH1C1  float64 `param:"gH1C1" group:"natural"`
	MP1    float64 `param:"mP1" group:"natural"`
	MH1    float64 `param:"mH1" group:"natural"`

	// economy; AW, CW and DW only feed the cohort split below
	AW    float64 `param:"aw" group:"economic"`
	CW    float64 `param:"cw" group:"economic"`
	DW    float64 `param:"dw" group:"economic"`
	AP1   float64 `param:"aP1" group:"economic"`
	BP1   float64 `param:"bP1" group:"economic"`
	CP1   float64 `param:"cP1" group:"economic"`
	AP1p  float64 `param:"aP1p" group:"economic"`
	BP1p  float64 `param:"bP1p" group:"economic"`
	CP1p  float64 `param:"cP1p" group:"economic"`
	AH1   float64 `param:"aH1" group:"economic"`
	BH1   float64 `param:"bH1" group:"economic"`
	CH1   float64 `param:"cH1" group:"economic"`
	AH1p  float64 `param:"aH1p" group:"economic"`
	BH1p  float64 `param:"bH1p" group:"economic"`
	CH1p  float64 `param:"cH1p" group:"economic"`
	AIS   float64 `param:"aIS" group:"economic"`
	BIS   float64 `param:"bIS" group:"economic"`
	CIS   float64 `param:"cIS" group:"economic"`
	AISp  float64 `param:"aISp" group:"economic"`
	BISp  float64 `param:"bISp" group:"economic"`
	CISp  float64 `param:"cISp" group:"economic"`
	DP1H1 float64 `param:"dP1H1" group:"economic"`
	EP1H1 float64 `param:"eP1H1" group:"economic"`
	FP1H1 float64 `param:"fP1H1" group:"economic"`
	GP1H1 float64 `param:"gP1H1" group:"economic"`
	DP1HH float64 `param:"dP1HH" group:"economic"`
	ZP1HH float64 `param:"zP1HH" group:"economic"`
	KP1HH float64 `param:"kP1HH" group:"economic"`
	MP1HH float64 `param:"mP1HH" group:"economic"`
	NP1HH float64 `param:"nP1HH" group:"economic"`
	DH1HH float64 `param:"dH1HH" group:"economic"`
	ZH1HH float64 `param:"zH1HH" group:"economic"`
	KH1HH float64 `param:"kH1HH" group:"economic"`
	MH1HH float64 `param:"mH1HH" group:"economic"`
	NH1HH float64 `param:"nH1HH" group:"economic"`
	DISHH float64 `param:"dISHH" group:"economic"`
	ZISHH float64 `param:"zISHH" group:"economic"`
	KISHH float64 `param:"kISHH" group:"economic"`
	MISHH float64 `param:"mISHH" group:"economic"`
	NISHH float64 `param:"nISHH" group:"economic"`
	KHat  float64 `param:"khat" group:"economic"`
	Theta float64 `param:"theta" group:"economic"`
	// Lambda is the RP share of industrial production.
	Lambda    float64 `param:"lambda" group:"economic"`
	MHH       float64 `param:"mHH" group:"economic"`
	P1Bar     float64 `param:"P1bar" group:"economic"`
	H1Bar     float64 `param:"H1bar" group:"economic"`
	ISBar     float64 `param:"ISbar" group:"economic"`
	Etaa      float64 `param:"etaa" group:"economic"`
	Etab      float64 `param:"etab" group:"economic"`
	Phi       float64 `param:"phi" group:"economic"`
	IdealMass float64 `param:"idealMass" group:"economic"`

	// demographic trends (2014), evaluated at year i+YearOffset
	YearOffset float64 `param:"yearOffset" group:"demographic"`
	Mort1Log   float64 `param:"mort1Log" group:"demographic"`
	Mort1Base  float64 `param:"mort1Base" group:"demographic"`
	Mort2Lin   float64 `param:"mort2Lin" group:"demographic"`
	Mort2Base  float64 `param:"mort2Base" group:"demographic"`
	Birth1Amp  float64 `param:"birth1Amp" group:"demographic"`
	Birth1Rate float64 `param:"birth1Rate" group:"demographic"`
	Birth2Amp  float64 `param:"birth2Amp" group:"demographic"`
	Birth2Rate float64 `param:"birth2Rate" group:"demographic"`
	BirthFloor float64 `param:"birthFloor" group:"demographic"`

	// Ito process volatility
	SigmaM float64 `param:"sigmam" group:"ito"`
	SigmaB float64 `param:"sigmab" group:"ito"`

	// society type A, two populations
	IEI    float64 `param:"IEI" group:"society"`
	Share1 float64 `param:"share1" group:"society"`
	Share2 float64 `param:"share2" group:"society"`

	DEEHH      float64 `param:"dEEHH" group:"energy"`
	ZEEHH      float64 `param:"zEEHH" group:"energy"`
	KEEHH      float64 `param:"kEEHH" group:"energy"`
	MEEHH      float64 `param:"mEEHH" group:"energy"`
	NEEHH      float64 `param:"nEEHH" group:"energy"`
	EEPriceMul float64 `param:"cEEmul" group:"energy"`
	GammaEEIS  float64 `param:"gammaEEIS" group:"energy"`
	GammaEEIRP float64 `param:"gammaEEIRP" group:"energy"`

	Wid float64 `param:"Wid" group:"mobility"`
	Psi float64 `param:"psi" group:"mobility"`

	PPMCO2eq   float64     `param:"ppmCO2eq" group:"ghg"`
	GtCO2eqStb float64     `param:"GtCO2eqStb" group:"ghg"`
	PercCO2eq  [10]float64 `param:"percCO2eq" group:"ghg"`
	YGHGStb    [10]float64 `param:"yGHGstb" group:"ghg"`

	IdealPerCapMass float64     `param:"idealpercapmass" group:"derived" derived:"true"`
	Phi1            float64     `param:"phi1" group:"derived" derived:"true"`
	Phi2            float64     `param:"phi2" group:"derived" derived:"true"`
	F2Pb            [2]float64  `param:"f2pb" group:"derived" derived:"true"`
	F2Pc            [2]float64  `param:"f2pc" group:"derived" derived:"true"`
	F2Pd            [2]float64  `param:"f2pd" group:"derived" derived:"true"`
	F2Pe            [2]float64  `param:"f2pe" group:"derived" derived:"true"`
	AW1             float64     `param:"aw1" group:"derived" derived:"true"`
	AW2             float64     `param:"aw2" group:"derived" derived:"true"`
	CW1             float64     `param:"cw1" group:"derived" derived:"true"`
	CW2             float64     `param:"cw2" group:"derived" derived:"true"`
	DW1             float64     `param:"dw1" group:"derived" derived:"true"`
	DW2             float64     `param:"dw2" group:"derived" derived:"true"`
	AEE             float64     `param:"aEE" group:"derived" derived:"true"`
	BEE             float64     `param:"bEE" group:"derived" derived:"true"`
	CEE             float64     `param:"cEE" group:"derived" derived:"true"`
	Wgid            float64     `param:"Wgid" group:"derived" derived:"true"`
	GtCO2eq         [10]float64 `param:"GtCO2eq" group:"derived" derived:"true"`
}

// Default returns the society type A bundle with all derived factors filled in.
func Default() *Params {
	p := &Params{
		Initial: Initial{
			P1:     0.127639522,
			P2:     6.637479579,
			P3:     1.181396149,
			H1:     1.248945367,
			H2:     0.065892868,
			H3:     1.073417243,
			C1:     1.358944396,
			C2:     0.611883366,
			HH:     0.4507,
			ISMass: 0.508187978,
			RP:     20.10894289,
			IRP:    0.881746274,
			NumHH:  1000,
			ERP:    800,
			EE:     0,
			CO2eq:  300,
			ATemp:  -0.21,
			Temp:   25,
		},

		Case:                3,
		BelowNoReproduction: 1e-4,
		MinViableHouseholds: 20,
		DemandScale:         50,

		TempO:           25,
		TempSlope:       0.010008,
		TempIntercept:   -3.21675,
		GrowthTempWidth: 100,

		GRPP1p: 0.003541127,
		GRPP2p: 0.009933643,
		GRPP3p: 0.000778772,

		GP2H2:  0.058687036,
		GP2H3:  0.0168,
		GP3H3:  0.125249403,
		GH2C1:  0.366996266,
		GH2C2:  0.052509103,
		GH3C2:  0.117534846,
		RIRPP2: 0.021472781,
		RIRPP3: 0.357331692,
		MP2:    0.197313146,
		MP3:    0.186325524,
		MH2:    0.0004,
		MH3:    0.196123663,
		MC1:    0.092105574,
		MC2:    0.171458886,
		MIRPRP: 0,
		RPIRP:  0.49337505,
		GP1H2:  0.079785,
		GH1C1:  0.19963,
		MP1:    0.001018295,
		MH1:    0.009838862,

		AW:        0.43853,
		CW:        0.135718104,
		DW:        4.51e-06,
		AP1:       0.4968,
		BP1:       0.67631,
		CP1:       0.12318,
		AP1p:      0.050392,
		BP1p:      0.149737492,
		CP1p:      0.033805381,
		AH1:       1.4359,
		BH1:       0.001,
		CH1:       0.252716513,
		AH1p:      0.24182,
		BH1p:      0.049912497,
		CH1p:      0.26657,
		AIS:       1.17,
		BIS:       0.297210307,
		CIS:       0.001,
		AISp:      0.3109,
		BISp:      0.0044,
		CISp:      0.3313,
		DP1H1:     0.000191077,
		EP1H1:     0.049912497,
		FP1H1:     0.81332,
		GP1H1:     2.9657,
		DP1HH:     4.00e-08,
		ZP1HH:     6.00e-08,
		KP1HH:     1.60e-07,
		MP1HH:     6.00e-08,
		NP1HH:     0,
		DH1HH:     6.00e-08,
		ZH1HH:     3.13e-05,
		KH1HH:     6.00e-08,
		MH1HH:     6.00e-08,
		NH1HH:     0,
		DISHH:     6.00e-08,
		ZISHH:     5.68e-05,
		KISHH:     6.00e-08,
		MISHH:     4.00e-08,
		NISHH:     2.00e-08,
		KHat:      0.1,
		Theta:     0.101991961,
		Lambda:    0.676677233,
		MHH:       0.01,
		P1Bar:     0,
		H1Bar:     0.4,
		ISBar:     0,
		Etaa:      0.000271386 * 52,
		Etab:      0.00010454 * 52,
		Phi:       10,
		IdealMass: 4.51e-05 * 10000,

		YearOffset: 55,
		Mort1Log:   -3.25,
		Mort1Base:  20.536,
		Mort2Lin:   -0.0103,
		Mort2Base:  9.4329,
		Birth1Amp:  41.975,
		Birth1Rate: 0.013,
		Birth2Amp:  20.831,
		Birth2Rate: 0.012,
		BirthFloor: 3,

		SigmaM: 2.34e-05,
		SigmaB: 1.56e-03,

		IEI:    1,
		Share1: 0.75,
		Share2: 0.25,

		DEEHH:      6.00e-08,
		ZEEHH:      5.68e-05,
		KEEHH:      6.00e-08,
		MEEHH:      4.00e-08,
		NEEHH:      2.00e-08,
		EEPriceMul: 5000,
		GammaEEIS:  1,
		GammaEEIRP: 0.2,

		Wid: 0.31,
		Psi: 1,

		PPMCO2eq:   0.22024,
		GtCO2eqStb: 37,
		PercCO2eq:  [10]float64{6, 6, 20, 6, 6, 21, 35, -24, -5, -28},
		YGHGStb: [10]float64{
			0.090108316273598,
			1.243569877687978,
			996,
			0.000770375203888207,
			0.001427446253809,
			0.006279712575167,
			0.012336856254033,
			5.247311054647068,
			1.112128665742525,
			22.415707968618005,
		},
	}
	if err := p.Derive(); err != nil {
		panic(err)
	}
	return p
}

// Derive recomputes every derived factor from the base constants. It must be
// called again after any Set.
func (p *Params) Derive() error {
	if p.Initial.NumHH <= 0 {
		return fmt.Errorf("params: initial household count must be positive, got %g", p.Initial.NumHH)
	}
	if p.Share1 <= 0 || p.Share2 <= 0 {
		return fmt.Errorf("params: cohort shares must be positive, got %g/%g", p.Share1, p.Share2)
	}

	p.IdealPerCapMass = p.IdealMass / p.Initial.NumHH
	p.Phi1 = p.Phi
	p.Phi2 = p.Phi / 2

	split, err := cohortSplit(p.Share1, p.Share2)
	if err != nil {
		return err
	}
	p.F2Pb, p.F2Pc, p.F2Pd = split, split, split
	p.F2Pe = [2]float64{p.Share1, p.Share2}

	p.AW1, p.AW2 = p.AW*split[0], p.AW*split[1]
	p.CW1, p.CW2 = p.CW*split[0], p.CW*split[1]
	p.DW1, p.DW2 = p.DW*split[0], p.DW*split[1]

	p.AEE = p.AP1
	p.BEE = p.BP1
	p.CEE = p.EEPriceMul * p.CP1

	p.Wgid = p.Wid * p.Initial.NumHH

	for k := range p.GtCO2eq {
		if p.YGHGStb[k] == 0 {
			p.GtCO2eq[k] = 0
			continue
		}
		p.GtCO2eq[k] = p.GtCO2eqStb * (p.PercCO2eq[k] / 100) / p.YGHGStb[k]
	}
	return nil
}

// cohortSplit solves
//
//	s1*x + s2*y = 1
//	s1*x - s2*(s1/s2)*y = 0
//
// for the per-cohort allocation factors of wages and demands.
func cohortSplit(s1, s2 float64) ([2]float64, error) {
	a := mat.NewDense(2, 2, []float64{
		s1, s2,
		s1, -s2 * (s1 / s2),
	})
	b := mat.NewVecDense(2, []float64{1, 0})

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return [2]float64{}, fmt.Errorf("params: cohort split: %w", err)
	}
	return [2]float64{x.AtVec(0), x.AtVec(1)}, nil
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	c := *p
	return &c
}
