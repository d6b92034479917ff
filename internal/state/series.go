package state

// Kind classifies a series for validation.
type Kind int

const (
	// Stock must never be negative.
	Stock Kind = iota
	// Flow is a per-step transfer, also non-negative.
	Flow
	// Signed may legitimately go negative (deficits).
	Signed
)

type Series struct {
	Name   string
	Kind   Kind
	Values []float64
}

// Series returns the output series in the fixed order consumed by plotting.
// IH3 and DH3 deliberately appear twice (positions 37/38 and 43/44) so column
// indices stay stable for existing readers.
func (s *State) Series() []Series {
	return []Series{
		{"P1", Stock, s.P1},
		{"P2", Stock, s.P2},
		{"P3", Stock, s.P3},
		{"H1", Stock, s.H1},
		{"H2", Stock, s.H2},
		{"H3", Stock, s.H3},
		{"C1", Stock, s.C1},
		{"C2", Stock, s.C2},
		{"HH", Stock, s.HH},
		{"ISmass", Stock, s.ISMass},
		{"RP", Stock, s.RP},
		{"IRP", Stock, s.IRP},
		{"numHH", Stock, s.NumHH},
		{"percapmass", Stock, s.PerCapMass},
		{"P1H1massdeficit", Signed, s.P1H1Deficit},
		{"P1ISmassdeficit", Signed, s.P1ISDeficit},
		{"P1HHmassdeficit", Signed, s.P1HHDeficit},
		{"H1massdeficit", Signed, s.H1Deficit},
		{"ISmassdeficit", Signed, s.ISDeficit},
		{"numHH1", Stock, s.NumHH1},
		{"numHH2", Stock, s.NumHH2},
		{"HH1", Stock, s.HH1},
		{"HH2", Stock, s.HH2},
		{"ERP", Stock, s.ERP},
		{"EE", Stock, s.EE},
		{"CO2eq", Stock, s.CO2eq},
		{"temp", Stock, s.Temp},
		{"IP1", Flow, s.IP1},
		{"DP1", Flow, s.DP1},
		{"IP2", Flow, s.IP2},
		{"DP2", Flow, s.DP2},
		{"IP3", Flow, s.IP3},
		{"DP3", Flow, s.DP3},
		{"IH1", Flow, s.IH1},
		{"DH1", Flow, s.DH1},
		{"IH2", Flow, s.IH2},
		{"DH2", Flow, s.DH2},
		{"IH3", Flow, s.IH3},
		{"DH3", Flow, s.DH3},
		{"IC1", Flow, s.IC1},
		{"DC1", Flow, s.DC1},
		{"IC2", Flow, s.IC2},
		{"DC2", Flow, s.DC2},
		{"IH3", Flow, s.IH3},
		{"DH3", Flow, s.DH3},
		{"IIRP", Flow, s.IIRP},
		{"DIRP", Flow, s.DIRP},
		{"INRP", Flow, s.INRP},
		{"DRP", Flow, s.DRP},
	}
}

// Stocks returns the compartments that must stay non-negative after
// balancing, by name.
func (s *State) Stocks() map[string][]float64 {
	return map[string][]float64{
		"P1": s.P1, "P2": s.P2, "P3": s.P3,
		"H1": s.H1, "H2": s.H2, "H3": s.H3,
		"C1": s.C1, "C2": s.C2,
		"HH": s.HH, "HH1": s.HH1, "HH2": s.HH2,
		"ISmass": s.ISMass, "RP": s.RP, "IRP": s.IRP,
		"ERP": s.ERP, "EE": s.EE,
	}
}

// KindOf classifies a series by name; unknown names are treated as stocks.
func KindOf(name string) Kind {
	switch name {
	case "P1H1massdeficit", "P1ISmassdeficit", "P1HHmassdeficit", "H1massdeficit", "ISmassdeficit":
		return Signed
	case "IP1", "DP1", "IP2", "DP2", "IP3", "DP3",
		"IH1", "DH1", "IH2", "DH2", "IH3", "DH3",
		"IC1", "DC1", "IC2", "DC2",
		"IIRP", "DIRP", "INRP", "DRP":
		return Flow
	}
	return Stock
}
