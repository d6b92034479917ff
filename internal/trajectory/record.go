package trajectory

import (
	"reflect"
)

// FlowRecord is the observable output of one step. Field order is the column
// order of the flow-record array and must not change.
type FlowRecord struct {
	P1RP  float64 `csv:"P1RP"`
	P1H1  float64 `csv:"P1H1"`
	P1H2  float64 `csv:"P1H2"`
	P1IS  float64 `csv:"P1IS"`
	P1HH  float64 `csv:"P1HH"`
	P2RP  float64 `csv:"P2RP"`
	P2H1  float64 `csv:"P2H1"`
	P2H2  float64 `csv:"P2H2"`
	P2H3  float64 `csv:"P2H3"`
	P3RP  float64 `csv:"P3RP"`
	P3H3  float64 `csv:"P3H3"`
	H1RP  float64 `csv:"H1RP"`
	H1C1  float64 `csv:"H1C1"`
	H1HH  float64 `csv:"H1HH"`
	H2RP  float64 `csv:"H2RP"`
	H2C1  float64 `csv:"H2C1"`
	H2C2  float64 `csv:"H2C2"`
	H3RP  float64 `csv:"H3RP"`
	H3C2  float64 `csv:"H3C2"`
	C1RP  float64 `csv:"C1RP"`
	C2RP  float64 `csv:"C2RP"`
	HHRP  float64 `csv:"HHRP"`
	ISIRP float64 `csv:"ISIRP"`
	RPP1  float64 `csv:"RPP1"`
	RPP2  float64 `csv:"RPP2"`
	RPP3  float64 `csv:"RPP3"`
	RPIS  float64 `csv:"RPIS"`
	IRPP2 float64 `csv:"IRPP2"`
	IRPP3 float64 `csv:"IRPP3"`
	IRPRP float64 `csv:"IRPRP"`

	P1HHDemand    float64 `csv:"P1HHdemand"`
	H1HHDemand    float64 `csv:"H1HHdemand"`
	ISHHDemand    float64 `csv:"ISHHdemand"`
	P1ISDemand    float64 `csv:"P1ISdemand"`
	RPISDemand    float64 `csv:"RPISdemand"`
	P1Production  float64 `csv:"P1production"`
	H1Production  float64 `csv:"H1production"`
	ISProduction  float64 `csv:"ISproduction"`
	PriceP1       float64 `csv:"pP1"`
	PriceH1       float64 `csv:"pH1"`
	PriceIS       float64 `csv:"pIS"`
	Births        float64 `csv:"percapbirths"`
	WeightedPrice float64 `csv:"weightedprice"`
	W             float64 `csv:"W"`
	W1            float64 `csv:"W1"`
	W2            float64 `csv:"W2"`

	P1HHDemand1 float64 `csv:"P1HHdemand1"`
	P1HHDemand2 float64 `csv:"P1HHdemand2"`
	H1HHDemand1 float64 `csv:"H1HHdemand1"`
	H1HHDemand2 float64 `csv:"H1HHdemand2"`
	ISHHDemand1 float64 `csv:"ISHHdemand1"`
	ISHHDemand2 float64 `csv:"ISHHdemand2"`
	EEHHDemand1 float64 `csv:"EEHHdemand1"`
	EEHHDemand2 float64 `csv:"EEHHdemand2"`

	PriceEE       float64 `csv:"pEE"`
	EEHHDemand    float64 `csv:"EEHHdemand"`
	EEHHTotDemand float64 `csv:"EEHHtotdemand"`
	EEISDemand    float64 `csv:"EEISdemand"`
	EEProduction  float64 `csv:"EEproduction"`
	EEHHMass      float64 `csv:"EEHHmass"`
	EEIRP         float64 `csv:"EEIRP"`

	Births1 float64 `csv:"percapbirths1"`
	Births2 float64 `csv:"percapbirths2"`
	MHH1    float64 `csv:"mHH1"`
	MHH2    float64 `csv:"mHH2"`
	EMF     float64 `csv:"EMF"`
	EMFHH   float64 `csv:"EMFnumHH"`
	GRPP1   float64 `csv:"gRPP1"`
	GRPP2   float64 `csv:"gRPP2"`
	GRPP3   float64 `csv:"gRPP3"`
	MHH     float64 `csv:"mHH"`

	// mortality before (aa, bb, cc) and after (dd, ee, ff) the temperature
	// modifier
	AA float64 `csv:"aa"`
	BB float64 `csv:"bb"`
	CC float64 `csv:"cc"`
	DD float64 `csv:"dd"`
	EE float64 `csv:"ee"`
	FF float64 `csv:"ff"`
}

// Columns lists the flow-record column names in array order.
var Columns = columnNames()

// signedColumns may legitimately hold negative values. The mortality trends
// cross zero late in long runs (mHH1 near step 500, mHH2 near step 860).
var signedColumns = map[string]bool{
	"EMF":      true,
	"EMFnumHH": true,
	"mHH1":     true,
	"mHH2":     true,
	"mHH":      true,
	"aa":       true,
	"bb":       true,
	"cc":       true,
	"dd":       true,
	"ee":       true,
	"ff":       true,
}

func columnNames() []string {
	t := reflect.TypeOf(FlowRecord{})
	names := make([]string, t.NumField())
	for k := range names {
		names[k] = t.Field(k).Tag.Get("csv")
	}
	return names
}

// Values returns the record as a row in column order.
func (r *FlowRecord) Values() []float64 {
	v := reflect.ValueOf(r).Elem()
	row := make([]float64, v.NumField())
	for k := range row {
		row[k] = v.Field(k).Float()
	}
	return row
}

// ColumnIndex returns the position of a named column, or -1.
func ColumnIndex(name string) int {
	for k, c := range Columns {
		if c == name {
			return k
		}
	}
	return -1
}
