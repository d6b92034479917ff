package metrics

import (
	"math"

	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

type PeakTemperature struct {
	name string
	peak float64
	seen bool
}

func NewPeakTemperature() *PeakTemperature {
	return &PeakTemperature{name: "peak_temperature"}
}

func (p *PeakTemperature) Name() string { return p.name }

func (p *PeakTemperature) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	t := math.Max(s.Temp[i], s.Temp[i+1])
	if !p.seen || t > p.peak {
		p.peak = t
		p.seen = true
	}
}

func (p *PeakTemperature) Value() float64 { return p.peak }

func (p *PeakTemperature) Reset() {
	p.peak = 0
	p.seen = false
}

// EmissionsGrowth is the CO2eq accumulated since the first step, in ppm.
type EmissionsGrowth struct {
	name    string
	initial float64
	latest  float64
	samples int
}

func NewEmissionsGrowth() *EmissionsGrowth {
	return &EmissionsGrowth{name: "emissions_growth"}
}

func (e *EmissionsGrowth) Name() string { return e.name }

func (e *EmissionsGrowth) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	if e.samples == 0 {
		e.initial = s.CO2eq[i]
	}
	e.latest = s.CO2eq[i+1]
	e.samples++
}

func (e *EmissionsGrowth) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.latest - e.initial
}

func (e *EmissionsGrowth) Reset() {
	e.initial = 0
	e.latest = 0
	e.samples = 0
}
