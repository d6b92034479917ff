package engine

import "math"

// Outcome reports which branch of Ration was taken.
type Outcome int

const (
	// Unchanged means every outflow fit and surplus may remain.
	Unchanged Outcome = iota
	// Exhausted means the turnover alone consumed the stock.
	Exhausted
	// Prorated means the claims were scaled to the remaining stock.
	Prorated
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "exhausted"
	case Prorated:
		return "prorated"
	default:
		return "unchanged"
	}
}

// Ration settles one compartment's outflows against avail, the stock plus
// inflows. If avail minus turnover minus all claims stays at or above floor
// nothing changes. If turnover alone would leave less than floor, turnover
// takes everything and every claim is zeroed. Otherwise claims are scaled so
// they sum to avail minus turnover, the last claim absorbing rounding.
//
// The claims slice is not modified.
func Ration(avail, floor, turnover float64, claims []float64) (float64, []float64, Outcome) {
	out := make([]float64, len(claims))
	copy(out, claims)

	total := 0.0
	for _, c := range claims {
		total += c
	}

	if avail-turnover-total >= floor {
		return turnover, out, Unchanged
	}
	if avail-turnover < floor {
		for k := range out {
			out[k] = 0
		}
		return avail, out, Exhausted
	}

	remaining := avail - turnover
	given := 0.0
	for k := 0; k < len(out)-1; k++ {
		out[k] = safeDiv(remaining*claims[k], total)
		given += out[k]
	}
	if n := len(out); n > 0 {
		out[n-1] = math.Max(remaining-given, 0)
	}
	return turnover, out, Prorated
}

// CatchUp hands surplus to a compartment's under-delivered sub-categories.
// At most owed is granted; the grant is split in proportion to the negative
// part of each sub-deficit. Positive sub-deficits receive nothing, and if none
// is negative nothing is granted.
func CatchUp(surplus, owed float64, subDeficits []float64) (float64, []float64) {
	extra := make([]float64, len(subDeficits))

	granted := math.Min(math.Max(surplus, 0), math.Max(owed, 0))
	if granted == 0 {
		return 0, extra
	}

	short := 0.0
	for _, d := range subDeficits {
		if d < 0 {
			short -= d
		}
	}
	if short == 0 {
		return 0, extra
	}

	for k, d := range subDeficits {
		if d < 0 {
			extra[k] = granted * (-d / short)
		}
	}
	return granted, extra
}

// balance applies Ration in place to struct fields.
func balance(avail, floor float64, turnover *float64, claims ...*float64) Outcome {
	vals := make([]float64, len(claims))
	for k, c := range claims {
		vals[k] = *c
	}
	t, out, outcome := Ration(avail, floor, *turnover, vals)
	*turnover = t
	for k, c := range claims {
		*c = out[k]
	}
	return outcome
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// snapTolerance absorbs floating-point residue left by exact rationing.
const snapTolerance = 1e-9

func snap(v float64) float64 {
	if v < 0 && v > -snapTolerance {
		return 0
	}
	return v
}
