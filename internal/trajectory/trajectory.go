// Package trajectory collects the per-step flow records and the final
// compartment series of a run and exposes them as the two output arrays.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gssem/internal/state"
)

var ErrUnknownColumn = errors.New("trajectory: unknown column")

// ValueError reports a NaN, Inf or forbidden negative value.
type ValueError struct {
	Array string
	Name  string
	Index int
	Value float64
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("trajectory: %s %s[%d] = %g", e.Array, e.Name, e.Index, e.Value)
}

type Trajectory struct {
	Records []FlowRecord
	Series  []state.Series
	Metrics map[string]float64
}

// Recorder accumulates one flow record per engine iteration.
type Recorder struct {
	records []FlowRecord
}

func NewRecorder(capacity int) *Recorder {
	return &Recorder{records: make([]FlowRecord, 0, capacity)}
}

func (r *Recorder) Append(rec FlowRecord) { r.records = append(r.records, rec) }

func (r *Recorder) Len() int { return len(r.records) }

// Last returns the most recent record, or nil before the first step.
func (r *Recorder) Last() *FlowRecord {
	if len(r.records) == 0 {
		return nil
	}
	return &r.records[len(r.records)-1]
}

// Finish hands the collected records over together with the final series.
func (r *Recorder) Finish(series []state.Series) *Trajectory {
	return &Trajectory{
		Records: r.records,
		Series:  series,
		Metrics: make(map[string]float64),
	}
}

// X returns the flow-record array, one row per step.
func (t *Trajectory) X() [][]float64 {
	x := make([][]float64, len(t.Records))
	for i := range t.Records {
		x[i] = t.Records[i].Values()
	}
	return x
}

// Y returns the series array wrapped in a leading axis of length one.
func (t *Trajectory) Y() [][][]float64 {
	y := make([][]float64, len(t.Series))
	for k, s := range t.Series {
		y[k] = s.Values
	}
	return [][][]float64{y}
}

func (t *Trajectory) XShape() (rows, cols int) {
	return len(t.Records), len(Columns)
}

func (t *Trajectory) YShape() (int, int, int) {
	if len(t.Series) == 0 {
		return 1, 0, 0
	}
	return 1, len(t.Series), len(t.Series[0].Values)
}

// Horizon is the length of every series.
func (t *Trajectory) Horizon() int {
	_, _, n := t.YShape()
	return n
}

// Column returns one flow-record column across all steps.
func (t *Trajectory) Column(name string) ([]float64, error) {
	k := ColumnIndex(name)
	if k < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	col := make([]float64, len(t.Records))
	for i := range t.Records {
		col[i] = t.Records[i].Values()[k]
	}
	return col, nil
}

// SeriesByName returns the first series with the given name.
func (t *Trajectory) SeriesByName(name string) ([]float64, error) {
	for _, s := range t.Series {
		if s.Name == name {
			return s.Values, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// Validate rejects NaN and Inf anywhere and negative values outside the
// signed columns and series.
func (t *Trajectory) Validate() error {
	for i := range t.Records {
		for k, v := range t.Records[i].Values() {
			if bad(v, signedColumns[Columns[k]]) {
				return &ValueError{Array: "x", Name: Columns[k], Index: i, Value: v}
			}
		}
	}
	for _, s := range t.Series {
		for i, v := range s.Values {
			if bad(v, s.Kind == state.Signed) {
				return &ValueError{Array: "y", Name: s.Name, Index: i, Value: v}
			}
		}
	}
	return nil
}

func bad(v float64, signed bool) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return true
	}
	return !signed && v < 0
}
