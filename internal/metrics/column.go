package metrics

import (
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

// ColumnMean averages one flow-record column over the run.
type ColumnMean struct {
	name    string
	column  int
	sum     float64
	samples int
}

// NewColumnMean returns nil if the column does not exist.
func NewColumnMean(column string) *ColumnMean {
	k := trajectory.ColumnIndex(column)
	if k < 0 {
		return nil
	}
	return &ColumnMean{
		name:   "mean_" + column,
		column: k,
	}
}

func (c *ColumnMean) Name() string {
	return c.name
}

func (c *ColumnMean) Observe(i int, s *state.State, r *trajectory.FlowRecord) {
	c.sum += r.Values()[c.column]
	c.samples++
}

func (c *ColumnMean) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ColumnMean) Reset() {
	c.sum = 0
	c.samples = 0
}
