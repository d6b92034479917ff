package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

const (
	barWidth    = 30
	clearLine   = "\r\033[2K"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	defaultRate = 20
)

// LiveProgress redraws a one-line progress bar as the engine steps. It
// implements the engine's observer interface.
type LiveProgress struct {
	out       io.Writer
	total     int
	frameRate int
	lastFrame time.Time
	temp      []float64
}

func NewLiveProgress(out io.Writer, total, frameRate int) *LiveProgress {
	if frameRate <= 0 {
		frameRate = defaultRate
	}
	return &LiveProgress{
		out:       out,
		total:     total,
		frameRate: frameRate,
		temp:      make([]float64, 0, total),
	}
}

func (r *LiveProgress) OnStep(i int, s *state.State, rec *trajectory.FlowRecord) {
	r.temp = append(r.temp, s.Temp[i+1])

	done := len(r.temp)
	if done < r.total && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(done, s.NumHH[i+1], s.Temp[i+1])
}

func (r *LiveProgress) render(done int, households, temp float64) {
	frac := 0.0
	if r.total > 0 {
		frac = float64(done) / float64(r.total)
	}
	filled := max(0, min(int(frac*barWidth), barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(r.out, "%s  %s %4d/%-4d  temp=%.3f  numHH=%.0f", clearLine, bar, done, r.total, temp, households)
}

// Temperatures returns the temperature after each observed step.
func (r *LiveProgress) Temperatures() []float64 { return r.temp }

func (r *LiveProgress) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveProgress) Stop()  { fmt.Fprint(r.out, "\n"+showCursor) }
