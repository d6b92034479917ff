package report

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/storage"
	"github.com/san-kum/gssem/internal/trajectory"
)

func testTrajectory(T int) *trajectory.Trajectory {
	rec := trajectory.NewRecorder(T)
	for i := 0; i < T; i++ {
		rec.Append(trajectory.FlowRecord{
			CC:    0.006 + 0.0001*float64(i),
			FF:    0.007 + 0.0001*float64(i),
			GRPP1: 0.9,
			GRPP2: 0.8,
			GRPP3: 0.7,
		})
	}
	st := state.New(params.Default(), T)
	for i := range st.P1 {
		st.P1[i] = float64(i)
		st.Temp[i] = 25 + 0.01*float64(i)
	}
	return rec.Finish(st.Series())
}

func TestMinMaxScale(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", nil, []float64{}},
		{"ramp", []float64{2, 3, 4}, []float64{0, 0.5, 1}},
		{"reversed", []float64{10, 0}, []float64{1, 0}},
		{"constant", []float64{5, 5, 5}, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMaxScale(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k := range got {
				if got[k] != tt.want[k] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFigures(t *testing.T) {
	figs, err := Figures(testTrajectory(10))
	if err != nil {
		t.Fatalf("figures failed: %v", err)
	}
	if len(figs) != 6 {
		t.Fatalf("expected 6 figures, got %d", len(figs))
	}
	for k, f := range figs {
		if f.Number != 15+k {
			t.Errorf("figure %d numbered %d", k, f.Number)
		}
		for _, l := range f.Lines {
			if len(l.Values) != 10 {
				t.Errorf("figure %d line %s has %d points", f.Number, l.Name, len(l.Values))
			}
		}
	}

	if got := figs[0].Lines[1].Values[0]; math.Abs(got-6) > 1e-9 {
		t.Errorf("baseline mortality should be scaled by 1000, got %g", got)
	}
	if got := figs[1].Lines[1].Values[0]; math.Abs(got-90) > 1e-9 {
		t.Errorf("growth factor should be scaled by 100, got %g", got)
	}
	p1 := figs[2].Lines[0].Values
	if p1[0] != 0 || p1[9] != 1 {
		t.Errorf("P1 not min-max scaled: %v", p1)
	}
}

func TestRender(t *testing.T) {
	figs, err := Figures(testTrajectory(10))
	if err != nil {
		t.Fatal(err)
	}

	out := Render(figs[2], 40, 8, false)
	if !strings.Contains(out, "Figure 17: Plants") {
		t.Errorf("caption missing from\n%s", out)
	}

	empty := Render(Figure{Number: 99, Title: "nothing"}, 40, 8, false)
	if !strings.Contains(empty, "no data") {
		t.Errorf("expected placeholder, got %q", empty)
	}
}

func TestWriteSVG(t *testing.T) {
	figs, err := Figures(testTrajectory(10))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, figs[3], 640, 360); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Error("not an svg document")
	}
	if n := strings.Count(out, "<path"); n != 3 {
		t.Errorf("expected 3 paths, got %d", n)
	}

	short := Figure{Number: 1, Lines: []Line{{"a", []float64{1}}}}
	if err := WriteSVG(&buf, short, 10, 10); err == nil {
		t.Error("expected error for a single point")
	}
}

func TestParamTable(t *testing.T) {
	p := params.Default()
	entries := p.Describe()
	out := ParamTable(entries)

	if !strings.Contains(out, "P1") || !strings.Contains(out, "initial") {
		t.Error("table missing parameter rows")
	}
	if !strings.Contains(out, "parameters") {
		t.Error("table missing count line")
	}
}

func TestRunTable(t *testing.T) {
	if out := RunTable(nil); !strings.Contains(out, "no runs") {
		t.Errorf("unexpected empty table %q", out)
	}

	out := RunTable([]storage.RunMetadata{{
		ID:        "run_1",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Horizon:   100,
		Metrics:   map[string]float64{"peak_temperature": 25.1234},
	}})
	if !strings.Contains(out, "run_1") || !strings.Contains(out, "25.123") {
		t.Errorf("unexpected table\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	meta := storage.RunMetadata{
		ID:      "run_7",
		XShape:  []int{100, 77},
		YShape:  []int{1, 49, 100},
		Metrics: map[string]float64{"final_households": 1000},
	}
	out := Summary(meta, []float64{25, 25.5, 26})
	for _, want := range []string{"run_7", "[100 77]", "[1 49 100]", "final_households"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 5); got != "─────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := Sparkline([]float64{1, 2, 3, 4}, 4)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("sparkline missing extremes: %q", out)
	}
}
