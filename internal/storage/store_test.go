package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

func testTrajectory(rows, T int) *trajectory.Trajectory {
	rec := trajectory.NewRecorder(rows)
	for i := 0; i < rows; i++ {
		rec.Append(trajectory.FlowRecord{
			P1RP:  0.001 * float64(i+1),
			W:     0.4385,
			EMF:   -0.25,
			EMFHH: -250,
			FF:    1.0 / 3,
		})
	}
	st := state.New(params.Default(), T)
	st.P1Deficit[1] = -0.5
	traj := rec.Finish(st.Series())
	traj.Metrics["peak_temperature"] = 25.5
	return traj
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	traj := testTrajectory(4, 5)
	runID, err := st.Save(RunMetadata{Horizon: 5, Seed: 42, DuplicateFinalStep: true}, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Seed != 42 || meta.Horizon != 5 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["peak_temperature"] != 25.5 {
		t.Errorf("expected peak 25.5, got %f", meta.Metrics["peak_temperature"])
	}
	if len(meta.XShape) != 2 || meta.XShape[0] != 4 || meta.XShape[1] != 77 {
		t.Errorf("unexpected x shape %v", meta.XShape)
	}
	if len(meta.YShape) != 3 || meta.YShape[1] != 49 || meta.YShape[2] != 5 {
		t.Errorf("unexpected y shape %v", meta.YShape)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	traj := testTrajectory(3, 4)

	runID, err := st.Save(RunMetadata{Horizon: 4}, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}

	if len(loaded.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(loaded.Records))
	}
	for i := range traj.Records {
		if loaded.Records[i] != traj.Records[i] {
			t.Errorf("record %d differs:\n got %+v\nwant %+v", i, loaded.Records[i], traj.Records[i])
		}
	}

	if len(loaded.Series) != 49 {
		t.Fatalf("expected 49 series, got %d", len(loaded.Series))
	}
	for k, s := range traj.Series {
		got := loaded.Series[k]
		if got.Name != s.Name || got.Kind != s.Kind {
			t.Errorf("series %d: got %s/%v, want %s/%v", k, got.Name, got.Kind, s.Name, s.Kind)
		}
		for i := range s.Values {
			if got.Values[i] != s.Values[i] {
				t.Errorf("%s[%d] = %g, want %g", s.Name, i, got.Values[i], s.Values[i])
			}
		}
	}
}

func TestStoreArrays(t *testing.T) {
	st := New(t.TempDir())
	traj := testTrajectory(3, 4)

	runID, err := st.Save(RunMetadata{}, traj)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	xShape, x, yShape, y, err := st.LoadArrays(runID)
	if err != nil {
		t.Fatalf("load arrays failed: %v", err)
	}

	if len(xShape) != 2 || xShape[0] != 3 || xShape[1] != 77 {
		t.Errorf("unexpected x shape %v", xShape)
	}
	if len(x) != 3*77 || x[77] != 0.002 {
		t.Errorf("x row 1 starts with %g, want 0.002", x[77])
	}

	if len(yShape) != 3 || yShape[0] != 1 || yShape[1] != 49 || yShape[2] != 4 {
		t.Errorf("unexpected y shape %v", yShape)
	}
	if y[0] != params.Default().Initial.P1 {
		t.Errorf("y[0] = %g, want initial P1", y[0])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{}, testTrajectory(2, 3)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(RunMetadata{}, testTrajectory(2, 3)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if len(runs) == 2 && runs[1].Timestamp.Before(runs[0].Timestamp) {
		t.Error("runs not sorted by timestamp")
	}
}

func TestStoreRejectsEmptyRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Save(RunMetadata{}, testTrajectory(0, 3))
	if !errors.Is(err, ErrEmptyRun) {
		t.Errorf("expected ErrEmptyRun, got %v", err)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("run_0")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{}, testTrajectory(2, 3))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{MetadataFile, XFile, YFile, FlowsFile, SeriesFile} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	traj := testTrajectory(2, 3)

	var buf bytes.Buffer
	if err := ExportJSONTo(&buf, RunMetadata{ID: "run_1"}, traj); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if data.Run.ID != "run_1" || len(data.X) != 2 || len(data.Columns) != 77 {
		t.Errorf("unexpected export %+v", data.Run)
	}
	if len(data.Order) != 49 || len(data.Series["temp"]) != 3 {
		t.Errorf("unexpected series export: %d names", len(data.Order))
	}
}
