// Package storage keeps finished runs on disk. Each run gets a directory
// holding its metadata, the two result arrays in npy format, and CSV copies
// of the flow records and series.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/gssem/internal/state"
	"github.com/san-kum/gssem/internal/trajectory"
)

const (
	MetadataFile = "metadata.json"
	XFile        = "x_results.npy"
	YFile        = "y_results.npy"
	FlowsFile    = "flows.csv"
	SeriesFile   = "series.csv"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrEmptyRun    = errors.New("storage: run has no records")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID                 string             `json:"id"`
	Timestamp          time.Time          `json:"timestamp"`
	Horizon            int                `json:"time"`
	Seed               int64              `json:"seed"`
	Stochastic         bool               `json:"stochastic"`
	DuplicateFinalStep bool               `json:"duplicate_final_step"`
	Preset             string             `json:"preset,omitempty"`
	Overrides          map[string]float64 `json:"overrides,omitempty"`
	XShape             []int              `json:"x_shape"`
	YShape             []int              `json:"y_shape"`
	Metrics            map[string]float64 `json:"metrics"`
}

// SeriesPoint is one value of one series in the long-format series CSV.
type SeriesPoint struct {
	Index int     `csv:"index"`
	Name  string  `csv:"series"`
	Step  int     `csv:"step"`
	Value float64 `csv:"value"`
}

// Save writes every artifact of a run and returns its ID. The ID, shapes,
// timestamp and metrics in meta are filled in here.
func (s *Store) Save(meta RunMetadata, traj *trajectory.Trajectory) (string, error) {
	rows, cols := traj.XShape()
	a, b, c := traj.YShape()
	if rows == 0 || c == 0 {
		return "", ErrEmptyRun
	}

	now := time.Now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.XShape = []int{rows, cols}
	meta.YShape = []int{a, b, c}
	meta.Metrics = traj.Metrics

	if err := writeJSON(filepath.Join(runDir, MetadataFile), meta); err != nil {
		return "", fmt.Errorf("storage: write metadata: %w", err)
	}

	if err := WriteNPY(filepath.Join(runDir, XFile), mat.NewDense(rows, cols, flatten2(traj.X()))); err != nil {
		return "", fmt.Errorf("storage: write x: %w", err)
	}
	// the y file holds the single run plane; LoadArrays restores the run axis
	if err := WriteNPY(filepath.Join(runDir, YFile), mat.NewDense(b, c, flatten2(traj.Y()[0]))); err != nil {
		return "", fmt.Errorf("storage: write y: %w", err)
	}

	if err := writeCSV(filepath.Join(runDir, FlowsFile), traj.Records); err != nil {
		return "", fmt.Errorf("storage: write flows: %w", err)
	}
	points := seriesPoints(traj.Series)
	if err := writeCSV(filepath.Join(runDir, SeriesFile), points); err != nil {
		return "", fmt.Errorf("storage: write series: %w", err)
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), MetadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFlows(runID string) ([]trajectory.FlowRecord, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), FlowsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []trajectory.FlowRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("storage: read flows: %w", err)
	}
	return records, nil
}

// LoadSeries rebuilds the named series from the long-format CSV, in their
// original order.
func (s *Store) LoadSeries(runID string) ([]state.Series, error) {
	f, err := os.Open(filepath.Join(s.Dir(runID), SeriesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []SeriesPoint
	if err := gocsv.UnmarshalFile(f, &points); err != nil {
		return nil, fmt.Errorf("storage: read series: %w", err)
	}

	var series []state.Series
	for _, pt := range points {
		for pt.Index >= len(series) {
			series = append(series, state.Series{})
		}
		sr := &series[pt.Index]
		sr.Name = pt.Name
		for pt.Step >= len(sr.Values) {
			sr.Values = append(sr.Values, 0)
		}
		sr.Values[pt.Step] = pt.Value
	}
	for k := range series {
		series[k].Kind = state.KindOf(series[k].Name)
	}
	return series, nil
}

// LoadTrajectory reassembles a run's records, series and metrics.
func (s *Store) LoadTrajectory(runID string) (*trajectory.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	records, err := s.LoadFlows(runID)
	if err != nil {
		return nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	traj := &trajectory.Trajectory{
		Records: records,
		Series:  series,
		Metrics: meta.Metrics,
	}
	if traj.Metrics == nil {
		traj.Metrics = make(map[string]float64)
	}
	return traj, nil
}

// LoadArrays reads the raw npy arrays back with their shapes. The y shape
// carries the leading run axis of length 1.
func (s *Store) LoadArrays(runID string) (xShape []int, x []float64, yShape []int, y []float64, err error) {
	xShape, x, err = ReadNPY(filepath.Join(s.Dir(runID), XFile))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	yShape, y, err = ReadNPY(filepath.Join(s.Dir(runID), YFile))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if len(yShape) == 2 {
		yShape = append([]int{1}, yShape...)
	}
	return xShape, x, yShape, y, nil
}

func seriesPoints(series []state.Series) []SeriesPoint {
	var points []SeriesPoint
	for k, sr := range series {
		for step, v := range sr.Values {
			points = append(points, SeriesPoint{Index: k, Name: sr.Name, Step: step, Value: v})
		}
	}
	return points
}

func flatten2(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(records, f)
}
