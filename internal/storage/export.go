package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/gssem/internal/trajectory"
)

// ExportData is the self-describing JSON form of a run.
type ExportData struct {
	Run     RunMetadata          `json:"run"`
	Columns []string             `json:"columns"`
	X       [][]float64          `json:"x"`
	Series  map[string][]float64 `json:"series"`
	Order   []string             `json:"series_order"`
}

func NewExportData(meta RunMetadata, traj *trajectory.Trajectory) ExportData {
	data := ExportData{
		Run:     meta,
		Columns: trajectory.Columns,
		X:       traj.X(),
		Series:  make(map[string][]float64, len(traj.Series)),
		Order:   make([]string, 0, len(traj.Series)),
	}
	for _, s := range traj.Series {
		data.Order = append(data.Order, s.Name)
		data.Series[s.Name] = s.Values
	}
	return data
}

func ExportJSON(path string, meta RunMetadata, traj *trajectory.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSONTo(file, meta, traj)
}

func ExportJSONTo(w io.Writer, meta RunMetadata, traj *trajectory.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, traj))
}

// ExportCSV writes the flow records alone, with a header row.
func ExportCSV(path string, traj *trajectory.Trajectory) error {
	return writeCSV(path, traj.Records)
}
