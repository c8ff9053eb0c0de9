package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/scenekit/internal/driver"
)

type ExportSample struct {
	Tick     uint64     `json:"tick"`
	Time     float64    `json:"time"`
	Position [2]float64 `json:"position"`
	Velocity [2]float64 `json:"velocity"`
	Angle    float64    `json:"angle"`
}

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

func NewExport(meta RunMetadata, samples []driver.Sample) ExportData {
	data := ExportData{
		RunMetadata: meta,
		Samples:     make([]ExportSample, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = ExportSample{
			Tick:     s.Tick,
			Time:     s.Time,
			Position: [2]float64{s.State.Position.X, s.State.Position.Y},
			Velocity: [2]float64{s.State.Velocity.X, s.State.Velocity.Y},
			Angle:    s.State.Angle,
		}
	}
	return data
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []driver.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(meta, samples))
}

func ExportJSONFile(path string, meta RunMetadata, samples []driver.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := ExportJSON(file, meta, samples); err != nil {
		return err
	}
	return file.Close()
}

// ExportJSONStdout writes a run to standard output.
func ExportJSONStdout(meta RunMetadata, samples []driver.Sample) error {
	return ExportJSON(os.Stdout, meta, samples)
}
