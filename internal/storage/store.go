package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/scenekit/internal/driver"
	"github.com/san-kum/scenekit/internal/physics"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("run not found")

var stateHeader = []string{"tick", "time", "x", "y", "angle", "vx", "vy", "omega"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Backend   string             `json:"backend"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Ticks     uint64             `json:"ticks"`
	Watched   string             `json:"watched,omitempty"`
	Bodies    int                `json:"bodies"`
	Joints    int                `json:"joints"`
	Stopped   string             `json:"stopped"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run directory named after a fresh run id and returns the id.
// ID and Timestamp of meta are filled in.
func (s *Store) Save(meta RunMetadata, samples []driver.Sample) (string, error) {
	meta.ID = fmt.Sprintf("%s_%s", meta.Scene, uuid.New().String()[:8])
	meta.Timestamp = time.Now()
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeStates(filepath.Join(runDir, statesFile), samples); err != nil {
		return "", fmt.Errorf("write states: %w", err)
	}
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return f.Close()
}

func writeStates(path string, samples []driver.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(stateHeader); err != nil {
		return err
	}
	for _, smp := range samples {
		st := smp.State
		row := []string{strconv.FormatUint(smp.Tick, 10)}
		for _, v := range []float64{smp.Time, st.Position.X, st.Position.Y, st.Angle, st.Velocity.X, st.Velocity.Y, st.AngularVelocity} {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns every readable run, newest first. Directories without valid
// metadata are skipped.
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
	slices.SortFunc(runs, func(a, b RunMetadata) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", runID, err)
	}
	return &meta, nil
}

// Latest returns the most recent run.
func (s *Store) Latest() (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// LoadStates reads the recorded samples of a run. Body ids are not stored
// per row, so Sample.Body is left zero.
func (s *Store) LoadStates(runID string) ([]driver.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read states %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []driver.Sample{}, nil
	}
	if strings.Join(records[0], ",") != strings.Join(stateHeader, ",") {
		return nil, fmt.Errorf("states %s: unexpected header %v", runID, records[0])
	}

	samples := make([]driver.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(stateHeader) {
			continue
		}
		tick, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			continue
		}
		var vals [7]float64
		ok := true
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(rec[j+1], 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, driver.Sample{
			Tick: tick,
			Time: vals[0],
			State: physics.BodyState{
				Position:        physics.Vec2{X: vals[1], Y: vals[2]},
				Angle:           vals[3],
				Velocity:        physics.Vec2{X: vals[4], Y: vals[5]},
				AngularVelocity: vals[6],
			},
		})
	}
	return samples, nil
}
