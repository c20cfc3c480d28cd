package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "states.csv"
	configFile   = "config.yaml"
)

var sampleHeader = []string{
	"time", "x", "y", "z", "qw", "qx", "qy", "qz", "vx", "vy", "vz", "contact", "penetration",
}

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
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	FixedStep float64            `json:"fixed_step"`
	Steps     int                `json:"steps"`
	Duration  float64            `json:"duration"`
	Gravity   [3]float64         `json:"gravity"`
	Mass      float64            `json:"mass"`
	Radius    float64            `json:"radius"`
	FinalY    float64            `json:"final_y"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata, scene config and sample trace under a new
// run directory and returns its id.
func (s *Store) Save(cfg *config.Config, result *dynamo.Result) (string, error) {
	name := cfg.Preset
	if name == "" {
		name = "custom"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Preset:    cfg.Preset,
		Timestamp: now,
		FixedStep: cfg.World.FixedStep,
		Steps:     result.StepsTaken,
		Duration:  float64(result.StepsTaken) * cfg.World.FixedStep,
		Gravity:   cfg.World.Gravity,
		Mass:      cfg.Sphere.Mass,
		Radius:    cfg.Sphere.Radius,
		Metrics:   result.Metrics,
	}
	if last, ok := result.Final(); ok {
		meta.FinalY = last.Height()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}

	slog.Debug("run saved", "id", runID, "samples", len(result.Samples))
	return runID, nil
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

func writeSamples(path string, samples []dynamo.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, sm := range samples {
		p, q, v := sm.Position, sm.Quaternion, sm.Velocity
		row := []string{
			ff(sm.Time),
			ff(p.X()), ff(p.Y()), ff(p.Z()),
			ff(q.W), ff(q.V.X()), ff(q.V.Y()), ff(q.V.Z()),
			ff(v.X()), ff(v.Y()), ff(v.Z()),
			strconv.FormatBool(sm.InContact),
			ff(sm.Penetration),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs, oldest first. Directories without readable
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadConfig returns the scene config the run was produced with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(s.baseDir, runID, configFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", runID, dynamo.ErrRunNotFound)
	}
	return cfg, err
}

func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", runID, dynamo.ErrRunNotFound)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			if j == 11 {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %s: %w", runID, i+1, sampleHeader[j], err)
			}
			vals[j] = v
		}
		contact, err := strconv.ParseBool(rec[11])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d contact: %w", runID, i+1, err)
		}
		samples = append(samples, dynamo.Sample{
			Step:        i,
			Time:        vals[0],
			Position:    mgl64.Vec3{vals[1], vals[2], vals[3]},
			Quaternion:  mgl64.Quat{W: vals[4], V: mgl64.Vec3{vals[5], vals[6], vals[7]}},
			Velocity:    mgl64.Vec3{vals[8], vals[9], vals[10]},
			InContact:   contact,
			Penetration: vals[12],
		})
	}
	return samples, nil
}
