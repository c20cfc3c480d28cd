package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	Run     RunMetadata    `json:"run"`
	Samples []ExportSample `json:"samples"`
}

type ExportSample struct {
	Time       float64    `json:"t"`
	Position   [3]float64 `json:"position"`
	Quaternion [4]float64 `json:"quaternion"`
	Velocity   [3]float64 `json:"velocity"`
	InContact  bool       `json:"contact"`
}

// ExportJSON writes a stored run and its samples to path as one document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     *meta,
		Samples: make([]ExportSample, len(samples)),
	}
	for i, sm := range samples {
		q := sm.Quaternion
		data.Samples[i] = ExportSample{
			Time:       sm.Time,
			Position:   sm.Position,
			Quaternion: [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()},
			Velocity:   sm.Velocity,
			InContact:  sm.InContact,
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies a stored run's sample trace to path.
func (s *Store) ExportCSV(runID, path string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	src, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
