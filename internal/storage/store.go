// Package storage persists simulation runs: one directory per run
// with JSON metadata and a CSV trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/armsim/internal/sim"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	DOF        int                `json:"dof"`
	Dt         float64            `json:"dt"`
	Start      float64            `json:"start"`
	End        float64            `json:"end"`
	Controller string             `json:"controller"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory and returns its ID.
func (s *Store) Save(controller string, cfg sim.Config, metrics map[string]float64, result *sim.Result) (string, error) {
	if result.Samples() == 0 {
		return "", fmt.Errorf("storage: empty result")
	}

	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		DOF:        len(result.Q[0]),
		Dt:         cfg.Dt,
		Start:      cfg.Start,
		End:        cfg.End,
		Controller: controller,
		Metrics:    metrics,
	}
	if err := s.writeMeta(runDir, meta); err != nil {
		return "", err
	}
	if err := s.writeTrajectory(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeMeta(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "meta.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) writeTrajectory(runDir string, result *sim.Result) error {
	f, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	dof := len(result.Q[0])
	header := []string{"t"}
	for i := 0; i < dof; i++ {
		header = append(header, fmt.Sprintf("q%d", i))
	}
	for i := 0; i < dof; i++ {
		header = append(header, fmt.Sprintf("dq%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, 1+2*dof)
	for k, t := range result.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for i := 0; i < dof; i++ {
			row[1+i] = strconv.FormatFloat(result.Q[k][i], 'g', -1, 64)
			row[1+dof+i] = strconv.FormatFloat(result.DQ[k][i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Meta loads one run's metadata.
func (s *Store) Meta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "meta.json"))
	if err != nil {
		return meta, err
	}
	return meta, json.Unmarshal(data, &meta)
}

// List returns every stored run's metadata, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Meta(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadTrajectory reads a run's sampled trajectory back.
func (s *Store) LoadTrajectory(runID string) (*sim.Result, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: trajectory %s is empty", runID)
	}

	dof := (len(records[0]) - 1) / 2
	res := &sim.Result{}
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		q := make([]float64, dof)
		dq := make([]float64, dof)
		for i := 0; i < dof; i++ {
			if q[i], err = strconv.ParseFloat(rec[1+i], 64); err != nil {
				return nil, err
			}
			if dq[i], err = strconv.ParseFloat(rec[1+dof+i], 64); err != nil {
				return nil, err
			}
		}
		res.Times = append(res.Times, t)
		res.Q = append(res.Q, q)
		res.DQ = append(res.DQ, dq)
	}
	return res, nil
}

// ExportJSON writes a run's full data as a single JSON document.
func (s *Store) ExportJSON(runID string, out *os.File) error {
	meta, err := s.Meta(runID)
	if err != nil {
		return err
	}
	traj, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	doc := struct {
		RunMetadata
		Times []float64   `json:"times"`
		Q     [][]float64 `json:"q"`
		DQ    [][]float64 `json:"dq"`
	}{meta, traj.Times, traj.Q, traj.DQ}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
