// Package storage persists completed runs under a data directory, one
// subdirectory per run: metadata.json, trajectory.csv and summary.txt.
//
// summary.txt is the compatibility surface for downstream readers: four
// labeled fields, equilibrium time at six significant digits and the final
// E, V, N values at three.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
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
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Alpha float64 `json:"alpha"`
	Nu    float64 `json:"nu"`
	Mu    float64 `json:"mu"`
	S     float64 `json:"s"`

	N0 float64 `json:"n0"`
	E0 float64 `json:"e0"`
	V0 float64 `json:"v0"`

	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	Points int     `json:"points"`

	EquilibriumTime float64 `json:"equilibrium_time"`
	Converged       bool    `json:"converged"`
	Diverged        bool    `json:"diverged"`

	FinalN float64 `json:"final_n"`
	FinalE float64 `json:"final_e"`
	FinalV float64 `json:"final_v"`
}

// Summary renders the flat human-readable run record.
func Summary(res *dynamics.Result) string {
	n, e, v := res.Final()
	var b strings.Builder
	fmt.Fprintf(&b, "equilibrium time: %.6g\n", res.EquilibriumTime)
	fmt.Fprintf(&b, "final E: %.3g\n", e)
	fmt.Fprintf(&b, "final V: %.3g\n", v)
	fmt.Fprintf(&b, "final N: %.3g\n", n)
	return b.String()
}

func (s *Store) Save(meta RunMetadata, res *dynamics.Result) (string, error) {
	runID := fmt.Sprintf("S%.2f_%d", meta.S, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.EquilibriumTime = res.EquilibriumTime
	meta.Converged = res.Converged
	meta.Diverged = res.Diverged
	meta.FinalN, meta.FinalE, meta.FinalV = res.Final()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(runDir, "summary.txt"), []byte(Summary(res)), 0644); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"t", "N", "E", "V"}); err != nil {
		return "", err
	}
	for i := range res.Times {
		row := []string{
			strconv.FormatFloat(res.Times[i], 'g', -1, 64),
			strconv.FormatFloat(res.N[i], 'g', -1, 64),
			strconv.FormatFloat(res.E[i], 'g', -1, 64),
			strconv.FormatFloat(res.V[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns metadata for every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
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

// LoadTrajectory reads back the four aligned history columns of a run.
func (s *Store) LoadTrajectory(runID string) (times, n, e, v []float64, err error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if len(rows) < 1 {
		return nil, nil, nil, nil, fmt.Errorf("storage: run %s has no trajectory data", runID)
	}

	for _, row := range rows[1:] {
		if len(row) != 4 {
			return nil, nil, nil, nil, fmt.Errorf("storage: malformed trajectory row in run %s", runID)
		}
		vals := make([]float64, 4)
		for i, cell := range row {
			vals[i], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, nil, nil, err
			}
		}
		times = append(times, vals[0])
		n = append(n, vals[1])
		e = append(e, vals[2])
		v = append(v, vals[3])
	}
	return times, n, e, v, nil
}
