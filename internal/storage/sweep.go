package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ristakaen/PlasmaTransition/internal/sweep"
)

// SaveSweep writes one equilibrium-time record per source value plus the
// collected final-V column used for the sweep plot.
func (s *Store) SaveSweep(outcomes []sweep.Outcome) (string, error) {
	sweepID := fmt.Sprintf("sweep_%d", time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, sweepID)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, o := range outcomes {
		fmt.Fprintf(&b, "S = %.3g\n", o.S)
		fmt.Fprintf(&b, "equilibrium time: %.6g\n", o.EquilibriumTime)
		fmt.Fprintf(&b, "final E: %.3g\n", o.FinalE)
		fmt.Fprintf(&b, "final V: %.3g\n", o.FinalV)
		fmt.Fprintf(&b, "final N: %.3g\n", o.FinalN)
		if !o.Converged {
			b.WriteString("converged: false\n")
		}
		b.WriteString("\n")
	}
	if err := os.WriteFile(filepath.Join(dir, "summary.txt"), []byte(b.String()), 0644); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, "final_v.csv"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"S", "final_V", "equilibrium_time", "converged"}); err != nil {
		return "", err
	}
	for _, o := range outcomes {
		row := []string{
			strconv.FormatFloat(o.S, 'g', -1, 64),
			strconv.FormatFloat(o.FinalV, 'g', -1, 64),
			strconv.FormatFloat(o.EquilibriumTime, 'g', -1, 64),
			strconv.FormatBool(o.Converged),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return sweepID, nil
}
