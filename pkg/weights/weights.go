// Package weights persists an eval.Weights table to a TOML file: feature
// weights, piece values, PSQT tables and phase depth/time budgets. Any
// loaded weight magnitude exceeding eval.WMax forces the whole table back
// to compiled-in defaults, matching the corruption-recovery behavior of the
// original training harness.
package weights

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/corvuschess/kestrel/pkg/eval"
	"github.com/corvuschess/kestrel/pkg/phase"
	"github.com/seekerror/logw"
)

// file is the TOML-serializable mirror of eval.Weights and the phase
// budget table. PSQT is stored piece-major, 64 values per piece.
type file struct {
	Feature [eval.NumFeatures]float32   `toml:"feature"`
	Enabled [eval.NumFeatures]bool      `toml:"enabled"`
	Piece   [7]int32                    `toml:"piece"`
	PSQT    [7][64]int32                `toml:"psqt"`
	Phase   [phase.NumPhases]phaseEntry `toml:"phase"`
}

type phaseEntry struct {
	DepthLimit    int `toml:"depth"`
	TimeBudgetsMs int `toml:"time_ms"`
}

// Store owns the on-disk path and the in-memory table loaded from it.
type Store struct {
	Path    string
	Weights eval.Weights
	Budgets [phase.NumPhases]phase.Budget
}

// Load reads path, falling back to compiled-in defaults if the file is
// missing, unparseable, or contains any weight exceeding eval.WMax.
func Load(ctx context.Context, path string) *Store {
	s := &Store{Path: path, Weights: eval.DefaultWeights(), Budgets: phase.Budgets}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		logw.Debugf(ctx, "weights: using defaults, could not load %v: %v", path, err)
		return s
	}

	w := eval.Weights{Feature: f.Feature, Enabled: f.Enabled}
	for p := 0; p < 7; p++ {
		w.Piece[p] = eval.Score(f.Piece[p])
		for sq := 0; sq < 64; sq++ {
			w.PSQT[p][sq] = eval.Score(f.PSQT[p][sq])
		}
	}

	if !w.IsValid() {
		logw.Infof(ctx, "weights: %v has an out-of-range weight, resetting to defaults", path)
		return s
	}
	s.Weights = w

	for p := phase.Phase(0); p < phase.NumPhases; p++ {
		if f.Phase[p].DepthLimit > 0 {
			s.Budgets[p] = phase.Budget{
				Depth: f.Phase[p].DepthLimit,
				Time:  time.Duration(f.Phase[p].TimeBudgetsMs) * time.Millisecond,
			}
		}
	}
	return s
}

// Save clamps every weight to eval.WMax and writes the table to Path.
func (s *Store) Save(ctx context.Context) error {
	w := s.Weights.Clamp()

	var f file
	f.Feature = w.Feature
	f.Enabled = w.Enabled
	for p := 0; p < 7; p++ {
		f.Piece[p] = int32(w.Piece[p])
		for sq := 0; sq < 64; sq++ {
			f.PSQT[p][sq] = int32(w.PSQT[p][sq])
		}
	}
	for p := phase.Phase(0); p < phase.NumPhases; p++ {
		f.Phase[p] = phaseEntry{DepthLimit: s.Budgets[p].Depth, TimeBudgetsMs: int(s.Budgets[p].Time.Milliseconds())}
	}

	out, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("weights: create %v: %w", s.Path, err)
	}
	defer out.Close()

	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("weights: encode %v: %w", s.Path, err)
	}

	logw.Debugf(ctx, "weights: saved to %v", s.Path)
	return nil
}
