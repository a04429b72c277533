// Package search implements alpha-beta negamax with quiescence, null-move
// pruning and a bounded transposition table.
package search

import (
	"sort"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
)

// Bound records which side of the true score a stored entry represents,
// relative to the alpha-beta window it was computed under.
type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

// TTMax bounds the number of live entries. Once exceeded, the table evicts
// its older half in a single sweep rather than replacing one entry at a time.
const TTMax = 200000

type ttEntry struct {
	score eval.Score
	depth int
	bound Bound
	move  board.Move
	seq   uint64
}

// TranspositionTable caches search results keyed by Zobrist hash. Not safe
// for concurrent use; the engine searches on a single goroutine.
type TranspositionTable struct {
	entries map[board.ZobristHash]ttEntry
	seq     uint64
}

func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{entries: make(map[board.ZobristHash]ttEntry, TTMax)}
}

// Probe returns the stored entry for hash, if any.
func (t *TranspositionTable) Probe(hash board.ZobristHash) (score eval.Score, depth int, bound Bound, move board.Move, ok bool) {
	e, found := t.entries[hash]
	if !found {
		return 0, 0, 0, board.Move{}, false
	}
	return e.score, e.depth, e.bound, e.move, true
}

// Store records a search result, preferring the existing entry when it was
// computed at least as deep. Evicts the older half of the table when full.
func (t *TranspositionTable) Store(hash board.ZobristHash, score eval.Score, depth int, bound Bound, move board.Move) {
	if existing, found := t.entries[hash]; found && existing.depth >= depth {
		return
	}
	t.seq++
	t.entries[hash] = ttEntry{score: score, depth: depth, bound: bound, move: move, seq: t.seq}
	if len(t.entries) > TTMax {
		t.evictOlderHalf()
	}
}

func (t *TranspositionTable) evictOlderHalf() {
	seqs := make([]uint64, 0, len(t.entries))
	for _, e := range t.entries {
		seqs = append(seqs, e.seq)
	}
	sort.Slice(seqs, func(i, j int) bool { return seqs[i] < seqs[j] })
	median := seqs[len(seqs)/2]
	for h, e := range t.entries {
		if e.seq < median {
			delete(t.entries, h)
		}
	}
}

// Len returns the number of live entries.
func (t *TranspositionTable) Len() int {
	return len(t.entries)
}

// Clear empties the table, e.g. between unrelated games.
func (t *TranspositionTable) Clear() {
	t.entries = make(map[board.ZobristHash]ttEntry, TTMax)
	t.seq = 0
}
