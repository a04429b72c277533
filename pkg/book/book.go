// Package book implements Polyglot-format opening book lookups: binary
// file parsing, weight aggregation across multiple loaded files, and
// weighted-random move selection keyed by the Polyglot Zobrist hash.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/board/polyglot"
)

// entry is a single aggregated (position, move) weight.
type entry struct {
	move   board.Move
	weight uint32
}

// Book is an in-memory Polyglot opening book, merged from one or more files.
type Book struct {
	positions map[uint64][]entry
	rnd       *rand.Rand
}

// New returns an empty book that never returns a move.
func New(seed int64) *Book {
	return &Book{positions: map[uint64][]entry{}, rnd: rand.New(rand.NewSource(seed))}
}

// Load merges the Polyglot .bin files at the given paths into a new book.
// A missing or unreadable file is a hard error; callers that want the
// spec's "book I/O failure is silent" behavior should use LoadOrEmpty.
func Load(seed int64, paths ...string) (*Book, error) {
	b := New(seed)
	for _, path := range paths {
		if err := b.loadFile(path); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// LoadOrEmpty merges the given files, ignoring any that cannot be read or
// parsed, and always returns a usable (possibly empty) book.
func LoadOrEmpty(seed int64, paths ...string) *Book {
	b := New(seed)
	for _, path := range paths {
		_ = b.loadFile(path)
	}
	return b
}

func (b *Book) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.loadReader(f)
}

// polyglotEntrySize is the fixed 16-byte record: 8-byte key, 2-byte move,
// 2-byte weight, 4-byte learn (ignored).
const polyglotEntrySize = 16

func (b *Book) loadReader(r io.Reader) error {
	var raw [polyglotEntrySize]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		moveBits := binary.BigEndian.Uint16(raw[8:10])
		weight := binary.BigEndian.Uint16(raw[10:12])

		m, ok := decodeMove(moveBits)
		if !ok {
			continue
		}
		b.merge(key, m, uint32(weight))
	}
}

// merge folds a (key, move, weight) triple into the aggregated table,
// summing weights when the same move for the same position appears in
// more than one loaded file.
func (b *Book) merge(key uint64, m board.Move, weight uint32) {
	list := b.positions[key]
	for i := range list {
		if list[i].move.Equals(m) {
			list[i].weight += weight
			b.positions[key] = list
			return
		}
	}
	b.positions[key] = append(list, entry{move: m, weight: weight})
}

// decodeMove converts a Polyglot move encoding (to:0-5, from:6-11,
// promotion:12-14) into a board.Move with From/To/Promotion populated.
// The move's Type/Piece/Capture are left for the caller to fill in by
// matching against legal moves, since Polyglot does not encode them.
func decodeMove(data uint16) (board.Move, bool) {
	toFile := board.File(7 - int(data&7))
	toRank := board.Rank((data >> 3) & 7)
	fromFile := board.File(7 - int((data>>6)&7))
	fromRank := board.Rank((data >> 9) & 7)
	promo := (data >> 12) & 7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	// Polyglot encodes castling as king-captures-own-rook; translate to our
	// king-lands-two-over encoding before matching against legal moves.
	switch {
	case from == board.E1 && to == board.H1:
		to = board.G1
	case from == board.E1 && to == board.A1:
		to = board.C1
	case from == board.E8 && to == board.H8:
		to = board.G8
	case from == board.E8 && to == board.A8:
		to = board.C8
	}

	m := board.Move{From: from, To: to}
	if promo > 0 {
		kinds := [...]board.Piece{0, board.Knight, board.Bishop, board.Rook, board.Queen}
		if int(promo) >= len(kinds) {
			return board.Move{}, false
		}
		m.Promotion = kinds[promo]
	}
	return m, true
}

// Probe looks up pos in the book and returns a weighted-random legal move,
// verified and fully populated against the position's actual legal moves.
// Returns false if the book has no entry, all candidates turn out illegal,
// or the book is nil.
func (b *Book) Probe(pos *board.Position, turn board.Color) (board.Move, bool) {
	if b == nil {
		return board.Move{}, false
	}

	key := polyglot.Hash(pos, turn)
	candidates := b.positions[key]
	if len(candidates) == 0 {
		return board.Move{}, false
	}

	legal := legalMoves(pos, turn)

	var total uint32
	for _, c := range candidates {
		total += c.weight
	}
	if total == 0 {
		for _, c := range candidates {
			if m, ok := match(legal, c.move); ok {
				return m, true
			}
		}
		return board.Move{}, false
	}

	order := make([]entry, len(candidates))
	copy(order, candidates)
	sort.Slice(order, func(i, j int) bool { return order[i].weight > order[j].weight })

	r := uint32(b.rnd.Int63n(int64(total)))
	var cumulative uint32
	for _, c := range order {
		cumulative += c.weight
		if r < cumulative {
			if m, ok := match(legal, c.move); ok {
				return m, true
			}
			break
		}
	}

	for _, c := range order {
		if m, ok := match(legal, c.move); ok {
			return m, true
		}
	}
	return board.Move{}, false
}

func legalMoves(pos *board.Position, turn board.Color) []board.Move {
	pseudo := pos.PseudoLegalMoves(turn)
	ret := make([]board.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if _, ok := pos.Move(m); ok {
			ret = append(ret, m)
		}
	}
	return ret
}

// match finds the fully-populated legal move matching a Polyglot-decoded
// move's From/To/Promotion, since Polyglot does not encode move type.
func match(legal []board.Move, candidate board.Move) (board.Move, bool) {
	for _, m := range legal {
		if m.From == candidate.From && m.To == candidate.To && m.Promotion == candidate.Promotion {
			return m, true
		}
	}
	return board.Move{}, false
}

// Size returns the number of distinct positions the book has entries for.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.positions)
}
