package search

import (
	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/eval"
)

// maxKillers bounds how many killer moves are remembered per ply.
const maxKillers = 2

// KillerTable remembers quiet moves that caused a beta cutoff at a given
// ply, so siblings can try them early without a capture's material hint.
type KillerTable struct {
	moves [][maxKillers]board.Move
}

func NewKillerTable() *KillerTable {
	return &KillerTable{}
}

func (k *KillerTable) ensure(ply int) {
	for len(k.moves) <= ply {
		k.moves = append(k.moves, [maxKillers]board.Move{})
	}
}

// Is reports whether m is a remembered killer at ply.
func (k *KillerTable) Is(ply int, m board.Move) bool {
	if ply >= len(k.moves) {
		return false
	}
	return k.moves[ply][0].Equals(m) || k.moves[ply][1].Equals(m)
}

// Add records m as a killer at ply, evicting the older slot.
func (k *KillerTable) Add(ply int, m board.Move) {
	k.ensure(ply)
	if k.moves[ply][0].Equals(m) || k.moves[ply][1].Equals(m) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

// HistoryTable scores quiet moves by how often they have raised alpha,
// weighted by the depth at which that happened.
type HistoryTable struct {
	score [board.NumColors][board.NumSquares][board.NumSquares]uint32
}

func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

func (h *HistoryTable) Get(side board.Color, from, to board.Square) uint32 {
	return h.score[side][from][to]
}

func (h *HistoryTable) Add(side board.Color, from, to board.Square, depth int) {
	h.score[side][from][to] += uint32(depth * depth)
}

// isQuiet reports whether a move is neither a capture nor an en passant
// capture. Non-capturing promotions are quiet.
func isQuiet(m board.Move) bool {
	return m.Type != board.Capture && m.Type != board.CapturePromotion && m.Type != board.EnPassant
}

func captureVictim(m board.Move) board.Piece {
	if m.Type == board.EnPassant {
		return board.Pawn
	}
	return m.Capture
}

// clampPriority keeps a combined ordering score inside board.MovePriority's
// int16 range.
func clampPriority(v int) board.MovePriority {
	switch {
	case v > 32000:
		return 32000
	case v < -32000:
		return -32000
	default:
		return board.MovePriority(v)
	}
}

// priorityFn builds the move ordering function for a negamax node: captures
// and promotions ranked by MVV-LVA and promoted value, then killers, then
// history, per the search's standard move-ordering formula.
func (s *Searcher) priorityFn(turn board.Color, ply int) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		v := 0
		if !isQuiet(m) {
			v += 10*int(eval.NominalValue(captureVictim(m))) - int(eval.NominalValue(m.Piece)) + 5000
		}
		if m.Type == board.Promotion || m.Type == board.CapturePromotion {
			v += 4000 + int(eval.NominalValue(m.Promotion))
		}
		if s.Killers.Is(ply, m) {
			v += 2000
		}
		v += int(s.History.Get(turn, m.From, m.To))
		return clampPriority(v)
	}
}

// capturePriorityFn orders quiescence captures by MVV-LVA alone.
func capturePriorityFn(m board.Move) board.MovePriority {
	v := 10*int(eval.NominalValue(captureVictim(m))) - int(eval.NominalValue(m.Piece))
	return clampPriority(v)
}
