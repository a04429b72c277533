// Command kestrel-train runs a headless self-play training loop: it plays
// games to completion, then replays each finished game applying the
// supervised learning update for every move, and saves weights after every
// game and on shutdown. It speaks
// neither UCI nor any GUI protocol.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/board/fen"
	"github.com/corvuschess/kestrel/pkg/book"
	"github.com/corvuschess/kestrel/pkg/driver"
	"github.com/corvuschess/kestrel/pkg/learn"
	"github.com/corvuschess/kestrel/pkg/search"
	"github.com/corvuschess/kestrel/pkg/weights"
	"github.com/seekerror/logw"
)

var (
	weightsPath = flag.String("weights", "weights.toml", "Path to the persisted weights file")
	bookPath    = flag.String("book", "", "Path to a Polyglot .bin opening book (optional)")
	games       = flag.Int("games", 0, "Number of games to play before exiting (0 = until interrupted)")
	lr          = flag.Float64("lr", learn.DefaultLearningRate, "Learning rate applied per move update")
	seed        = flag.Int64("seed", 0, "Zobrist/book random seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: kestrel-train [options]

kestrel-train plays self-play games and updates feature weights offline.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := weights.Load(ctx, *weightsPath)
	defer func() {
		if err := store.Save(ctx); err != nil {
			logw.Errorf(ctx, "Final save failed: %v", err)
		}
	}()

	var bk *book.Book
	if *bookPath != "" {
		bk = book.LoadOrEmpty(*seed, *bookPath)
	} else {
		bk = book.New(*seed)
	}

	zt := board.NewZobristTable(*seed)

	played := 0
	for *games == 0 || played < *games {
		if ctx.Err() != nil {
			break
		}

		playGame(ctx, zt, store, bk)
		played++

		if err := store.Save(ctx); err != nil {
			logw.Errorf(ctx, "Save after game %v failed: %v", played, err)
		}
		logw.Infof(ctx, "Finished game %v", played)
	}
}

// playGame plays one self-play game to a terminal result, then replays it
// from the start, applying a learning update for every move played. A game
// interrupted by ctx gets no learning update.
func playGame(ctx context.Context, zt *board.ZobristTable, store *weights.Store, bk *book.Book) {
	pos, turn, noprogress, fullmoves, _ := fen.Decode(fen.Initial)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	tt := search.NewTranspositionTable()
	d := driver.New(tt, &store.Weights, bk)
	d.Budgets = store.Budgets

	var moves []board.Move
	for b.Result().Outcome == board.Undecided {
		if ctx.Err() != nil {
			return
		}

		res := d.BestMove(ctx, b)
		if !b.PushMove(res.Move) {
			logw.Errorf(ctx, "Driver returned illegal move %v on %v", res.Move, b)
			return
		}
		moves = append(moves, res.Move)

		if !hasLegalMove(b) {
			b.AdjudicateNoLegalMoves()
		}
	}

	outcome := b.Result().Outcome
	replay, _, _, _, _ := fen.Decode(fen.Initial)
	rb := board.NewBoard(zt, replay, turn, noprogress, fullmoves)
	for _, m := range moves {
		mover := rb.Turn()
		learn.Update(&store.Weights, rb, m, resultFor(outcome, mover), *lr)
		rb.PushMove(m)
	}
}

// hasLegalMove reports whether any pseudo-legal move for the side to move is
// actually legal. A position can have pseudo-legal moves that all leave the
// mover's own king in check (checkmate, or a pinned-piece stalemate), so the
// pseudo-legal count alone can't be used to detect a terminal position.
func hasLegalMove(b *board.Board) bool {
	pos := b.Position()
	for _, m := range pos.PseudoLegalMoves(b.Turn()) {
		if _, ok := pos.Move(m); ok {
			return true
		}
	}
	return false
}

func resultFor(outcome board.Outcome, mover board.Color) learn.Result {
	switch outcome {
	case board.Draw:
		return learn.Draw
	case board.WhiteWins:
		if mover == board.White {
			return learn.Win
		}
		return learn.Loss
	case board.BlackWins:
		if mover == board.Black {
			return learn.Win
		}
		return learn.Loss
	default:
		return learn.Draw
	}
}
