package driver_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvuschess/kestrel/pkg/board"
	"github.com/corvuschess/kestrel/pkg/board/fen"
	"github.com/corvuschess/kestrel/pkg/book"
	"github.com/corvuschess/kestrel/pkg/driver"
	"github.com/corvuschess/kestrel/pkg/eval"
	"github.com/corvuschess/kestrel/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/require"
)

func newTestDriver() *driver.Driver {
	w := eval.DefaultWeights()
	return driver.New(search.NewTranspositionTable(), &w, book.New(1))
}

func TestBestMovePlaysALegalOpeningMove(t *testing.T) {
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	zt := board.NewZobristTable(1)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	d := newTestDriver()
	res := d.BestMove(context.Background(), b, driver.Options{
		DepthLimit: lang.Some(3),
		TimeLimit:  lang.Some(2 * time.Second),
	})

	require.True(t, b.PushMove(res.Move), "driver must return a legal move")
}

func TestBestMoveSearchesWhenBookIsEmpty(t *testing.T) {
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	zt := board.NewZobristTable(1)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	bk := book.New(1)
	w := eval.DefaultWeights()
	d := driver.New(search.NewTranspositionTable(), &w, bk)

	start := time.Now()
	res := d.BestMove(context.Background(), b, driver.Options{DepthLimit: lang.Some(6)})
	require.True(t, b.PushMove(res.Move))

	// No book entries loaded, so this is a real (slower) search, not a probe;
	// this just guards that BestMove doesn't hang indefinitely.
	require.Less(t, time.Since(start), 30*time.Second)
}

func TestBestMoveRespectsDeadline(t *testing.T) {
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	zt := board.NewZobristTable(1)
	b := board.NewBoard(zt, pos, turn, noprogress, fullmoves)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	d := newTestDriver()
	res := d.BestMove(ctx, b, driver.Options{DepthLimit: lang.Some(20)})
	require.True(t, b.PushMove(res.Move))
}
