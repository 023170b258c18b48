package tablebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/syzygy"
)

func TestNoopProber(t *testing.T) {
	var p NoopProber
	pos := board.NewPosition()

	assert.False(t, p.Probe(pos).Found)
	assert.False(t, p.ProbeRoot(pos).Found)
	assert.Equal(t, 0, p.MaxPieces())
	assert.False(t, p.Available())
}

func TestWDLToScoreOrdering(t *testing.T) {
	win := WDLToScore(WDLWin, 4)
	cursed := WDLToScore(WDLCursedWin, 4)
	draw := WDLToScore(WDLDraw, 4)
	blessed := WDLToScore(WDLBlessedLoss, 4)
	loss := WDLToScore(WDLLoss, 4)

	assert.Greater(t, win, cursed)
	assert.Greater(t, cursed, draw)
	assert.Greater(t, draw, blessed)
	assert.Greater(t, blessed, loss)

	// Closer wins score higher.
	assert.Greater(t, WDLToScore(WDLWin, 2), WDLToScore(WDLWin, 10))
}

func TestCountPieces(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, 32, CountPieces(pos))

	kqk, err := board.ParseFEN("8/8/1K6/8/8/8/6Q1/k7 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 3, CountPieces(kqk))
}

func TestFromCore(t *testing.T) {
	assert.Equal(t, WDLLoss, fromCore(syzygy.Loss))
	assert.Equal(t, WDLBlessedLoss, fromCore(syzygy.BlessedLoss))
	assert.Equal(t, WDLDraw, fromCore(syzygy.Draw))
	assert.Equal(t, WDLCursedWin, fromCore(syzygy.CursedWin))
	assert.Equal(t, WDLWin, fromCore(syzygy.Win))
}
