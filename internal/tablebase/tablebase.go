// Package tablebase exposes endgame tablebase probing to the rest of the
// engine. The packed probing machinery lives in internal/syzygy; this
// package adapts it to board.Position, adds caching and the remote data
// source, and keeps the search-facing Prober interface small.
package tablebase

import (
	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/syzygy"
)

// WDL represents a Win/Draw/Loss result from the side to move's
// perspective.
type WDL int

const (
	WDLLoss        WDL = -2
	WDLBlessedLoss WDL = -1 // loss saved by the 50-move rule
	WDLDraw        WDL = 0
	WDLCursedWin   WDL = 1 // win spoiled by the 50-move rule
	WDLWin         WDL = 2
)

// String returns a short name for the result.
func (w WDL) String() string {
	switch w {
	case WDLLoss:
		return "loss"
	case WDLBlessedLoss:
		return "blessed-loss"
	case WDLDraw:
		return "draw"
	case WDLCursedWin:
		return "cursed-win"
	case WDLWin:
		return "win"
	}
	return "unknown"
}

// fromCore maps the probing engine's 0..4 scale onto the search's -2..2.
func fromCore(w syzygy.WDL) WDL {
	return WDL(int(w) - 2)
}

// ProbeResult contains the result of a tablebase probe.
type ProbeResult struct {
	Found bool
	WDL   WDL
	DTZ   int // distance to the next zeroing move (pawn move or capture)
}

// RootResult contains the best move from the tablebase at the root.
type RootResult struct {
	Found bool
	Move  board.Move
	WDL   WDL
	DTZ   int
}

// RankedMove is one root move with its tablebase rank. Higher is better;
// the rank scale follows the DTZ ranking convention: 1000 for a clean win,
// negative for losses, 0 for draws.
type RankedMove struct {
	Move board.Move
	Rank int32
	WDL  WDL
	DTZ  int
}

// Prober is the interface for tablebase probing.
type Prober interface {
	// Probe looks up a position in the tablebase.
	Probe(pos *board.Position) ProbeResult

	// ProbeRoot finds the best move at the root position. More expensive:
	// it evaluates every legal move.
	ProbeRoot(pos *board.Position) RootResult

	// MaxPieces returns the maximum number of pieces supported.
	MaxPieces() int

	// Available returns true if tablebases are loaded and reachable.
	Available() bool
}

// WDLToScore converts a WDL result to a search score.
// Positive = winning, negative = losing.
func WDLToScore(wdl WDL, ply int) int {
	const tbWinScore = 30000

	switch wdl {
	case WDLWin:
		return tbWinScore - ply
	case WDLCursedWin:
		return tbWinScore - 100 - ply
	case WDLDraw:
		return 0
	case WDLBlessedLoss:
		return -tbWinScore + 100 + ply
	case WDLLoss:
		return -tbWinScore + ply
	default:
		return 0
	}
}

// NoopProber is a prober that always returns "not found".
// Use this as a placeholder when tablebases are not available.
type NoopProber struct{}

func (NoopProber) Probe(pos *board.Position) ProbeResult {
	return ProbeResult{Found: false}
}

func (NoopProber) ProbeRoot(pos *board.Position) RootResult {
	return RootResult{Found: false}
}

func (NoopProber) MaxPieces() int {
	return 0
}

func (NoopProber) Available() bool {
	return false
}

// CountPieces returns the total number of pieces on the board.
func CountPieces(pos *board.Position) int {
	return pos.AllOccupied.PopCount()
}
