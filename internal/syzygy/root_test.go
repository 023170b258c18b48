package syzygy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/tbprobe/internal/syzygy"
)

// mateInOne returns a KQvK position where Qb7 mates at once: white Kb6,
// Qb2, black Ka8, white to move.
func mateInOne() syzygy.Pos {
	return makePos(true, map[int]byte{
		sq("b6"): 'K', sq("b2"): 'Q',
		sq("a8"): 'k',
	})
}

func TestProbeRootRanksMateFirst(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := mateInOne()
	seedWDL(store, p, syzygy.Win)
	seedChildren(store, p, syzygy.Draw, false)

	best, results, ok := pr.ProbeRoot(&p)
	require.True(t, ok)
	require.Len(t, results, len(p.LegalMoves(bridge)))

	assert.Equal(t, syzygy.Win, best.WDL())
	assert.Equal(t, 1, best.DTZ())
	assert.Equal(t, best, results[0])

	// Everything after the mating moves is a draw in this setup, and the
	// list is ordered best first.
	assert.Equal(t, syzygy.Draw, results[len(results)-1].WDL())
	for i := 1; i < len(results); i++ {
		if results[i].WDL() == syzygy.Win {
			assert.Equal(t, syzygy.Win, results[i-1].WDL())
		}
	}
}

func TestProbeRootCheckmateSentinel(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(false, map[int]byte{
		sq("b6"): 'K', sq("b7"): 'Q',
		sq("a8"): 'k',
	})
	best, results, ok := pr.ProbeRoot(&p)
	require.True(t, ok)
	assert.True(t, best.IsCheckmate())
	assert.Nil(t, results)
}

func TestProbeRootStalemateSentinel(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(false, map[int]byte{
		sq("b6"): 'K', sq("c7"): 'Q',
		sq("a8"): 'k',
	})
	best, results, ok := pr.ProbeRoot(&p)
	require.True(t, ok)
	assert.True(t, best.IsStalemate())
	assert.Nil(t, results)
}

func TestProbeRootFailsOnMissingTables(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := mateInOne()
	best, _, ok := pr.ProbeRoot(&p)
	assert.False(t, ok)
	assert.True(t, best.IsFailed())
}

func TestProbeRootFailsOnPartialTables(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// Root entry present but the children unseeded: the whole call fails
	// rather than returning a half-ranked list.
	p := mateInOne()
	seedWDL(store, p, syzygy.Win)

	best, results, ok := pr.ProbeRoot(&p)
	assert.False(t, ok)
	assert.True(t, best.IsFailed())
	assert.Nil(t, results)
}

func TestProbeRootDTZBareKingsDraw(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{sq("e1"): 'K', sq("e8"): 'k'})
	best, moves, ok := pr.ProbeRootDTZ(&p, false)
	require.True(t, ok)
	assert.Equal(t, syzygy.Draw, best.WDL())
	require.NotEmpty(t, moves)
	for _, rm := range moves {
		assert.Zero(t, rm.Rank)
	}
}

func TestProbeRootDTZMateInOne(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := mateInOne()
	seedChildren(store, p, syzygy.Draw, true)

	best, moves, ok := pr.ProbeRootDTZ(&p, false)
	require.True(t, ok)
	assert.Equal(t, syzygy.Win, best.WDL())
	assert.Equal(t, 1, best.DTZ())
	assert.Equal(t, int32(1000), moves[0].Rank)

	child := p.DoMove(moves[0].Move)
	assert.Empty(t, child.LegalMoves(bridge))
	assert.True(t, child.InCheck(bridge))
}

func TestProbeRootDTZRepetitionDiscountsWins(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := mateInOne()
	seedChildren(store, p, syzygy.Draw, true)

	// With a repetition on the board a win only ranks by its distance:
	// dtz 1 plus a clock of 1 ply.
	_, moves, ok := pr.ProbeRootDTZ(&p, true)
	require.True(t, ok)
	assert.Equal(t, int32(998), moves[0].Rank)
}

func TestProbeRootDTZSlowWinRanksBelowFastWin(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// A win that cannot convert inside the fifty-move budget ranks by
	// distance even without a repetition.
	p := mateInOne()
	p.Rule50 = 98
	seedChildren(store, p, syzygy.Draw, true)

	_, moves, ok := pr.ProbeRootDTZ(&p, false)
	require.True(t, ok)
	// dtz 1 + clock 99 == 100 > 99: not a clean win any more.
	assert.Equal(t, int32(1000-100), moves[0].Rank)
}

// lostKQK returns a position where the side to move is lost: black ke8
// against white Kb1 and Qg5, black to move. The king has exactly three
// squares (d7, f7, f8), none of them zeroing.
func lostKQK() syzygy.Pos {
	return makePos(false, map[int]byte{
		sq("b1"): 'K', sq("g5"): 'Q',
		sq("e8"): 'k',
	})
}

// seedLostChildren records a white win in every child, with a different
// conversion distance per escape square.
func seedLostChildren(t *testing.T, store *syzygy.MemoryStore, p syzygy.Pos) {
	t.Helper()
	childDTZ := map[int]int{sq("d7"): 2, sq("f7"): 4, sq("f8"): 6}
	legal := p.LegalMoves(bridge)
	require.Len(t, legal, len(childDTZ))
	for _, m := range legal {
		child := p.DoMove(m)
		seedWDL(store, child, syzygy.Win)
		seedDTZ(store, child, childDTZ[m.To()])
	}
}

func TestProbeRootDTZFastLossesRankAlike(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// With a fresh clock every loss converts well inside the fifty-move
	// budget, so all of them sit at the floor regardless of distance.
	p := lostKQK()
	seedLostChildren(t, store, p)

	best, moves, ok := pr.ProbeRootDTZ(&p, false)
	require.True(t, ok)
	assert.Equal(t, syzygy.Loss, best.WDL())
	assert.Negative(t, best.DTZ())
	require.Len(t, moves, 3)
	for _, rm := range moves {
		assert.Equal(t, int32(-1000), rm.Rank)
	}
}

func TestProbeRootDTZLossRanksHoldoutFirst(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// With the counter nearly spent the defender ranks by how long each
	// move holds out: the slowest loss first, graded above the floor.
	p := lostKQK()
	p.Rule50 = 96
	seedLostChildren(t, store, p)

	best, moves, ok := pr.ProbeRootDTZ(&p, false)
	require.True(t, ok)
	require.Len(t, moves, 3)
	// Child DTZs 2/4/6 become root distances -3/-5/-7; with cnt50 97 the
	// ranks are -1000+(d+97): longest holdout on top.
	assert.Equal(t, int32(-896), moves[0].Rank)
	assert.Equal(t, int32(-898), moves[1].Rank)
	assert.Equal(t, int32(-900), moves[2].Rank)
	assert.Equal(t, sq("f8"), best.To())
	// -7 plus a counter of 97 overruns the budget: only a blessed loss.
	assert.Equal(t, syzygy.BlessedLoss, best.WDL())
	assert.Equal(t, -7, best.DTZ())
}

func TestProbeRootWDLFoldsWithRule50(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// Ka1/Qe4 vs Kh8 has no terminal children; every child draws except
	// the one after Qe8, where the defender is only saved by the
	// fifty-move rule.
	p := makePos(true, map[int]byte{
		sq("a1"): 'K', sq("e4"): 'Q',
		sq("h8"): 'k',
	})
	seedChildren(store, p, syzygy.Draw, false)
	cursed := p.DoMove(syzygy.EncodeMove(sq("e4"), sq("e8"), syzygy.FlagNone))
	seedWDL(store, cursed, syzygy.BlessedLoss)

	best, moves, ok := pr.ProbeRootWDL(&p, true)
	require.True(t, ok)
	assert.Equal(t, sq("e4"), best.From())
	assert.Equal(t, sq("e8"), best.To())
	assert.Equal(t, syzygy.Draw, best.WDL()) // folded for reporting
	assert.Equal(t, int32(899), moves[0].Rank)
}

func TestProbeRootWDLStrictWithoutRule50(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("a1"): 'K', sq("e4"): 'Q',
		sq("h8"): 'k',
	})
	seedChildren(store, p, syzygy.Draw, false)
	cursed := p.DoMove(syzygy.EncodeMove(sq("e4"), sq("e8"), syzygy.FlagNone))
	seedWDL(store, cursed, syzygy.BlessedLoss)

	best, moves, ok := pr.ProbeRootWDL(&p, false)
	require.True(t, ok)
	assert.Equal(t, sq("e4"), best.From())
	assert.Equal(t, sq("e8"), best.To())
	assert.Equal(t, syzygy.Win, best.WDL())
	assert.Equal(t, int32(1000), moves[0].Rank)
}
