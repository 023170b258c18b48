package syzygy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/tbprobe/internal/syzygy"
)

func TestDoMoveEnPassant(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e5"): 'P',
		sq("a8"): 'k', sq("d5"): 'p',
	})
	p.EP = uint8(sq("d6"))

	child := p.DoMove(syzygy.EncodeMove(sq("e5"), sq("d6"), syzygy.FlagEnPassant))

	assert.Equal(t, uint64(1)<<uint(sq("d6")), child.Pawns)
	assert.Zero(t, child.Black&(uint64(1)<<uint(sq("d5"))))
	assert.Zero(t, child.EP)
	assert.Zero(t, child.Rule50)
	assert.False(t, child.Turn)
}

func TestDoMovePromotion(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e7"): 'P',
		sq("a8"): 'k',
	})

	child := p.DoMove(syzygy.EncodeMove(sq("e7"), sq("e8"), syzygy.FlagQueenPromo))

	assert.Zero(t, child.Pawns)
	assert.Equal(t, uint64(1)<<uint(sq("e8")), child.Queens)
	assert.NotZero(t, child.White&(uint64(1)<<uint(sq("e8"))))
}

func TestDoMoveDoublePushSetsEP(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e2"): 'P',
		sq("a8"): 'k',
	})

	child := p.DoMove(syzygy.EncodeMove(sq("e2"), sq("e4"), syzygy.FlagNone))
	assert.Equal(t, uint8(sq("e3")), child.EP)

	child = p.DoMove(syzygy.EncodeMove(sq("e2"), sq("e3"), syzygy.FlagNone))
	assert.Zero(t, child.EP)
}

func TestDoMoveCaptureResetsClock(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("a1"): 'R',
		sq("a8"): 'k', sq("a4"): 'q',
	})
	p.Rule50 = 30

	child := p.DoMove(syzygy.EncodeMove(sq("a1"), sq("a4"), syzygy.FlagNone))
	assert.Zero(t, child.Rule50)
	assert.Zero(t, child.Queens)

	child = p.DoMove(syzygy.EncodeMove(sq("h1"), sq("g1"), syzygy.FlagNone))
	assert.Equal(t, uint8(31), child.Rule50)
}

func TestMirror(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	p.EP = uint8(sq("d6"))

	m := p.Mirror()
	assert.False(t, m.Turn)
	assert.Equal(t, uint64(1)<<uint(sq("g7")), m.Queens)
	assert.NotZero(t, m.Black&(uint64(1)<<uint(sq("g7"))))
	assert.NotZero(t, m.White&(uint64(1)<<uint(sq("a1"))))
	assert.Equal(t, uint8(sq("d3")), m.EP)

	assert.Equal(t, p, m.Mirror())
}

func TestLegalMovesCornerKings(t *testing.T) {
	p := makePos(true, map[int]byte{sq("h1"): 'K', sq("a8"): 'k'})
	moves := p.LegalMoves(bridge)
	require.Len(t, moves, 3) // g1, g2, h2
}

func TestLegalMovesFilterChecks(t *testing.T) {
	// Black king on a8 against white Kb6 and Rb1. a7 and b7 are covered by
	// the white king, and the rook's ray up the b file stops at b6, so b8
	// stays reachable: exactly one legal move.
	p := makePos(false, map[int]byte{
		sq("b6"): 'K', sq("b1"): 'R',
		sq("a8"): 'k',
	})
	moves := p.LegalMoves(bridge)
	require.Len(t, moves, 1)
	assert.Equal(t, "a8b8", moves[0].String())
	assert.False(t, p.InCheck(bridge))
}

func TestInCheck(t *testing.T) {
	p := makePos(false, map[int]byte{
		sq("h1"): 'K', sq("a1"): 'Q',
		sq("a8"): 'k',
	})
	assert.True(t, p.InCheck(bridge))

	p2 := makePos(false, map[int]byte{
		sq("h1"): 'K', sq("b1"): 'Q',
		sq("a8"): 'k',
	})
	assert.False(t, p2.InCheck(bridge))
}

func TestLegalMovesGeneratesPromotions(t *testing.T) {
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e7"): 'P',
		sq("a8"): 'k',
	})
	moves := p.LegalMoves(bridge)

	promos := 0
	for _, m := range moves {
		if m.PromoPiece() != 0 {
			promos++
		}
	}
	assert.Equal(t, 4, promos)
}
