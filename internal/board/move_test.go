package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveEncoding(t *testing.T) {
	m := NewMove(E2, E4)
	assert.Equal(t, E2, m.From())
	assert.Equal(t, E4, m.To())
	assert.False(t, m.IsPromotion())
	assert.False(t, m.IsEnPassant())
	assert.False(t, m.IsCastling())
	assert.Equal(t, NoPieceType, m.Promotion())
}

func TestPromotionEncoding(t *testing.T) {
	for _, pt := range []PieceType{Knight, Bishop, Rook, Queen} {
		m := NewPromotion(E7, E8, pt)
		assert.True(t, m.IsPromotion())
		assert.Equal(t, pt, m.Promotion())
		assert.Equal(t, E7, m.From())
		assert.Equal(t, E8, m.To())
	}
}

func TestSpecialMoveFlags(t *testing.T) {
	ep := NewEnPassant(E5, D6)
	assert.True(t, ep.IsEnPassant())
	assert.False(t, ep.IsPromotion())

	castle := NewCastling(E1, G1)
	assert.True(t, castle.IsCastling())
	assert.False(t, castle.IsEnPassant())
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(E2, E4).String())
	assert.Equal(t, "e7e8q", NewPromotion(E7, E8, Queen).String())
	assert.Equal(t, "a7a8n", NewPromotion(A7, A8, Knight).String())
	assert.Equal(t, "0000", NoMove.String())
}

func TestParseMove(t *testing.T) {
	pos := NewPosition()

	m, err := pos.ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, NewMove(E2, E4), m)

	m, err = pos.ParseMove("e7e8q")
	require.NoError(t, err)
	assert.Equal(t, NewPromotion(E7, E8, Queen), m)

	_, err = pos.ParseMove("e2")
	assert.Error(t, err)
	_, err = pos.ParseMove("e2e9")
	assert.Error(t, err)
	_, err = pos.ParseMove("e7e8x")
	assert.Error(t, err)
}

func TestParseMoveEnPassant(t *testing.T) {
	pos, err := ParseFEN("k7/8/1K6/3pP3/8/8/8/8 w - d6 0 1")
	require.NoError(t, err)

	m, err := pos.ParseMove("e5d6")
	require.NoError(t, err)
	assert.True(t, m.IsEnPassant())
}

func TestParseMoveCastling(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	m, err := pos.ParseMove("e1g1")
	require.NoError(t, err)
	assert.True(t, m.IsCastling())
}
