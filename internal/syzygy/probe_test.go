package syzygy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/tbprobe/internal/syzygy"
)

func TestProbeWDLSeeded(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	seedWDL(store, p, syzygy.Win)

	v, ok := pr.ProbeWDL(&p)
	require.True(t, ok)
	assert.Equal(t, syzygy.Win, v)
}

func TestProbeWDLMirroredPosition(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	seedWDL(store, p, syzygy.Win)

	// The colour-swapped, vertically flipped game state reads from the
	// same table entry and keeps the side-to-move perspective.
	m := p.Mirror()
	v, ok := pr.ProbeWDL(&m)
	require.True(t, ok)
	assert.Equal(t, syzygy.Win, v)
}

func TestProbeWDLMissingTable(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	_, ok := pr.ProbeWDL(&p)
	assert.False(t, ok)
}

func TestProbeWDLTooManyPieces(t *testing.T) {
	store := syzygy.NewMemoryStore(3)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q', sq("a1"): 'R',
		sq("a8"): 'k',
	})
	seedWDL(store, p, syzygy.Win)

	_, ok := pr.ProbeWDL(&p)
	assert.False(t, ok)
}

func TestProbeWDLEnPassantUpgrade(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// White to move with exd6 available. The table entry for the raw
	// position says draw, but the en passant capture wins; the fold must
	// pick the capture.
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e5"): 'P',
		sq("a8"): 'k', sq("d5"): 'p',
	})
	p.EP = uint8(sq("d6"))
	seedWDL(store, p, syzygy.Draw)

	epChild := p.DoMove(syzygy.EncodeMove(sq("e5"), sq("d6"), syzygy.FlagEnPassant))
	seedWDL(store, epChild, syzygy.Loss) // loss for the defender

	v, ok := pr.ProbeWDL(&p)
	require.True(t, ok)
	assert.Equal(t, syzygy.Win, v)
}

func TestProbeWDLEnPassantNoUpgrade(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	// When the capture only draws and the raw entry is a win, the entry
	// stands.
	p := makePos(true, map[int]byte{
		sq("h1"): 'K', sq("e5"): 'P',
		sq("a8"): 'k', sq("d5"): 'p',
	})
	p.EP = uint8(sq("d6"))
	seedWDL(store, p, syzygy.Win)

	epChild := p.DoMove(syzygy.EncodeMove(sq("e5"), sq("d6"), syzygy.FlagEnPassant))
	seedWDL(store, epChild, syzygy.Draw)

	v, ok := pr.ProbeWDL(&p)
	require.True(t, ok)
	assert.Equal(t, syzygy.Win, v)
}

func TestProbeDTZSeeded(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	seedDTZ(store, p, 12)

	d, ok := pr.ProbeDTZ(&p)
	require.True(t, ok)
	assert.Equal(t, 12, d)
}

func TestProbeDTZMissingTable(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	seedWDL(store, p, syzygy.Win) // WDL data alone does not answer DTZ

	_, ok := pr.ProbeDTZ(&p)
	assert.False(t, ok)
}

func TestProberTableCounts(t *testing.T) {
	store := syzygy.NewMemoryStore(5)
	pr := syzygy.New(store, bridge)

	p := makePos(true, map[int]byte{
		sq("b6"): 'K', sq("g2"): 'Q',
		sq("a8"): 'k',
	})
	seedWDL(store, p, syzygy.Win)
	seedDTZ(store, p, 4)

	wdl, dtm, dtz := pr.TableCounts()
	assert.Equal(t, 1, wdl)
	assert.Equal(t, 0, dtm)
	assert.Equal(t, 1, dtz)
	assert.Equal(t, 5, pr.MaxPieces())
}
