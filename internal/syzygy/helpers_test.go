package syzygy_test

import (
	"github.com/hailam/tbprobe/internal/syzygy"
	"github.com/hailam/tbprobe/internal/tablebase"
)

var bridge = tablebase.BoardBridge{}

// sq converts an algebraic square name to its index, a1=0 .. h8=63.
func sq(name string) int {
	return int(name[0]-'a') + 8*int(name[1]-'1')
}

// makePos builds a position from FEN-style piece letters keyed by square:
// uppercase for white, lowercase for black.
func makePos(whiteToMove bool, placement map[int]byte) syzygy.Pos {
	p := syzygy.Pos{Turn: whiteToMove}
	for square, ch := range placement {
		b := uint64(1) << uint(square)
		white := ch >= 'A' && ch <= 'Z'
		if white {
			p.White |= b
			ch += 'a' - 'A'
		} else {
			p.Black |= b
		}
		switch ch {
		case 'k':
			p.Kings |= b
		case 'q':
			p.Queens |= b
		case 'r':
			p.Rooks |= b
		case 'b':
			p.Bishops |= b
		case 'n':
			p.Knights |= b
		case 'p':
			p.Pawns |= b
		}
	}
	return p
}

// seedWDL records the outcome for p the way the prober will look it up:
// canonicalized, en passant and clock cleared.
func seedWDL(store *syzygy.MemoryStore, p syzygy.Pos, v syzygy.WDL) {
	cp, key, _ := syzygy.Canonical(bridge, p)
	cp.EP = 0
	cp.Rule50 = 0
	store.PutWDL(key, &cp, v)
}

func seedDTZ(store *syzygy.MemoryStore, p syzygy.Pos, dtz int) {
	cp, key, _ := syzygy.Canonical(bridge, p)
	cp.EP = 0
	cp.Rule50 = 0
	store.PutDTZ(key, &cp, dtz)
}

// seedChildren seeds every non-terminal child of p with the given WDL
// (from the child's side to move) and, when withDTZ is set, a DTZ of zero.
func seedChildren(store *syzygy.MemoryStore, p syzygy.Pos, v syzygy.WDL, withDTZ bool) {
	for _, m := range p.LegalMoves(bridge) {
		child := p.DoMove(m)
		if len(child.LegalMoves(bridge)) == 0 {
			continue
		}
		seedWDL(store, child, v)
		if withDTZ {
			seedDTZ(store, child, 0)
		}
	}
}
