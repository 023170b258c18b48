// Package syzygy implements the endgame tablebase probing engine: the packed
// move and result encodings, the WDL classifier and the root move probes.
// Attack generation and bit primitives are supplied by the host through the
// Bridge interface, and the precomputed table data through the Store
// interface, so the engine itself carries no chess move generator and no
// file-format knowledge.
package syzygy

// TableMove encodes a move in 16 bits:
// bits 0-5:   destination square (0-63)
// bits 6-11:  origin square (0-63)
// bits 12-15: flag (promotion piece or en passant)
type TableMove uint16

// Move flags. Promotion flags double as the piece codes stored in the
// Result promotion field. A move carries at most one flag.
const (
	FlagNone        = 0x0
	FlagQueenPromo  = 0x1
	FlagRookPromo   = 0x2
	FlagBishopPromo = 0x3
	FlagKnightPromo = 0x4
	FlagEnPassant   = 0x8
)

const (
	moveShiftTo    = 0
	moveShiftFrom  = 6
	moveShiftFlags = 12

	moveMaskTo    = 0x3F
	moveMaskFrom  = 0x3F
	moveMaskFlags = 0xF
	moveMaskPromo = 0x7
)

// EncodeMove packs an origin square, destination square and flag.
// Out-of-range squares are a caller contract violation; this sits on the
// hot path of every probe and validates nothing.
func EncodeMove(from, to, flags int) TableMove {
	return TableMove(flags<<moveShiftFlags | from<<moveShiftFrom | to<<moveShiftTo)
}

// DecodeMove unpacks a move into its origin, destination and flag.
func DecodeMove(m TableMove) (from, to, flags int) {
	return m.From(), m.To(), m.Flags()
}

// To returns the destination square.
func (m TableMove) To() int {
	return int(m>>moveShiftTo) & moveMaskTo
}

// From returns the origin square.
func (m TableMove) From() int {
	return int(m>>moveShiftFrom) & moveMaskFrom
}

// Flags returns the raw flag field.
func (m TableMove) Flags() int {
	return int(m>>moveShiftFlags) & moveMaskFlags
}

// PromoPiece returns the promotion piece code (FlagQueenPromo..FlagKnightPromo),
// or 0 for non-promotions. The en passant flag maps to 0.
func (m TableMove) PromoPiece() int {
	return m.Flags() & moveMaskPromo
}

// IsQueenPromo reports whether the move promotes to a queen.
func (m TableMove) IsQueenPromo() bool { return m.Flags() == FlagQueenPromo }

// IsRookPromo reports whether the move promotes to a rook.
func (m TableMove) IsRookPromo() bool { return m.Flags() == FlagRookPromo }

// IsBishopPromo reports whether the move promotes to a bishop.
func (m TableMove) IsBishopPromo() bool { return m.Flags() == FlagBishopPromo }

// IsKnightPromo reports whether the move promotes to a knight.
func (m TableMove) IsKnightPromo() bool { return m.Flags() == FlagKnightPromo }

// IsEnPassant reports whether the move is an en passant capture.
func (m TableMove) IsEnPassant() bool { return m.Flags() == FlagEnPassant }

// String returns the move in UCI form, e.g. "e2e4" or "e7e8q".
func (m TableMove) String() string {
	s := squareName(m.From()) + squareName(m.To())
	switch m.Flags() {
	case FlagQueenPromo:
		s += "q"
	case FlagRookPromo:
		s += "r"
	case FlagBishopPromo:
		s += "b"
	case FlagKnightPromo:
		s += "n"
	}
	return s
}

func squareName(sq int) string {
	return string([]byte{byte('a' + sq%8), byte('1' + sq/8)})
}
