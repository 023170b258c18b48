package board

import "fmt"

// Move is a compact 16-bit move encoding:
//
//	bits 0-5:   from square
//	bits 6-11:  to square
//	bits 12-13: promotion piece (0=knight, 1=bishop, 2=rook, 3=queen)
//	bits 14-15: move flags (0=normal, 1=promotion, 2=en passant, 3=castling)
type Move uint16

const (
	MoveFlagNormal Move = iota << 14
	MoveFlagPromotion
	MoveFlagEnPassant
	MoveFlagCastling
)

// NoMove is the zero value, which is not a legal move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. The promotion piece must be one
// of Knight, Bishop, Rook or Queen.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo-Knight)<<12 | MoveFlagPromotion
}

// NewEnPassant creates an en passant capture.
func NewEnPassant(from, to Square) Move {
	return NewMove(from, to) | MoveFlagEnPassant
}

// NewCastling creates a castling move, encoded king-from to king-to.
func NewCastling(from, to Square) Move {
	return NewMove(from, to) | MoveFlagCastling
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType for
// non-promotions.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return Knight + PieceType((m>>12)&0x3)
}

// IsPromotion reports whether the move is a promotion.
func (m Move) IsPromotion() bool {
	return m&(3<<14) == MoveFlagPromotion
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&(3<<14) == MoveFlagEnPassant
}

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool {
	return m&(3<<14) == MoveFlagCastling
}

// String returns the move in UCI long algebraic notation, e.g. "e2e4" or
// "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses a UCI move string against the position's legal piece
// placement, resolving promotion, en passant and castling flags.
func (p *Position) ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move: %q", s)
	}
	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion in move: %q", s)
		}
		return NewPromotion(from, to, promo), nil
	}
	pc := p.PieceAt(from)
	if pc != NoPiece {
		if pc.Type() == Pawn && to == p.EnPassant && p.EnPassant != NoSquare {
			return NewEnPassant(from, to), nil
		}
		if pc.Type() == King && (int(to)-int(from) == 2 || int(from)-int(to) == 2) {
			return NewCastling(from, to), nil
		}
	}
	return NewMove(from, to), nil
}
