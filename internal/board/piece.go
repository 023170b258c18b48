package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	return "pnbrqk "[pt]
}

// Piece combines PieceType and Color, encoded as pieceType + color*6.
type Piece uint8

const NoPiece Piece = 12

// NewPiece builds a piece from its type and color.
func NewPiece(pt PieceType, c Color) Piece {
	return Piece(pt) + Piece(c)*6
}

// Type returns the piece type.
func (p Piece) Type() PieceType {
	return PieceType(p % 6)
}

// Color returns the piece color.
func (p Piece) Color() Color {
	return Color(p / 6)
}

// Char returns the FEN character: uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	if p == NoPiece {
		return ' '
	}
	ch := p.Type().Char()
	if p.Color() == White {
		return ch - 'a' + 'A'
	}
	return ch
}

// PieceFromChar parses a FEN piece character, returning NoPiece for
// anything unrecognized.
func PieceFromChar(ch byte) Piece {
	c := White
	if ch >= 'a' {
		c = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return NewPiece(Pawn, c)
	case 'N':
		return NewPiece(Knight, c)
	case 'B':
		return NewPiece(Bishop, c)
	case 'R':
		return NewPiece(Rook, c)
	case 'Q':
		return NewPiece(Queen, c)
	case 'K':
		return NewPiece(King, c)
	}
	return NoPiece
}
