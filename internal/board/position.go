package board

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Castling rights flags.
const (
	CastleWhiteKingside uint8 = 1 << iota
	CastleWhiteQueenside
	CastleBlackKingside
	CastleBlackQueenside
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position holds a full chess position as piece bitboards plus game state.
type Position struct {
	Pieces         [2][6]Bitboard // [Color][PieceType]
	Occupied       [2]Bitboard    // per-color occupancy
	AllOccupied    Bitboard
	SideToMove     Color
	CastlingRights uint8
	EnPassant      Square // NoSquare when unavailable
	HalfMoveClock  int
	FullMoveNumber int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, _ := ParseFEN(StartFEN)
	return p
}

// ParseFEN parses a FEN string into a Position.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d", len(fields))
	}

	p := &Position{EnPassant: NoSquare, FullMoveNumber: 1}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("fen: expected 8 ranks, got %d", len(ranks))
	}
	for rankIdx, rankStr := range ranks {
		rank := 7 - rankIdx
		file := 0
		for i := 0; i < len(rankStr); i++ {
			ch := rankStr[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := PieceFromChar(ch)
			if pc == NoPiece || file > 7 {
				return nil, fmt.Errorf("fen: invalid placement %q", rankStr)
			}
			sq := NewSquare(file, rank)
			p.Pieces[pc.Color()][pc.Type()] = p.Pieces[pc.Color()][pc.Type()].Set(sq)
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("fen: rank %q does not span 8 files", rankStr)
		}
	}
	p.recomputeOccupancy()

	switch fields[1] {
	case "w":
		p.SideToMove = White
	case "b":
		p.SideToMove = Black
	default:
		return nil, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.CastlingRights |= CastleWhiteKingside
			case 'Q':
				p.CastlingRights |= CastleWhiteQueenside
			case 'k':
				p.CastlingRights |= CastleBlackKingside
			case 'q':
				p.CastlingRights |= CastleBlackQueenside
			default:
				return nil, fmt.Errorf("fen: invalid castling rights %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("fen: invalid en passant square %q", fields[3])
		}
		p.EnPassant = sq
	}

	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("fen: invalid halfmove clock %q", fields[4])
		}
		p.HalfMoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fen: invalid fullmove number %q", fields[5])
		}
		p.FullMoveNumber = n
	}
	return p, nil
}

func (p *Position) recomputeOccupancy() {
	p.Occupied[White] = 0
	p.Occupied[Black] = 0
	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}
	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// PieceAt returns the piece on the given square, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if (p.AllOccupied & bb).Empty() {
		return NoPiece
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// ToFEN serializes the position to a FEN string.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.PieceAt(NewSquare(file, rank))
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.SideToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	if p.CastlingRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastlingRights&CastleWhiteKingside != 0 {
			sb.WriteByte('K')
		}
		if p.CastlingRights&CastleWhiteQueenside != 0 {
			sb.WriteByte('Q')
		}
		if p.CastlingRights&CastleBlackKingside != 0 {
			sb.WriteByte('k')
		}
		if p.CastlingRights&CastleBlackQueenside != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EnPassant.String())
	}

	sb.WriteString(" " + strconv.Itoa(p.HalfMoveClock))
	sb.WriteString(" " + strconv.Itoa(p.FullMoveNumber))
	return sb.String()
}

// Key returns a hash of the position suitable for cache keys. It covers
// piece placement, side to move, castling rights and en passant square,
// but not the move counters.
func (p *Position) Key() uint64 {
	var buf [99]byte
	i := 0
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			binary.LittleEndian.PutUint64(buf[i:], uint64(p.Pieces[c][pt]))
			i += 8
		}
	}
	buf[i] = byte(p.SideToMove)
	buf[i+1] = p.CastlingRights
	buf[i+2] = byte(p.EnPassant)
	return xxhash.Sum64(buf[:])
}

// CountPieces returns the total number of pieces on the board.
func (p *Position) CountPieces() int {
	return p.AllOccupied.PopCount()
}

// KingSquare returns the king square of the given color.
func (p *Position) KingSquare(c Color) Square {
	return p.Pieces[c][King].LSB()
}
