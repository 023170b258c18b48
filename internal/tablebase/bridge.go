package tablebase

import (
	"math/bits"

	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/syzygy"
)

// BoardBridge supplies the probing engine's bit and attack primitives from
// the board package, so the prober and the host move generator share one
// set of attack tables.
type BoardBridge struct{}

func (BoardBridge) PopCount(bb uint64) int {
	return bits.OnesCount64(bb)
}

func (BoardBridge) LSB(bb uint64) int {
	return bits.TrailingZeros64(bb)
}

func (BoardBridge) PopLSB(bb *uint64) int {
	sq := bits.TrailingZeros64(*bb)
	*bb &= *bb - 1
	return sq
}

func (BoardBridge) PawnAttacks(sq int, white bool) uint64 {
	c := board.Black
	if white {
		c = board.White
	}
	return uint64(board.PawnAttacks(board.Square(sq), c))
}

func (BoardBridge) KnightAttacks(sq int) uint64 {
	return uint64(board.KnightAttacks(board.Square(sq)))
}

func (BoardBridge) BishopAttacks(sq int, occ uint64) uint64 {
	return uint64(board.BishopAttacks(board.Square(sq), board.Bitboard(occ)))
}

func (BoardBridge) RookAttacks(sq int, occ uint64) uint64 {
	return uint64(board.RookAttacks(board.Square(sq), board.Bitboard(occ)))
}

func (BoardBridge) QueenAttacks(sq int, occ uint64) uint64 {
	return uint64(board.QueenAttacks(board.Square(sq), board.Bitboard(occ)))
}

func (BoardBridge) KingAttacks(sq int) uint64 {
	return uint64(board.KingAttacks(board.Square(sq)))
}

// posToCore converts a host position to the probing engine's raw image.
// Castling rights do not survive the conversion; callers must reject
// positions that still have them before probing.
func posToCore(pos *board.Position) syzygy.Pos {
	p := syzygy.Pos{
		White:   uint64(pos.Occupied[board.White]),
		Black:   uint64(pos.Occupied[board.Black]),
		Kings:   uint64(pos.Pieces[board.White][board.King] | pos.Pieces[board.Black][board.King]),
		Queens:  uint64(pos.Pieces[board.White][board.Queen] | pos.Pieces[board.Black][board.Queen]),
		Rooks:   uint64(pos.Pieces[board.White][board.Rook] | pos.Pieces[board.Black][board.Rook]),
		Bishops: uint64(pos.Pieces[board.White][board.Bishop] | pos.Pieces[board.Black][board.Bishop]),
		Knights: uint64(pos.Pieces[board.White][board.Knight] | pos.Pieces[board.Black][board.Knight]),
		Pawns:   uint64(pos.Pieces[board.White][board.Pawn] | pos.Pieces[board.Black][board.Pawn]),
		Turn:    pos.SideToMove == board.White,
	}
	if pos.EnPassant != board.NoSquare {
		p.EP = uint8(pos.EnPassant)
	}
	clock := pos.HalfMoveClock
	if clock > 255 {
		clock = 255
	}
	p.Rule50 = uint8(clock)
	return p
}

// coreMoveToBoard converts a packed probe move to the host encoding.
func coreMoveToBoard(m syzygy.TableMove) board.Move {
	from := board.Square(m.From())
	to := board.Square(m.To())
	if m.IsEnPassant() {
		return board.NewEnPassant(from, to)
	}
	if pt, ok := promoPieceType(m.PromoPiece()); ok {
		return board.NewPromotion(from, to, pt)
	}
	return board.NewMove(from, to)
}

// resultToBoardMove rebuilds the best move carried inside a packed result.
func resultToBoardMove(r syzygy.Result) board.Move {
	from := board.Square(r.From())
	to := board.Square(r.To())
	if r.EnPassant() {
		return board.NewEnPassant(from, to)
	}
	if pt, ok := promoPieceType(r.Promotes()); ok {
		return board.NewPromotion(from, to, pt)
	}
	return board.NewMove(from, to)
}

func promoPieceType(code int) (board.PieceType, bool) {
	switch code {
	case syzygy.FlagQueenPromo:
		return board.Queen, true
	case syzygy.FlagRookPromo:
		return board.Rook, true
	case syzygy.FlagBishopPromo:
		return board.Bishop, true
	case syzygy.FlagKnightPromo:
		return board.Knight, true
	}
	return 0, false
}
