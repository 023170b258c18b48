package board

// Pre-computed attack tables for the leaper pieces. Sliding attacks are
// generated by ray scans; the probing workload touches so few squares per
// call that magic lookup tables buy nothing here.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		knightAttacks[sq] = (bb<<17)&NotFileA | (bb<<15)&NotFileH |
			(bb>>17)&NotFileH | (bb>>15)&NotFileA |
			(bb<<10)&NotFileAB | (bb<<6)&NotFileGH |
			(bb>>10)&NotFileGH | (bb>>6)&NotFileAB

		kingAttacks[sq] = bb.North() | bb.South() | bb.East() | bb.West() |
			bb.NorthEast() | bb.NorthWest() | bb.SouthEast() | bb.SouthWest()

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

var (
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

func slidingAttacks(sq Square, occupied Bitboard, dirs [4][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			s := NewSquare(f, r)
			attacks |= SquareBB(s)
			if occupied.IsSet(s) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn capture bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard given blocking occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, bishopDirs)
}

// RookAttacks returns the rook attack bitboard given blocking occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, rookDirs)
}

// QueenAttacks returns the combined bishop and rook attacks.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}
