package syzygy

// Bridge is the set of primitives the probing engine borrows from the host
// engine. Attack sets are pure functions of square and occupancy; PopLSB is
// the only one that mutates anything, and only the bitboard it is handed.
// Keeping these on the host side means the prober and the host move
// generator can never disagree about attack tables.
type Bridge interface {
	// PopCount returns the number of set bits.
	PopCount(bb uint64) int
	// LSB returns the index of the least significant set bit.
	// Calling it on an empty bitboard is a caller contract violation.
	LSB(bb uint64) int
	// PopLSB clears the least significant set bit and returns its index.
	PopLSB(bb *uint64) int

	// PawnAttacks returns the capture set of a pawn of the given colour.
	PawnAttacks(sq int, white bool) uint64
	// KnightAttacks returns the knight attack set.
	KnightAttacks(sq int) uint64
	// BishopAttacks returns the bishop attack set given blocking occupancy.
	BishopAttacks(sq int, occ uint64) uint64
	// RookAttacks returns the rook attack set given blocking occupancy.
	RookAttacks(sq int, occ uint64) uint64
	// QueenAttacks returns the combined bishop and rook attack set.
	QueenAttacks(sq int, occ uint64) uint64
	// KingAttacks returns the king attack set.
	KingAttacks(sq int) uint64
}
