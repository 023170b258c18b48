package board

import (
	"fmt"
	"math/bits"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type Bitboard uint64

// File masks.
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = 0x8080808080808080

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileA<<1)
	NotFileGH Bitboard = ^(FileH | FileH>>1)
)

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets the bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears the bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet reports whether the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square.
func (b Bitboard) LSB() Square {
	if b.Empty() {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Empty reports whether no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// Single-step shifts used by the attack table initializers.

func (b Bitboard) North() Bitboard { return b << 8 }
func (b Bitboard) South() Bitboard { return b >> 8 }
func (b Bitboard) East() Bitboard  { return (b << 1) & NotFileA }
func (b Bitboard) West() Bitboard  { return (b >> 1) & NotFileH }

func (b Bitboard) NorthEast() Bitboard { return (b << 9) & NotFileA }
func (b Bitboard) NorthWest() Bitboard { return (b << 7) & NotFileH }
func (b Bitboard) SouthEast() Bitboard { return (b >> 7) & NotFileA }
func (b Bitboard) SouthWest() Bitboard { return (b >> 9) & NotFileH }

// String returns a visual representation of the bitboard.
func (b Bitboard) String() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d ", rank+1)
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				s += "1 "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	return s + "  a b c d e f g h\n"
}
