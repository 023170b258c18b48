// Package board carries the host-side chess position: bitboards, attack
// generation and FEN handling. It is the collaborator the probing engine
// borrows its bit and attack primitives from.
package board

import "fmt"

// Square represents a square on the chess board (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// NewSquare builds a square from file and rank (both 0-7).
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns the file (column) of the square (0-7, where 0=a).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=rank 1).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Flip mirrors the square vertically (A1 <-> A8).
func (sq Square) Flip() Square {
	return sq ^ 56
}

// String returns the algebraic name, e.g. "e4".
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare parses an algebraic square name.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
