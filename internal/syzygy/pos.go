package syzygy

import "math/bits"

// Internal piece kinds. Queen through knight reuse the promotion flag codes
// so the move generator can emit promotion flags directly.
const (
	pQueen  = FlagQueenPromo
	pRook   = FlagRookPromo
	pBishop = FlagBishopPromo
	pKnight = FlagKnightPromo
	pPawn   = 5
	pKing   = 6
)

// Pos is the raw position image the probe engines operate on: one bitboard
// per colour and per piece type, plus side to move, en passant target and
// the halfmove clock. Castling rights are absent because no tablebase
// position can have them.
type Pos struct {
	White, Black uint64
	Kings        uint64
	Queens       uint64
	Rooks        uint64
	Bishops      uint64
	Knights      uint64
	Pawns        uint64
	Rule50       uint8
	EP           uint8 // en passant target square, 0 = none
	Turn         bool  // true when white is to move
}

// Occ returns the combined occupancy.
func (p *Pos) Occ() uint64 {
	return p.White | p.Black
}

func (p *Pos) typeAt(sq int) int {
	b := uint64(1) << uint(sq)
	switch {
	case p.Pawns&b != 0:
		return pPawn
	case p.Knights&b != 0:
		return pKnight
	case p.Bishops&b != 0:
		return pBishop
	case p.Rooks&b != 0:
		return pRook
	case p.Queens&b != 0:
		return pQueen
	case p.Kings&b != 0:
		return pKing
	}
	return 0
}

func (p *Pos) bb(kind int) *uint64 {
	switch kind {
	case pPawn:
		return &p.Pawns
	case pKnight:
		return &p.Knights
	case pBishop:
		return &p.Bishops
	case pRook:
		return &p.Rooks
	case pQueen:
		return &p.Queens
	}
	return &p.Kings
}

// DoMove applies m to a copy of the position and returns the child.
// Legality is the caller's concern.
func (p Pos) DoMove(m TableMove) Pos {
	from, to := m.From(), m.To()
	fromBB := uint64(1) << uint(from)
	toBB := uint64(1) << uint(to)

	us, them := &p.White, &p.Black
	if !p.Turn {
		us, them = them, us
	}

	moving := p.typeAt(from)
	zeroing := moving == pPawn

	if m.IsEnPassant() {
		capSq := to - 8
		if !p.Turn {
			capSq = to + 8
		}
		capBB := uint64(1) << uint(capSq)
		p.Pawns &^= capBB
		*them &^= capBB
	} else if p.Occ()&toBB != 0 {
		*p.bb(p.typeAt(to)) &^= toBB
		*them &^= toBB
		zeroing = true
	}

	*p.bb(moving) &^= fromBB
	*us &^= fromBB
	*us |= toBB
	if promo := m.PromoPiece(); promo != 0 && moving == pPawn {
		*p.bb(promo) |= toBB
	} else {
		*p.bb(moving) |= toBB
	}

	p.EP = 0
	if moving == pPawn && (to-from == 16 || from-to == 16) {
		p.EP = uint8((from + to) / 2)
	}
	if zeroing {
		p.Rule50 = 0
	} else {
		p.Rule50++
	}
	p.Turn = !p.Turn
	return p
}

// Mirror swaps the colours and flips the board vertically: the same game
// state seen from the other side, with the other side to move.
func (p Pos) Mirror() Pos {
	w, b := p.White, p.Black
	p.White = bits.ReverseBytes64(b)
	p.Black = bits.ReverseBytes64(w)
	p.Kings = bits.ReverseBytes64(p.Kings)
	p.Queens = bits.ReverseBytes64(p.Queens)
	p.Rooks = bits.ReverseBytes64(p.Rooks)
	p.Bishops = bits.ReverseBytes64(p.Bishops)
	p.Knights = bits.ReverseBytes64(p.Knights)
	p.Pawns = bits.ReverseBytes64(p.Pawns)
	if p.EP != 0 {
		p.EP ^= 56
	}
	p.Turn = !p.Turn
	return p
}

// attacked reports whether sq is attacked by the given colour.
func (p *Pos) attacked(br Bridge, sq int, byWhite bool) bool {
	side := p.Black
	if byWhite {
		side = p.White
	}
	occ := p.Occ()
	if br.KnightAttacks(sq)&p.Knights&side != 0 {
		return true
	}
	if br.KingAttacks(sq)&p.Kings&side != 0 {
		return true
	}
	if br.BishopAttacks(sq, occ)&(p.Bishops|p.Queens)&side != 0 {
		return true
	}
	if br.RookAttacks(sq, occ)&(p.Rooks|p.Queens)&side != 0 {
		return true
	}
	// A pawn of the attacking colour attacks sq iff a defending pawn on sq
	// would attack it back.
	return br.PawnAttacks(sq, !byWhite)&p.Pawns&side != 0
}

// InCheck reports whether the side to move's king is attacked.
func (p *Pos) InCheck(br Bridge) bool {
	us := p.Black
	if p.Turn {
		us = p.White
	}
	return p.attacked(br, br.LSB(p.Kings&us), !p.Turn)
}

// LegalMoves enumerates the legal moves for the side to move. Castling is
// never generated: tablebase positions cannot castle.
func (p *Pos) LegalMoves(br Bridge) []TableMove {
	pseudo := p.pseudoMoves(br, make([]TableMove, 0, 64))
	legal := pseudo[:0]
	for _, m := range pseudo {
		child := p.DoMove(m)
		usK := child.Black
		if p.Turn {
			usK = child.White
		}
		if !child.attacked(br, br.LSB(child.Kings&usK), !p.Turn) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p *Pos) pseudoMoves(br Bridge, moves []TableMove) []TableMove {
	us, them := p.White, p.Black
	if !p.Turn {
		us, them = them, us
	}
	occ := p.Occ()

	appendTargets := func(from int, targets uint64) {
		for targets != 0 {
			moves = append(moves, EncodeMove(from, br.PopLSB(&targets), FlagNone))
		}
	}

	for bb := p.Kings & us; bb != 0; {
		sq := br.PopLSB(&bb)
		appendTargets(sq, br.KingAttacks(sq)&^us)
	}
	for bb := p.Queens & us; bb != 0; {
		sq := br.PopLSB(&bb)
		appendTargets(sq, br.QueenAttacks(sq, occ)&^us)
	}
	for bb := p.Rooks & us; bb != 0; {
		sq := br.PopLSB(&bb)
		appendTargets(sq, br.RookAttacks(sq, occ)&^us)
	}
	for bb := p.Bishops & us; bb != 0; {
		sq := br.PopLSB(&bb)
		appendTargets(sq, br.BishopAttacks(sq, occ)&^us)
	}
	for bb := p.Knights & us; bb != 0; {
		sq := br.PopLSB(&bb)
		appendTargets(sq, br.KnightAttacks(sq)&^us)
	}

	for bb := p.Pawns & us; bb != 0; {
		sq := br.PopLSB(&bb)
		for t := br.PawnAttacks(sq, p.Turn) & them; t != 0; {
			moves = appendPawnMove(moves, sq, br.PopLSB(&t), p.Turn)
		}
		if p.EP != 0 && br.PawnAttacks(sq, p.Turn)&(uint64(1)<<p.EP) != 0 {
			moves = append(moves, EncodeMove(sq, int(p.EP), FlagEnPassant))
		}
		to := sq + 8
		start := sq >= 8 && sq < 16
		if !p.Turn {
			to = sq - 8
			start = sq >= 48 && sq < 56
		}
		if occ&(uint64(1)<<uint(to)) == 0 {
			moves = appendPawnMove(moves, sq, to, p.Turn)
			if start {
				to2 := to + 8
				if !p.Turn {
					to2 = to - 8
				}
				if occ&(uint64(1)<<uint(to2)) == 0 {
					moves = append(moves, EncodeMove(sq, to2, FlagNone))
				}
			}
		}
	}
	return moves
}

func appendPawnMove(moves []TableMove, from, to int, white bool) []TableMove {
	promo := to >= 56
	if !white {
		promo = to < 8
	}
	if promo {
		return append(moves,
			EncodeMove(from, to, FlagQueenPromo),
			EncodeMove(from, to, FlagRookPromo),
			EncodeMove(from, to, FlagBishopPromo),
			EncodeMove(from, to, FlagKnightPromo))
	}
	return append(moves, EncodeMove(from, to, FlagNone))
}
