package syzygy

import "sort"

// MaxRootMoves bounds a root move list. Standard chess positions never
// reach it; exceeding it is a caller precondition violation, not a runtime
// error.
const MaxRootMoves = 256

// RootMove pairs a move with its ranking. Higher ranks first.
type RootMove struct {
	Move TableMove
	Rank int32
}

// RootMoves is a ranked root move list, best move first. It is produced by
// one probe call and not retained by the engine.
type RootMoves []RootMove

// ProbeRoot probes every legal root move and returns the best packed
// Result together with one packed Result per move, best first. Positions
// with no legal moves yield the checkmate or stalemate sentinel. A probe
// failure anywhere fails the whole call: partial lists are never returned.
func (pr *Prober) ProbeRoot(p *Pos) (Result, []Result, bool) {
	br := pr.bridge
	if br.PopCount(p.Occ()) > pr.store.Largest() {
		return ResultFailed, nil, false
	}
	legal := p.LegalMoves(br)
	if len(legal) == 0 {
		if p.InCheck(br) {
			return ResultCheckmate, nil, true
		}
		return ResultStalemate, nil, true
	}
	if len(legal) > MaxRootMoves {
		legal = legal[:MaxRootMoves]
	}
	if _, ok := pr.probeWDL(p); !ok {
		return ResultFailed, nil, false
	}

	type entry struct {
		res  Result
		rank int32
	}
	entries := make([]entry, 0, len(legal))
	for _, m := range legal {
		v, dtz, ok := pr.classifyMove(p, m)
		if !ok {
			return ResultFailed, nil, false
		}
		res := NewResult(v, m.From(), m.To(), m.PromoPiece(), m.IsEnPassant(), dtz)
		entries = append(entries, entry{res, rootRank(v, dtz)})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].rank > entries[j].rank })

	results := make([]Result, len(entries))
	for i, e := range entries {
		results[i] = e.res
	}
	return results[0], results, true
}

// classifyMove probes the position after m and reports the outcome from
// the mover's perspective with the move's signed distance-to-zero. DTZ is
// zero when the deeper tables are absent; ranking then degrades to WDL
// order with insertion-order ties.
func (pr *Prober) classifyMove(p *Pos, m TableMove) (WDL, int, bool) {
	br := pr.bridge
	zeroing := p.moveZeroes(m)
	child := p.DoMove(m)

	if len(child.LegalMoves(br)) == 0 {
		// Terminal children need no table: mate wins, stalemate draws.
		if child.InCheck(br) {
			return Win, 1, true
		}
		return Draw, 0, true
	}

	cv, ok := pr.probeWDL(&child)
	if !ok {
		return 0, 0, false
	}
	v := cv.Negate()

	dtz := 0
	if v != Draw {
		if zeroing {
			dtz = 1
			if v < Draw {
				dtz = -1
			}
		} else if d, ok := pr.ProbeDTZ(&child); ok {
			switch {
			case d > 0:
				dtz = -(d + 1)
			case d < 0:
				dtz = -d + 1
			}
		}
	}

	// A nominal win that cannot convert before the fifty-move counter
	// expires is only a cursed win; losses mirror.
	cnt50 := int(p.Rule50) + 1
	if zeroing {
		cnt50 = 0
	}
	if dtz != 0 {
		if v == Win && dtz+cnt50 > 100 {
			v = CursedWin
		} else if v == Loss && -dtz+cnt50 > 100 {
			v = BlessedLoss
		}
	}
	return v, dtz, true
}

// rootRank orders root moves: wins above draws above losses, faster wins
// and longer holdouts first within a class.
func rootRank(v WDL, dtz int) int32 {
	base := (int32(v) - 2) * 4096
	switch {
	case v > Draw:
		return base - clampRank(int32(dtz))
	case v < Draw:
		return base + clampRank(int32(-dtz))
	}
	return base
}

func clampRank(d int32) int32 {
	if d < 0 {
		return 0
	}
	if d > 2047 {
		return 2047
	}
	return d
}

// ProbeRootDTZ selects the single best root move from the DTZ tables and
// returns it as a full packed Result alongside the ranked move list. The
// ranking refuses to bank on wins the opponent can void: when hasRepeated
// is set, or when conversion would not fit inside the fifty-move budget, a
// winning move ranks by how quickly it converts instead of being taken at
// face value.
func (pr *Prober) ProbeRootDTZ(p *Pos, hasRepeated bool) (Result, RootMoves, bool) {
	br := pr.bridge
	if br.PopCount(p.Occ()) > pr.store.Largest() {
		return ResultFailed, nil, false
	}
	legal := p.LegalMoves(br)
	if len(legal) == 0 {
		if p.InCheck(br) {
			return ResultCheckmate, nil, true
		}
		return ResultStalemate, nil, true
	}
	if len(legal) > MaxRootMoves {
		legal = legal[:MaxRootMoves]
	}

	// Two bare kings draw with no lookup at all.
	if br.PopCount(p.Occ()) == 2 {
		moves := make(RootMoves, len(legal))
		for i, m := range legal {
			moves[i] = RootMove{Move: m}
		}
		m := legal[0]
		return NewResult(Draw, m.From(), m.To(), 0, false, 0), moves, true
	}

	type entry struct {
		mv       RootMove
		d, cnt50 int
	}
	entries := make([]entry, 0, len(legal))
	for _, m := range legal {
		d, cnt50, ok := pr.moveDTZ(p, m)
		if !ok {
			return ResultFailed, nil, false
		}
		var r int32
		switch {
		case d > 0:
			if d+cnt50 <= 99 && !hasRepeated {
				r = 1000
			} else {
				r = int32(1000 - (d + cnt50))
			}
		case d < 0:
			if -d*2+cnt50 < 100 {
				r = -1000
			} else {
				r = int32(-1000 + (-d + cnt50))
			}
		}
		entries = append(entries, entry{RootMove{m, r}, d, cnt50})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].mv.Rank > entries[j].mv.Rank })

	moves := make(RootMoves, len(entries))
	for i, e := range entries {
		moves[i] = e.mv
	}
	best := entries[0]
	m := best.mv.Move
	v := dtzWDL(best.d, best.cnt50)
	return NewResult(v, m.From(), m.To(), m.PromoPiece(), m.IsEnPassant(), best.d), moves, true
}

// moveDTZ reports the signed distance-to-zero of m from the mover's
// perspective and the fifty-move counter after the move.
func (pr *Prober) moveDTZ(p *Pos, m TableMove) (d, cnt50 int, ok bool) {
	br := pr.bridge
	zeroing := p.moveZeroes(m)
	cnt50 = int(p.Rule50) + 1
	if zeroing {
		cnt50 = 0
	}
	child := p.DoMove(m)

	if len(child.LegalMoves(br)) == 0 {
		if child.InCheck(br) {
			return 1, cnt50, true
		}
		return 0, cnt50, true
	}
	if zeroing {
		// The move itself resets the counter; the child's WDL decides.
		v, vok := pr.probeWDL(&child)
		if !vok {
			return 0, 0, false
		}
		switch v.Negate() {
		case Win, CursedWin:
			return 1, cnt50, true
		case Loss, BlessedLoss:
			return -1, cnt50, true
		}
		return 0, cnt50, true
	}
	cd, dok := pr.ProbeDTZ(&child)
	if !dok {
		return 0, 0, false
	}
	switch {
	case cd > 0:
		return -(cd + 1), cnt50, true
	case cd < 0:
		return -cd + 1, cnt50, true
	}
	return 0, cnt50, true
}

func dtzWDL(d, cnt50 int) WDL {
	switch {
	case d > 0:
		if d+cnt50 <= 100 {
			return Win
		}
		return CursedWin
	case d < 0:
		if -d+cnt50 <= 100 {
			return Loss
		}
		return BlessedLoss
	}
	return Draw
}

var (
	wdlRank       = [5]int32{-1000, -899, 0, 899, 1000}
	wdlRankStrict = [5]int32{-1000, -1000, 0, 1000, 1000}
)

// ProbeRootWDL ranks root moves on WDL alone, without DTZ refinement.
// With useRule50 the fifty-move qualified outcomes score and report as
// draws; without it they count as decisive.
func (pr *Prober) ProbeRootWDL(p *Pos, useRule50 bool) (Result, RootMoves, bool) {
	br := pr.bridge
	if br.PopCount(p.Occ()) > pr.store.Largest() {
		return ResultFailed, nil, false
	}
	legal := p.LegalMoves(br)
	if len(legal) == 0 {
		if p.InCheck(br) {
			return ResultCheckmate, nil, true
		}
		return ResultStalemate, nil, true
	}
	if len(legal) > MaxRootMoves {
		legal = legal[:MaxRootMoves]
	}

	type entry struct {
		mv     RootMove
		report WDL
	}
	entries := make([]entry, 0, len(legal))
	for _, m := range legal {
		child := p.DoMove(m)
		var v WDL
		if len(child.LegalMoves(br)) == 0 {
			v = Draw
			if child.InCheck(br) {
				v = Win
			}
		} else {
			cv, ok := pr.probeWDL(&child)
			if !ok {
				return ResultFailed, nil, false
			}
			v = cv.Negate()
		}
		r := wdlRank[v]
		report := v.Fold50()
		if !useRule50 {
			r = wdlRankStrict[v]
			report = v.Strict()
		}
		entries = append(entries, entry{RootMove{m, r}, report})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].mv.Rank > entries[j].mv.Rank })

	moves := make(RootMoves, len(entries))
	for i, e := range entries {
		moves[i] = e.mv
	}
	best := entries[0]
	m := best.mv.Move
	return NewResult(best.report, m.From(), m.To(), m.PromoPiece(), m.IsEnPassant(), 0), moves, true
}

// moveZeroes reports whether m resets the fifty-move counter: any capture
// or pawn move.
func (p *Pos) moveZeroes(m TableMove) bool {
	fromBB := uint64(1) << uint(m.From())
	toBB := uint64(1) << uint(m.To())
	return p.Pawns&fromBB != 0 || p.Occ()&toBB != 0
}
