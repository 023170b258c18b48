package syzygy

// Prober evaluates positions against loaded tablebase data. It holds no
// mutable state after construction and is safe for any number of
// concurrent probes; callers must not tear down the backing Store while a
// probe is in flight.
type Prober struct {
	store  Store
	bridge Bridge
}

// New returns a probing engine over the given table data and host bridge.
func New(store Store, bridge Bridge) *Prober {
	return &Prober{store: store, bridge: bridge}
}

// MaxPieces returns the published largest supported piece count.
func (pr *Prober) MaxPieces() int {
	return pr.store.Largest()
}

// TableCounts reports the available WDL, DTM and DTZ table counts.
func (pr *Prober) TableCounts() (wdl, dtm, dtz int) {
	return pr.store.TableCounts()
}

// ProbeWDL classifies the position from the side to move's perspective.
// ok is false when the position holds more pieces than the loaded tables
// support or the table for its material signature is absent; the caller
// falls back to its own search in that case. The position must already be
// legal; chess legality is not re-validated here.
func (pr *Prober) ProbeWDL(p *Pos) (WDL, bool) {
	if pr.bridge.PopCount(p.Occ()) > pr.store.Largest() {
		return 0, false
	}
	return pr.probeWDL(p)
}

func (pr *Prober) probeWDL(p *Pos) (WDL, bool) {
	if p.EP == 0 {
		return pr.probeTable(p)
	}

	// The table index cannot encode the en passant square, so en passant
	// captures are probed as child positions and folded in by hand.
	best := Loss
	haveEP := false
	haveOther := false
	for _, m := range p.LegalMoves(pr.bridge) {
		if !m.IsEnPassant() {
			haveOther = true
			continue
		}
		child := p.DoMove(m)
		v, ok := pr.probeTable(&child)
		if !ok {
			return 0, false
		}
		if v = v.Negate(); !haveEP || v > best {
			best = v
		}
		haveEP = true
	}

	v, ok := pr.probeTable(p)
	if !ok {
		return 0, false
	}
	if haveEP {
		if best > v {
			v = best
		}
		if !haveOther {
			// Every legal move is an en passant capture; the plain table
			// entry describes a position that cannot actually arise.
			v = best
		}
	}
	return v, true
}

// ProbeDTZ returns the signed distance-to-zero for the position. The root
// probes use child WDL values to cover the en passant corner, so this is a
// straight canonical lookup.
func (pr *Prober) ProbeDTZ(p *Pos) (int, bool) {
	if pr.bridge.PopCount(p.Occ()) > pr.store.Largest() {
		return 0, false
	}
	cp, key, _ := Canonical(pr.bridge, *p)
	cp.EP = 0
	cp.Rule50 = 0
	if !pr.store.HasDTZ(key) {
		return 0, false
	}
	return pr.store.ProbeDTZ(key, &cp)
}

func (pr *Prober) probeTable(p *Pos) (WDL, bool) {
	cp, key, _ := Canonical(pr.bridge, *p)
	cp.EP = 0
	cp.Rule50 = 0
	if !pr.store.HasWDL(key) {
		return 0, false
	}
	return pr.store.ProbeWDL(key, &cp)
}
