package syzygy

// Store supplies the precomputed table data. The loading, decompression and
// on-disk format live behind this boundary; the probe engines only ever see
// resident, immutable data. Implementations must be safe for concurrent
// reads, and positions handed to the Probe methods are always canonical
// (see Canonical) with the en passant square cleared.
type Store interface {
	// Largest is the published upper bound on supported piece count.
	Largest() int
	// TableCounts reports how many WDL, DTM and DTZ tables are available,
	// for host diagnostics.
	TableCounts() (wdl, dtm, dtz int)
	// HasWDL reports whether WDL data exists for the signature.
	HasWDL(m Material) bool
	// HasDTZ reports whether DTZ data exists for the signature.
	HasDTZ(m Material) bool
	// ProbeWDL returns the stored outcome from the side to move's
	// perspective.
	ProbeWDL(m Material, p *Pos) (WDL, bool)
	// ProbeDTZ returns the signed distance in plies to the next zeroing
	// move: positive when the side to move wins, negative when it loses,
	// zero for draws.
	ProbeDTZ(m Material, p *Pos) (int, bool)
}

// MemoryStore is a map-backed Store, addressed by material key and the
// PosIndex of the canonical position. It backs tests and seeded micro
// tables; real table data arrives through other Store implementations.
type MemoryStore struct {
	largest int
	wdl     map[Material]map[uint64]WDL
	dtz     map[Material]map[uint64]int
}

// NewMemoryStore returns an empty store claiming support for positions of
// up to largest pieces.
func NewMemoryStore(largest int) *MemoryStore {
	return &MemoryStore{
		largest: largest,
		wdl:     make(map[Material]map[uint64]WDL),
		dtz:     make(map[Material]map[uint64]int),
	}
}

// PutWDL records the outcome for a canonical position.
func (s *MemoryStore) PutWDL(m Material, p *Pos, v WDL) {
	t := s.wdl[m]
	if t == nil {
		t = make(map[uint64]WDL)
		s.wdl[m] = t
	}
	t[PosIndex(p)] = v
}

// PutDTZ records the signed distance-to-zero for a canonical position.
func (s *MemoryStore) PutDTZ(m Material, p *Pos, dtz int) {
	t := s.dtz[m]
	if t == nil {
		t = make(map[uint64]int)
		s.dtz[m] = t
	}
	t[PosIndex(p)] = dtz
}

func (s *MemoryStore) Largest() int { return s.largest }

func (s *MemoryStore) TableCounts() (int, int, int) {
	return len(s.wdl), 0, len(s.dtz)
}

func (s *MemoryStore) HasWDL(m Material) bool {
	_, ok := s.wdl[m]
	return ok
}

func (s *MemoryStore) HasDTZ(m Material) bool {
	_, ok := s.dtz[m]
	return ok
}

func (s *MemoryStore) ProbeWDL(m Material, p *Pos) (WDL, bool) {
	v, ok := s.wdl[m][PosIndex(p)]
	return v, ok
}

func (s *MemoryStore) ProbeDTZ(m Material, p *Pos) (int, bool) {
	d, ok := s.dtz[m][PosIndex(p)]
	return d, ok
}
