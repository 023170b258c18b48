package tablebase

import (
	"github.com/rs/zerolog"

	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/syzygy"
)

// SyzygyProber probes positions through the packed probing engine backed
// by a syzygy.Store. It implements Prober.
type SyzygyProber struct {
	core      *syzygy.Prober
	store     syzygy.Store
	log       zerolog.Logger
	useRule50 bool
}

// SyzygyOption configures a SyzygyProber.
type SyzygyOption func(*SyzygyProber)

// WithLogger sets the prober's logger.
func WithLogger(log zerolog.Logger) SyzygyOption {
	return func(sp *SyzygyProber) { sp.log = log }
}

// WithoutRule50 disables the fifty-move rule: cursed wins and blessed
// losses report as decisive.
func WithoutRule50() SyzygyOption {
	return func(sp *SyzygyProber) { sp.useRule50 = false }
}

// NewSyzygyProber creates a prober over the given table data store.
func NewSyzygyProber(store syzygy.Store, opts ...SyzygyOption) *SyzygyProber {
	sp := &SyzygyProber{
		core:      syzygy.New(store, BoardBridge{}),
		store:     store,
		log:       zerolog.Nop(),
		useRule50: true,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// probeable rejects positions the tables cannot represent or cover.
func (sp *SyzygyProber) probeable(pos *board.Position) bool {
	if pos.CastlingRights != 0 {
		return false
	}
	return CountPieces(pos) <= sp.core.MaxPieces()
}

// Probe looks up the position's WDL and DTZ. Positions with castling
// rights or too many pieces report not found.
func (sp *SyzygyProber) Probe(pos *board.Position) ProbeResult {
	if !sp.probeable(pos) {
		return ProbeResult{Found: false}
	}
	p := posToCore(pos)
	v, ok := sp.core.ProbeWDL(&p)
	if !ok {
		sp.log.Debug().Str("fen", pos.ToFEN()).Msg("wdl probe miss")
		return ProbeResult{Found: false}
	}
	if sp.useRule50 {
		v = v.Fold50()
	} else {
		v = v.Strict()
	}
	// DTZ is best effort: WDL alone is still a usable answer.
	dtz, _ := sp.core.ProbeDTZ(&p)
	return ProbeResult{Found: true, WDL: fromCore(v), DTZ: dtz}
}

// ProbeRoot finds the best move at the root, ranked across both the WDL
// and DTZ tables.
func (sp *SyzygyProber) ProbeRoot(pos *board.Position) RootResult {
	if !sp.probeable(pos) {
		return RootResult{Found: false}
	}
	p := posToCore(pos)
	best, _, ok := sp.core.ProbeRoot(&p)
	if !ok || best.IsFailed() {
		sp.log.Debug().Str("fen", pos.ToFEN()).Msg("root probe miss")
		return RootResult{Found: false}
	}
	if best.IsCheckmate() || best.IsStalemate() {
		// No move to report; the host's own game-over handling takes it.
		return RootResult{Found: false}
	}
	return RootResult{
		Found: true,
		Move:  resultToBoardMove(best),
		WDL:   fromCore(best.WDL()),
		DTZ:   best.DTZ(),
	}
}

// ProbeRootDTZ picks the root move straight from the DTZ tables.
// hasRepeated marks that the game has already seen a repetition, which
// forbids ranking slow wins at full value.
func (sp *SyzygyProber) ProbeRootDTZ(pos *board.Position, hasRepeated bool) (RootResult, []RankedMove) {
	if !sp.probeable(pos) {
		return RootResult{Found: false}, nil
	}
	p := posToCore(pos)
	best, ranked, ok := sp.core.ProbeRootDTZ(&p, hasRepeated)
	if !ok || best.IsFailed() {
		sp.log.Debug().Str("fen", pos.ToFEN()).Msg("dtz root probe miss")
		return RootResult{Found: false}, nil
	}
	if best.IsCheckmate() || best.IsStalemate() {
		return RootResult{Found: false}, nil
	}
	return RootResult{
		Found: true,
		Move:  resultToBoardMove(best),
		WDL:   fromCore(best.WDL()),
		DTZ:   best.DTZ(),
	}, sp.rankedMoves(ranked)
}

// ProbeRootWDL ranks the root moves on the WDL tables alone, for when the
// DTZ files are not on disk.
func (sp *SyzygyProber) ProbeRootWDL(pos *board.Position) (RootResult, []RankedMove) {
	if !sp.probeable(pos) {
		return RootResult{Found: false}, nil
	}
	p := posToCore(pos)
	best, ranked, ok := sp.core.ProbeRootWDL(&p, sp.useRule50)
	if !ok || best.IsFailed() {
		return RootResult{Found: false}, nil
	}
	if best.IsCheckmate() || best.IsStalemate() {
		return RootResult{Found: false}, nil
	}
	return RootResult{
		Found: true,
		Move:  resultToBoardMove(best),
		WDL:   fromCore(best.WDL()),
	}, sp.rankedMoves(ranked)
}

func (sp *SyzygyProber) rankedMoves(moves syzygy.RootMoves) []RankedMove {
	out := make([]RankedMove, len(moves))
	for i, rm := range moves {
		out[i] = RankedMove{
			Move: coreMoveToBoard(rm.Move),
			Rank: rm.Rank,
		}
		switch {
		case rm.Rank > 0:
			out[i].WDL = WDLWin
			if rm.Rank < 900 {
				out[i].WDL = WDLCursedWin
			}
		case rm.Rank < 0:
			out[i].WDL = WDLLoss
			if rm.Rank > -900 {
				out[i].WDL = WDLBlessedLoss
			}
		}
	}
	return out
}

// MaxPieces returns the maximum piece count the store supports.
func (sp *SyzygyProber) MaxPieces() int {
	return sp.core.MaxPieces()
}

// Available reports whether any tables are loaded.
func (sp *SyzygyProber) Available() bool {
	wdl, _, dtz := sp.core.TableCounts()
	return wdl > 0 || dtz > 0 || sp.core.MaxPieces() > 2
}

// Close releases the backing store when it owns resources; stores without
// teardown make this a no-op.
func (sp *SyzygyProber) Close() error {
	if c, ok := sp.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
