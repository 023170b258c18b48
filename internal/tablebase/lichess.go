package tablebase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/tbprobe/internal/syzygy"
)

// LichessStore serves table data from the Lichess tablebase API instead of
// local .rtbw/.rtbz files. It implements syzygy.Store, so the probing
// engine cannot tell it apart from a disk-backed store.
//
// Note: this requires network access and has rate limits. Wrap the prober
// in a CachedProber for anything probe-heavy.
type LichessStore struct {
	client  *http.Client
	baseURL string
	largest int
	log     zerolog.Logger
}

// NewLichessStore creates a store over the public Lichess endpoint, which
// hosts the full 7-piece set.
func NewLichessStore() *LichessStore {
	return &LichessStore{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://tablebase.lichess.ovh/standard",
		largest: 7,
		log:     zerolog.Nop(),
	}
}

// SetLogger replaces the store's logger.
func (ls *LichessStore) SetLogger(log zerolog.Logger) {
	ls.log = log
}

func (ls *LichessStore) Largest() int {
	return ls.largest
}

// TableCounts is zero for a remote store: the endpoint does not enumerate
// its tables.
func (ls *LichessStore) TableCounts() (wdl, dtm, dtz int) {
	return 0, 0, 0
}

// HasWDL assumes coverage for any signature within the piece limit; an
// actual miss surfaces as a failed probe.
func (ls *LichessStore) HasWDL(m syzygy.Material) bool {
	return m.PieceCount() <= ls.largest
}

func (ls *LichessStore) HasDTZ(m syzygy.Material) bool {
	return m.PieceCount() <= ls.largest
}

// Lichess API response structure.
type lichessResponse struct {
	Category string `json:"category"` // "win", "cursed-win", "draw", "blessed-loss", "loss"
	DTZ      int    `json:"dtz"`
}

func (ls *LichessStore) ProbeWDL(m syzygy.Material, p *syzygy.Pos) (syzygy.WDL, bool) {
	resp, ok := ls.query(p)
	if !ok {
		return 0, false
	}
	return categoryToWDL(resp.Category)
}

func (ls *LichessStore) ProbeDTZ(m syzygy.Material, p *syzygy.Pos) (int, bool) {
	resp, ok := ls.query(p)
	if !ok {
		return 0, false
	}
	return resp.DTZ, true
}

func (ls *LichessStore) query(p *syzygy.Pos) (*lichessResponse, bool) {
	// Spaces become underscores in the fen query parameter.
	fen := strings.ReplaceAll(coreFEN(p), " ", "_")
	url := fmt.Sprintf("%s?fen=%s", ls.baseURL, fen)

	resp, err := ls.client.Get(url)
	if err != nil {
		ls.log.Debug().Err(err).Str("fen", fen).Msg("tablebase request failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ls.log.Debug().Int("status", resp.StatusCode).Str("fen", fen).Msg("tablebase request rejected")
		return nil, false
	}

	var result lichessResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		ls.log.Debug().Err(err).Msg("tablebase response decode failed")
		return nil, false
	}
	return &result, true
}

func categoryToWDL(category string) (syzygy.WDL, bool) {
	switch category {
	case "win":
		return syzygy.Win, true
	case "cursed-win", "maybe-win":
		return syzygy.CursedWin, true
	case "draw":
		return syzygy.Draw, true
	case "blessed-loss", "maybe-loss":
		return syzygy.BlessedLoss, true
	case "loss":
		return syzygy.Loss, true
	}
	return 0, false
}

// coreFEN serializes a probing-engine position to FEN. The positions the
// store receives are canonical, so castling is always "-" and the clocks
// are zeroed.
func coreFEN(p *syzygy.Pos) string {
	pieceChar := func(sq int) byte {
		b := uint64(1) << uint(sq)
		var ch byte
		switch {
		case p.Pawns&b != 0:
			ch = 'p'
		case p.Knights&b != 0:
			ch = 'n'
		case p.Bishops&b != 0:
			ch = 'b'
		case p.Rooks&b != 0:
			ch = 'r'
		case p.Queens&b != 0:
			ch = 'q'
		case p.Kings&b != 0:
			ch = 'k'
		default:
			return 0
		}
		if p.White&b != 0 {
			ch -= 'a' - 'A'
		}
		return ch
	}

	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			ch := pieceChar(rank*8 + file)
			if ch == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(ch)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.Turn {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString("- ")
	if p.EP != 0 {
		sb.WriteByte(byte('a' + int(p.EP)%8))
		sb.WriteByte(byte('1' + int(p.EP)/8))
	} else {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, " %d 1", p.Rule50)
	return sb.String()
}
