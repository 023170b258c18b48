package syzygy

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Material identifies a tablebase by its piece signature, stronger side
// first, e.g. "KQRvKR". Table files on disk carry the same names.
type Material string

// pieceOrder ranks pieces for the stronger-side comparison.
const pieceOrder = "KQRBNP"

// MaterialOf builds the signature of p with White's pieces first. The
// result is not necessarily canonical; see Canonical.
func MaterialOf(br Bridge, p *Pos) Material {
	return Material(materialHalf(br, p, p.White) + "v" + materialHalf(br, p, p.Black))
}

func materialHalf(br Bridge, p *Pos, side uint64) string {
	var sb strings.Builder
	sb.WriteByte('K')
	for i, b := range [5]uint64{p.Queens, p.Rooks, p.Bishops, p.Knights, p.Pawns} {
		for n := br.PopCount(b & side); n > 0; n-- {
			sb.WriteByte(pieceOrder[i+1])
		}
	}
	return sb.String()
}

// Flip swaps the two halves of the signature.
func (m Material) Flip() Material {
	i := strings.IndexByte(string(m), 'v')
	return m[i+1:] + "v" + m[:i]
}

// PieceCount returns the number of pieces the signature describes.
func (m Material) PieceCount() int {
	return len(m) - 1
}

// stronger reports whether half a outranks half b: more pieces first, then
// better pieces.
func stronger(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	for i := 0; i < len(a); i++ {
		ai := strings.IndexByte(pieceOrder, a[i])
		bi := strings.IndexByte(pieceOrder, b[i])
		if ai != bi {
			return ai < bi
		}
	}
	return false
}

// Canonical orients the position the way its table is stored: the stronger
// side plays White. mirrored reports whether the position was flipped, in
// which case the caller's perspective swap is already accounted for by the
// side-to-move flip inside Mirror.
func Canonical(br Bridge, p Pos) (Pos, Material, bool) {
	wh := materialHalf(br, &p, p.White)
	bh := materialHalf(br, &p, p.Black)
	if stronger(bh, wh) {
		return p.Mirror(), Material(bh + "v" + wh), true
	}
	return p, Material(wh + "v" + bh), false
}

// PosIndex derives the position index used to address map-backed stores: a
// hash of the packed bitboard image plus the side to move. The en passant
// square is deliberately excluded; the probe engines handle en passant out
// of band because the precomputed tables cannot encode it.
func PosIndex(p *Pos) uint64 {
	var buf [65]byte
	binary.LittleEndian.PutUint64(buf[0:], p.White)
	binary.LittleEndian.PutUint64(buf[8:], p.Black)
	binary.LittleEndian.PutUint64(buf[16:], p.Kings)
	binary.LittleEndian.PutUint64(buf[24:], p.Queens)
	binary.LittleEndian.PutUint64(buf[32:], p.Rooks)
	binary.LittleEndian.PutUint64(buf[40:], p.Bishops)
	binary.LittleEndian.PutUint64(buf[48:], p.Knights)
	binary.LittleEndian.PutUint64(buf[56:], p.Pawns)
	if p.Turn {
		buf[64] = 1
	}
	return xxhash.Sum64(buf[:])
}
