package syzygy

// WDL classifies a position from the side to move's perspective. The order
// matters: outcomes compare numerically, worst to best.
type WDL uint32

const (
	Loss        WDL = 0 // loss
	BlessedLoss WDL = 1 // loss saved by the fifty-move rule
	Draw        WDL = 2 // draw
	CursedWin   WDL = 3 // win spoiled by the fifty-move rule
	Win         WDL = 4 // win
)

// Negate flips the outcome to the opponent's perspective.
func (w WDL) Negate() WDL {
	return Win - w
}

// Fold50 maps the fifty-move qualified outcomes onto Draw, which is how
// they score and sort when the fifty-move rule is in force.
func (w WDL) Fold50() WDL {
	if w == BlessedLoss || w == CursedWin {
		return Draw
	}
	return w
}

// Strict maps the fifty-move qualified outcomes onto the underlying
// decisive result, ignoring the rule.
func (w WDL) Strict() WDL {
	switch w {
	case BlessedLoss:
		return Loss
	case CursedWin:
		return Win
	}
	return w
}

func (w WDL) String() string {
	switch w {
	case Loss:
		return "loss"
	case BlessedLoss:
		return "blessed-loss"
	case Draw:
		return "draw"
	case CursedWin:
		return "cursed-win"
	case Win:
		return "win"
	}
	return "unknown"
}

// Result packs a probe outcome in 32 bits:
// bits 0-3:   WDL
// bits 4-9:   destination square
// bits 10-15: origin square
// bits 16-18: promotion piece code (0 = none)
// bit  19:    en passant
// bits 20-31: DTZ, two's complement
type Result uint32

const (
	resultMaskWDL      Result = 0x0000000F
	resultMaskTo       Result = 0x000003F0
	resultMaskFrom     Result = 0x0000FC00
	resultMaskPromotes Result = 0x00070000
	resultMaskEP       Result = 0x00080000
	resultMaskDTZ      Result = 0xFFF00000

	resultShiftWDL      = 0
	resultShiftTo       = 4
	resultShiftFrom     = 10
	resultShiftPromotes = 16
	resultShiftEP       = 19
	resultShiftDTZ      = 20
)

// Reserved results. These must be compared against before reading any
// field: their bit patterns are not valid field encodings.
const (
	// ResultFailed means the probe could not answer: table missing, too
	// many pieces, or a position the tables cannot represent.
	ResultFailed Result = 0xFFFFFFFF
	// ResultCheckmate is returned by root probes for mated positions.
	ResultCheckmate Result = Result(Win) << resultShiftWDL
	// ResultStalemate is returned by root probes for stalemated positions.
	ResultStalemate Result = Result(Draw) << resultShiftWDL
)

// NewResult packs a full probe outcome. dtz is truncated to its 12-bit field.
func NewResult(w WDL, from, to, promo int, ep bool, dtz int) Result {
	r := Result(0).WithWDL(w).WithFrom(from).WithTo(to).WithPromotes(promo).WithDTZ(dtz)
	return r.WithEnPassant(ep)
}

// IsFailed reports whether the result is the failure sentinel.
func (r Result) IsFailed() bool { return r == ResultFailed }

// IsCheckmate reports whether the result is the checkmate sentinel.
func (r Result) IsCheckmate() bool { return r == ResultCheckmate }

// IsStalemate reports whether the result is the stalemate sentinel.
func (r Result) IsStalemate() bool { return r == ResultStalemate }

// WDL returns the outcome field.
func (r Result) WDL() WDL {
	return WDL((r & resultMaskWDL) >> resultShiftWDL)
}

// To returns the destination square field.
func (r Result) To() int {
	return int((r & resultMaskTo) >> resultShiftTo)
}

// From returns the origin square field.
func (r Result) From() int {
	return int((r & resultMaskFrom) >> resultShiftFrom)
}

// Promotes returns the promotion piece code, 0 when the move does not promote.
func (r Result) Promotes() int {
	return int((r & resultMaskPromotes) >> resultShiftPromotes)
}

// EnPassant reports whether the move is an en passant capture.
func (r Result) EnPassant() bool {
	return r&resultMaskEP != 0
}

// DTZ returns the signed distance-to-zero in plies. Only meaningful on
// non-sentinel results.
func (r Result) DTZ() int {
	return int(int32(r) >> resultShiftDTZ)
}

// WithWDL replaces the outcome field, leaving all other bits untouched.
func (r Result) WithWDL(w WDL) Result {
	return r&^resultMaskWDL | (Result(w)<<resultShiftWDL)&resultMaskWDL
}

// WithTo replaces the destination square field.
func (r Result) WithTo(to int) Result {
	return r&^resultMaskTo | (Result(to)<<resultShiftTo)&resultMaskTo
}

// WithFrom replaces the origin square field.
func (r Result) WithFrom(from int) Result {
	return r&^resultMaskFrom | (Result(from)<<resultShiftFrom)&resultMaskFrom
}

// WithPromotes replaces the promotion piece field.
func (r Result) WithPromotes(promo int) Result {
	return r&^resultMaskPromotes | (Result(promo)<<resultShiftPromotes)&resultMaskPromotes
}

// WithEnPassant replaces the en passant bit.
func (r Result) WithEnPassant(ep bool) Result {
	r &^= resultMaskEP
	if ep {
		r |= resultMaskEP
	}
	return r
}

// WithDTZ replaces the distance-to-zero field.
func (r Result) WithDTZ(dtz int) Result {
	return r&^resultMaskDTZ | (Result(uint32(dtz))<<resultShiftDTZ)&resultMaskDTZ
}
