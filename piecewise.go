package funcalg

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Control points
// ============================================================

// Side decides which of the two neighbouring segments owns a boundary
// value. Right closes the interval of the segment before the boundary
// (x <= At stays there); Left closes the interval of the segment after
// it (x >= At moves on).
type Side int

const (
	Right Side = iota
	Left
)

func (s Side) String() string {
	switch s {
	case Right:
		return "right"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

func (s Side) valid() bool { return s == Right || s == Left }

// MarshalText implements [encoding.TextMarshaler].
func (s Side) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "right":
		*s = Right
	case "left":
		*s = Left
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSide, text)
	}
	return nil
}

// ControlPoint separates two adjacent segments of a Piecewise.
type ControlPoint struct {
	At   float64 `json:"at"`
	Side Side    `json:"side"`
}

// At returns a control point at boundary b owned by the given side.
func At(b float64, side Side) ControlPoint { return ControlPoint{At: b, Side: side} }

// owns reports whether x falls in the segment before the control point.
func (cp ControlPoint) owns(x float64) bool {
	if cp.Side == Left {
		return x < cp.At
	}
	return x <= cp.At
}

// ============================================================
// Errors
// ============================================================

var (
	ErrNoSegments         = errors.New("funcalg: piecewise function needs at least one segment")
	ErrSegmentCount       = errors.New("funcalg: piecewise function needs exactly one control point between adjacent segments")
	ErrUnsortedBoundaries = errors.New("funcalg: piecewise boundaries must be strictly increasing")
	ErrNilSegment         = errors.New("funcalg: piecewise segment is nil")
	ErrInvalidSide        = errors.New("funcalg: invalid control point side")
)

// ============================================================
// Piecewise
// ============================================================

// Piecewise dispatches x to one of k segments separated by k-1 control
// points with strictly increasing boundaries.
type Piecewise struct {
	segments []Func
	points   []ControlPoint
}

// PiecewiseOf validates and returns the piecewise function. It fails when
// the counts do not match, a segment is nil, a side is unknown, or the
// boundaries are not strictly increasing.
func PiecewiseOf(segments []Func, points []ControlPoint) (*Piecewise, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	if len(points) != len(segments)-1 {
		return nil, fmt.Errorf("%w: %d segments, %d control points", ErrSegmentCount, len(segments), len(points))
	}
	for i, s := range segments {
		if s == nil {
			return nil, fmt.Errorf("%w: segment %d", ErrNilSegment, i)
		}
	}
	for i, cp := range points {
		if !cp.Side.valid() {
			return nil, fmt.Errorf("%w: control point %d: %d", ErrInvalidSide, i, int(cp.Side))
		}
		if math.IsNaN(cp.At) {
			return nil, fmt.Errorf("%w: control point %d is NaN", ErrUnsortedBoundaries, i)
		}
		if i > 0 && !(points[i-1].At < cp.At) {
			return nil, fmt.Errorf("%w: control point %d (%v) after %v", ErrUnsortedBoundaries, i, cp.At, points[i-1].At)
		}
	}
	ps := make([]ControlPoint, len(points))
	copy(ps, points)
	return &Piecewise{segments: cloneFuncs(segments), points: ps}, nil
}

// MustPiecewise is like PiecewiseOf but panics on invalid input.
func MustPiecewise(segments []Func, points []ControlPoint) *Piecewise {
	p, err := PiecewiseOf(segments, points)
	if err != nil {
		panic(err)
	}
	return p
}

// Split returns the two-segment function that is left up to the boundary
// at and right after it; side decides who owns at itself.
func Split(left, right Func, at float64, side Side) (*Piecewise, error) {
	return PiecewiseOf([]Func{left, right}, []ControlPoint{At(at, side)})
}

func (p *Piecewise) Segments() []Func { return cloneFuncs(p.segments) }

func (p *Piecewise) Points() []ControlPoint {
	ps := make([]ControlPoint, len(p.points))
	copy(ps, p.points)
	return ps
}

// Segment returns the index of the segment that governs x. NaN falls
// through to the last segment.
func (p *Piecewise) Segment(x float64) int {
	for i, cp := range p.points {
		if cp.owns(x) {
			return i
		}
	}
	return len(p.points)
}

// mapSegments rebuilds p with every segment replaced by fn(segment). The
// boundaries are already known to be valid.
func (p *Piecewise) mapSegments(fn func(Func) Func) *Piecewise {
	segs := make([]Func, len(p.segments))
	for i, s := range p.segments {
		segs[i] = fn(s)
	}
	return &Piecewise{segments: segs, points: p.points}
}

func (p *Piecewise) String() string { return p.format(freeVar) }
func (p *Piecewise) LaTeX() string  { return p.latex(freeVar) }

// condition renders the interval of segment i with the given comparison
// operators for strict and non-strict inequality.
func (p *Piecewise) condition(i int, x, lt, le string) string {
	var b strings.Builder
	if i > 0 {
		cp := p.points[i-1]
		b.WriteString(fmtNum(cp.At))
		if cp.Side == Left {
			b.WriteString(" " + le + " ")
		} else {
			b.WriteString(" " + lt + " ")
		}
	}
	b.WriteString(x)
	if i < len(p.points) {
		cp := p.points[i]
		if cp.Side == Left {
			b.WriteString(" " + lt + " ")
		} else {
			b.WriteString(" " + le + " ")
		}
		b.WriteString(fmtNum(cp.At))
	}
	return b.String()
}

func (p *Piecewise) format(v operand) string {
	if len(p.segments) == 1 {
		return p.segments[0].format(v)
	}
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		parts[i] = s.format(v) + " if " + p.condition(i, v.plain(), "<", "<=")
	}
	return "piecewise(" + strings.Join(parts, "; ") + ")"
}

func (p *Piecewise) latex(v operand) string {
	if len(p.segments) == 1 {
		return p.segments[0].latex(v)
	}
	parts := make([]string, len(p.segments))
	for i, s := range p.segments {
		parts[i] = s.latex(v) + " & " + p.condition(i, v.tex(), "<", "\\le")
	}
	return "\\begin{cases} " + strings.Join(parts, " \\\\ ") + " \\end{cases}"
}

func (p *Piecewise) prec() int {
	if len(p.segments) == 1 {
		return p.segments[0].prec()
	}
	return precAtom
}

func (p *Piecewise) toJSON() map[string]interface{} {
	segs := make([]map[string]interface{}, len(p.segments))
	for i, s := range p.segments {
		segs[i] = s.toJSON()
	}
	pts := make([]map[string]interface{}, len(p.points))
	for i, cp := range p.points {
		pts[i] = map[string]interface{}{"at": cp.At, "side": cp.Side.String()}
	}
	return map[string]interface{}{"type": "piecewise", "segments": segs, "points": pts}
}
