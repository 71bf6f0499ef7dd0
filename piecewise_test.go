package funcalg_test

import (
	"errors"
	"math"
	"testing"

	"github.com/njchilds90/funcalg"
)

// ============================================================
// Boundary dispatch
// ============================================================

func TestSplit_RightBoundaryBelongsToLeftSegment(t *testing.T) {
	left, right := funcalg.Poly(1, 0), funcalg.Const(10)
	b, eps := 2.0, 1e-9
	p, err := funcalg.Split(left, right, b, funcalg.Right)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := funcalg.Evaluate(p, b), funcalg.Evaluate(left, b); got != want {
		t.Errorf("at boundary: want %v, got %v", want, got)
	}
	if got, want := funcalg.Evaluate(p, b+eps), funcalg.Evaluate(right, b+eps); got != want {
		t.Errorf("past boundary: want %v, got %v", want, got)
	}
	if got, want := funcalg.Evaluate(p, b-eps), funcalg.Evaluate(left, b-eps); got != want {
		t.Errorf("before boundary: want %v, got %v", want, got)
	}
}

func TestSplit_LeftBoundaryBelongsToRightSegment(t *testing.T) {
	left, right := funcalg.Poly(1, 0), funcalg.Const(10)
	b, eps := 2.0, 1e-9
	p, err := funcalg.Split(left, right, b, funcalg.Left)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := funcalg.Evaluate(p, b), funcalg.Evaluate(right, b); got != want {
		t.Errorf("at boundary: want %v, got %v", want, got)
	}
	if got, want := funcalg.Evaluate(p, b-eps), funcalg.Evaluate(left, b-eps); got != want {
		t.Errorf("before boundary: want %v, got %v", want, got)
	}
}

func TestPiecewise_SegmentSelection(t *testing.T) {
	p := funcalg.MustPiecewise(
		[]funcalg.Func{funcalg.Const(0), funcalg.Const(1), funcalg.Const(2), funcalg.Const(3)},
		[]funcalg.ControlPoint{
			funcalg.At(-1, funcalg.Right),
			funcalg.At(0, funcalg.Left),
			funcalg.At(1, funcalg.Right),
		},
	)
	tests := []struct {
		x    float64
		want int
	}{
		{math.Inf(-1), 0},
		{-2, 0},
		{-1, 0},
		{-0.5, 1},
		{0, 2},
		{0.5, 2},
		{1, 2},
		{1.5, 3},
		{math.Inf(1), 3},
	}
	for _, tt := range tests {
		if got := p.Segment(tt.x); got != tt.want {
			t.Errorf("Segment(%v): want %d, got %d", tt.x, tt.want, got)
		}
		if got := funcalg.Evaluate(p, tt.x); got != float64(tt.want) {
			t.Errorf("Evaluate(%v): want %d, got %v", tt.x, tt.want, got)
		}
	}
}

func TestPiecewise_SingleSegment(t *testing.T) {
	p, err := funcalg.PiecewiseOf([]funcalg.Func{funcalg.NatExp(1)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, math.E, funcalg.Evaluate(p, 1), approx)
}

// ============================================================
// Construction-time rejection
// ============================================================

func TestPiecewiseOf_Rejects(t *testing.T) {
	c := funcalg.Const(0)
	tests := []struct {
		name     string
		segments []funcalg.Func
		points   []funcalg.ControlPoint
		want     error
	}{
		{"no segments", nil, nil, funcalg.ErrNoSegments},
		{"too few points", []funcalg.Func{c, c, c}, []funcalg.ControlPoint{funcalg.At(0, funcalg.Right)}, funcalg.ErrSegmentCount},
		{"too many points", []funcalg.Func{c}, []funcalg.ControlPoint{funcalg.At(0, funcalg.Right)}, funcalg.ErrSegmentCount},
		{"decreasing", []funcalg.Func{c, c, c}, []funcalg.ControlPoint{funcalg.At(1, funcalg.Right), funcalg.At(0, funcalg.Right)}, funcalg.ErrUnsortedBoundaries},
		{"repeated", []funcalg.Func{c, c, c}, []funcalg.ControlPoint{funcalg.At(1, funcalg.Right), funcalg.At(1, funcalg.Left)}, funcalg.ErrUnsortedBoundaries},
		{"nan", []funcalg.Func{c, c}, []funcalg.ControlPoint{funcalg.At(math.NaN(), funcalg.Right)}, funcalg.ErrUnsortedBoundaries},
		{"nil segment", []funcalg.Func{c, nil}, []funcalg.ControlPoint{funcalg.At(0, funcalg.Right)}, funcalg.ErrNilSegment},
		{"bad side", []funcalg.Func{c, c}, []funcalg.ControlPoint{{At: 0, Side: funcalg.Side(7)}}, funcalg.ErrInvalidSide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := funcalg.PiecewiseOf(tt.segments, tt.points)
			if !errors.Is(err, tt.want) {
				t.Errorf("want %v, got %v", tt.want, err)
			}
			if p != nil {
				t.Error("rejected input should not produce a function")
			}
		})
	}
}

func TestMustPiecewise_Panics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, funcalg.ErrUnsortedBoundaries) {
			t.Errorf("want panic with ErrUnsortedBoundaries, got %v", r)
		}
	}()
	funcalg.MustPiecewise(
		[]funcalg.Func{funcalg.Const(0), funcalg.Const(1), funcalg.Const(2)},
		[]funcalg.ControlPoint{funcalg.At(3, funcalg.Right), funcalg.At(2, funcalg.Right)},
	)
}

func TestPiecewiseOf_CopiesInput(t *testing.T) {
	segs := []funcalg.Func{funcalg.Const(0), funcalg.Const(1)}
	pts := []funcalg.ControlPoint{funcalg.At(0, funcalg.Right)}
	p := funcalg.MustPiecewise(segs, pts)
	segs[0] = funcalg.Const(99)
	pts[0].At = 50
	if got := funcalg.Evaluate(p, -1); got != 0 {
		t.Errorf("want 0, got %v", got)
	}
	diff(t, []funcalg.ControlPoint{funcalg.At(0, funcalg.Right)}, p.Points())
}

// ============================================================
// Derivative
// ============================================================

func TestPiecewise_DerivativeKeepsBoundaries(t *testing.T) {
	p := funcalg.MustPiecewise(
		[]funcalg.Func{funcalg.Poly(1, 0, 0), funcalg.NatExp(1)},
		[]funcalg.ControlPoint{funcalg.At(1, funcalg.Left)},
	)
	d, ok := funcalg.Derivative(p, 1).(*funcalg.Piecewise)
	if !ok {
		t.Fatalf("derivative of a piecewise function should be piecewise")
	}
	diff(t, p.Points(), d.Points())
	diff(t, 2*0.5, funcalg.Evaluate(d, 0.5), approx)
	diff(t, math.E, funcalg.Evaluate(d, 1), approx)
}

func TestSmoothstep(t *testing.T) {
	s := funcalg.Smoothstep()
	diff(t, 0.5, funcalg.Evaluate(s, 0.5), approx)
	diff(t, 0.0, funcalg.Evaluate(s, -3), approx)
	diff(t, 1.0, funcalg.Evaluate(s, 4), approx)

	d := funcalg.Derivative(s, 1)
	diff(t, 1.5, funcalg.Evaluate(d, 0.5), approx)
	// First derivative is continuous at both edges.
	for _, b := range []float64{0, 1} {
		for _, eps := range []float64{-1e-7, 0, 1e-7} {
			if v := funcalg.Evaluate(d, b+eps); math.Abs(v) > 1e-6 {
				t.Errorf("smoothstep' near %v should vanish, got %v", b+eps, v)
			}
		}
	}
}

func TestSmootherstep_SecondDerivativeContinuous(t *testing.T) {
	d2 := funcalg.Derivative(funcalg.Smootherstep(), 2)
	for _, b := range []float64{0, 1} {
		for _, eps := range []float64{-1e-7, 0, 1e-7} {
			if v := funcalg.Evaluate(d2, b+eps); math.Abs(v) > 1e-5 {
				t.Errorf("smootherstep'' near %v should vanish, got %v", b+eps, v)
			}
		}
	}
	diff(t, 0.5, funcalg.Evaluate(funcalg.Smootherstep(), 0.5), approx)
}

func TestClamp01(t *testing.T) {
	c := funcalg.Clamp01()
	diff(t, []float64{0, 0, 0.25, 1, 1}, funcalg.Sample(c, []float64{-1, 0, 0.25, 1, 2}))
}

// ============================================================
// Side text form
// ============================================================

func TestSide_Text(t *testing.T) {
	for _, s := range []funcalg.Side{funcalg.Right, funcalg.Left} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got funcalg.Side
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("want %v, got %v", s, got)
		}
	}
	var s funcalg.Side
	if err := s.UnmarshalText([]byte("middle")); !errors.Is(err, funcalg.ErrInvalidSide) {
		t.Errorf("want ErrInvalidSide, got %v", err)
	}
}
