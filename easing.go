package funcalg

// Easing curves over [0, 1], held at 0 before the interval and at 1 after
// it. Smoothstep and Smootherstep have continuous first derivatives at
// both boundaries; Clamp01 does not.

// Clamp01 is 0 for x <= 0, x on (0, 1] and 1 after.
func Clamp01() *Piecewise { return easing(X()) }

// Smoothstep is 3x² − 2x³ on [0, 1].
func Smoothstep() *Piecewise { return easing(Poly(-2, 3, 0, 0)) }

// Smootherstep is 6x⁵ − 15x⁴ + 10x³ on [0, 1]; its second derivative is
// continuous too.
func Smootherstep() *Piecewise { return easing(Poly(6, -15, 10, 0, 0, 0)) }

func easing(ramp Func) *Piecewise {
	return MustPiecewise(
		[]Func{Const(0), ramp, Const(1)},
		[]ControlPoint{At(0, Right), At(1, Right)},
	)
}
