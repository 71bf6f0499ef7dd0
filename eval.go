package funcalg

import (
	"fmt"
	"math"
)

// Evaluate returns f(x). It never fails: division by zero and logarithms
// of non-positive values produce ±Inf or NaN as math does.
func Evaluate(f Func, x float64) float64 {
	switch v := f.(type) {
	case *Constant:
		return v.val
	case *Polynomial:
		return horner(v.coeffs, x)
	case *Power:
		return v.mul * math.Pow(x, v.exp)
	case *Exponential:
		if v.base == E {
			return math.Exp(v.k * x)
		}
		return math.Pow(v.base, v.k*x)
	case *NaturalLog:
		return math.Log(x)
	case *Logarithm:
		return math.Log(x) / math.Log(v.base)
	case *Negate:
		return -Evaluate(v.arg, x)
	case *Add:
		acc := 0.0
		for _, t := range v.terms {
			acc += Evaluate(t, x)
		}
		return acc
	case *Subtract:
		return Evaluate(v.left, x) - Evaluate(v.right, x)
	case *Multiply:
		acc := 1.0
		for _, t := range v.factors {
			acc *= Evaluate(t, x)
		}
		return acc
	case *Divide:
		return Evaluate(v.num, x) / Evaluate(v.den, x)
	case *Compose:
		return Evaluate(v.outer, Evaluate(v.inner, x))
	case *PowerCompose:
		return math.Pow(Evaluate(v.base, x), Evaluate(v.exp, x))
	case *Piecewise:
		return Evaluate(v.segments[v.Segment(x)], x)
	}
	panic(fmt.Sprintf("funcalg: unknown function kind %T", f))
}
