package funcalg

import (
	"fmt"
	"math"
)

// Derivative returns the order-th derivative of f as a new function. Order
// 0 returns f itself. The result is the unsimplified output of the rule
// table; pass it through Simplify for a smaller tree. A negative order
// panics.
func Derivative(f Func, order int) Func {
	if order < 0 {
		panic(fmt.Sprintf("funcalg: negative derivative order %d", order))
	}
	for ; order > 0; order-- {
		f = derive(f)
	}
	return f
}

// derive applies exactly one differentiation rule per node kind and
// recurses into children.
func derive(f Func) Func {
	switch v := f.(type) {
	case *Constant:
		return Const(0)

	case *Polynomial:
		return derivePolynomial(v)

	case *Power:
		// d/dx m·x^e = (e·m)·x^(e-1)
		if v.exp*v.mul == 0 {
			return Const(0)
		}
		return MulOf(Const(v.exp*v.mul), Pow(v.exp-1, 1))

	case *Exponential:
		// d/dx b^(kx) = k·b^(kx)·ln b
		if v.base == E {
			return MulOf(Const(v.k), v)
		}
		return MulOf(MulOf(Const(v.k), v), Const(math.Log(v.base)))

	case *NaturalLog:
		return DivOf(Const(1), X())

	case *Logarithm:
		// d/dx log_b x = 1/(x·ln b). Note the x in the denominator: the
		// bare 1/ln b form some rule tables carry is not the derivative.
		return DivOf(Const(1), MulOf(X(), Const(math.Log(v.base))))

	case *Negate:
		return NegOf(derive(v.arg))

	case *Add:
		terms := make([]Func, len(v.terms))
		for i, t := range v.terms {
			terms[i] = derive(t)
		}
		return &Add{terms: terms}

	case *Subtract:
		return SubOf(derive(v.left), derive(v.right))

	case *Multiply:
		return deriveProduct(v.factors)

	case *Divide:
		// (f/g)' = (f'g - fg') / g²
		n, d := v.num, v.den
		return DivOf(
			SubOf(MulOf(derive(n), d), MulOf(n, derive(d))),
			MulOf(d, d),
		)

	case *Compose:
		// (o∘i)' = (o'∘i)·i'
		return MulOf(ComposeOf(derive(v.outer), v.inner), derive(v.inner))

	case *PowerCompose:
		// (b^p)' = b^p · (b'·p/b + p'·ln b)
		b, p := v.base, v.exp
		return MulOf(v, AddOf(
			MulOf(derive(b), DivOf(p, b)),
			MulOf(derive(p), ComposeOf(Ln(), b)),
		))

	case *Piecewise:
		return v.mapSegments(derive)
	}
	panic(fmt.Sprintf("funcalg: unknown function kind %T", f))
}

// deriveProduct folds the product rule pairwise from the left:
// (f1·R)' = f1'·R + f1·R' where R is the product of the remaining factors.
func deriveProduct(factors []Func) Func {
	switch len(factors) {
	case 0:
		return Const(0)
	case 1:
		return derive(factors[0])
	}
	head := factors[0]
	var rest Func
	if len(factors) == 2 {
		rest = factors[1]
	} else {
		rest = &Multiply{factors: factors[1:]}
	}
	return AddOf(
		MulOf(derive(head), rest),
		MulOf(head, deriveProduct(factors[1:])),
	)
}
