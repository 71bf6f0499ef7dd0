package funcalg

import (
	"fmt"
	"math"
)

// ============================================================
// Simplification
// ============================================================

// Simplify returns a function equal to f with identity terms elided and
// constant subtrees folded. It runs once, bottom-up. Folding 0·g to 0
// also hides the NaN g may produce at a singular point, the same as
// writing the smaller tree by hand would.
func Simplify(f Func) Func {
	switch v := f.(type) {
	case *Constant, *NaturalLog, *Logarithm:
		return f

	case *Polynomial:
		cs := v.coeffs
		for len(cs) > 1 && cs[0] == 0 {
			cs = cs[1:]
		}
		switch len(cs) {
		case 0:
			return Const(0)
		case 1:
			return Const(cs[0])
		}
		return Poly(cs...)

	case *Power:
		switch {
		case v.mul == 0:
			return Const(0)
		case v.exp == 0:
			return Const(v.mul)
		case v.exp == 1:
			return Poly(v.mul, 0)
		}
		return f

	case *Exponential:
		if v.k == 0 || v.base == 1 {
			return Const(1)
		}
		return f

	case *Negate:
		return simplifyNeg(Simplify(v.arg))

	case *Add:
		return simplifySum(v.terms)

	case *Subtract:
		l, r := Simplify(v.left), Simplify(v.right)
		lc, lok := constValue(l)
		rc, rok := constValue(r)
		switch {
		case lok && rok:
			return Const(lc - rc)
		case rok && rc == 0:
			return l
		case lok && lc == 0:
			return simplifyNeg(r)
		case Equal(l, r):
			return Const(0)
		}
		return SubOf(l, r)

	case *Multiply:
		return simplifyProduct(v.factors)

	case *Divide:
		n, d := Simplify(v.num), Simplify(v.den)
		nc, nok := constValue(n)
		dc, dok := constValue(d)
		switch {
		case nok && dok:
			return Const(nc / dc)
		case dok && dc == 1:
			return n
		case nok && nc == 0:
			return Const(0)
		}
		return DivOf(n, d)

	case *Compose:
		o, i := Simplify(v.outer), Simplify(v.inner)
		if _, ok := constValue(o); ok {
			return o
		}
		if c, ok := constValue(i); ok {
			return Const(Evaluate(o, c))
		}
		if isIdentity(o) {
			return i
		}
		if isIdentity(i) {
			return o
		}
		return ComposeOf(o, i)

	case *PowerCompose:
		b, p := Simplify(v.base), Simplify(v.exp)
		bc, bok := constValue(b)
		pc, pok := constValue(p)
		switch {
		case bok && pok:
			return Const(math.Pow(bc, pc))
		case pok && pc == 0:
			return Const(1)
		case pok && pc == 1:
			return b
		case pok && isIdentity(b):
			return Pow(pc, 1)
		case bok && bc > 0 && isIdentity(p):
			return Exp(bc, 1)
		}
		return PowComposeOf(b, p)

	case *Piecewise:
		return v.mapSegments(Simplify)
	}
	panic(fmt.Sprintf("funcalg: unknown function kind %T", f))
}

func simplifyNeg(f Func) Func {
	switch v := f.(type) {
	case *Constant:
		return Const(-v.val)
	case *Negate:
		return v.arg
	case *Polynomial:
		cs := v.Coefficients()
		for i := range cs {
			cs[i] = -cs[i]
		}
		return &Polynomial{coeffs: cs}
	case *Power:
		return Pow(v.exp, -v.mul)
	}
	return NegOf(f)
}

func simplifySum(terms []Func) Func {
	acc := 0.0
	out := make([]Func, 0, len(terms))
	for _, t := range terms {
		s := Simplify(t)
		var parts []Func
		if inner, ok := s.(*Add); ok {
			parts = inner.terms
		} else {
			parts = []Func{s}
		}
		for _, p := range parts {
			if c, ok := constValue(p); ok {
				acc += c
				continue
			}
			out = append(out, p)
		}
	}
	if acc != 0 || len(out) == 0 {
		out = append(out, Const(acc))
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Add{terms: out}
}

func simplifyProduct(factors []Func) Func {
	acc := 1.0
	out := make([]Func, 0, len(factors))
	for _, f := range factors {
		s := Simplify(f)
		var parts []Func
		if inner, ok := s.(*Multiply); ok {
			parts = inner.factors
		} else {
			parts = []Func{s}
		}
		for _, p := range parts {
			if c, ok := constValue(p); ok {
				acc *= c
				continue
			}
			out = append(out, p)
		}
	}
	if acc == 0 || len(out) == 0 {
		return Const(acc)
	}
	if acc != 1 {
		out = append([]Func{Const(acc)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Multiply{factors: out}
}

func constValue(f Func) (float64, bool) {
	c, ok := f.(*Constant)
	if !ok {
		return 0, false
	}
	return c.val, true
}

// isIdentity reports whether f is exactly x.
func isIdentity(f Func) bool {
	p, ok := f.(*Polynomial)
	return ok && len(p.coeffs) == 2 && p.coeffs[0] == 1 && p.coeffs[1] == 0
}

// ============================================================
// Structural equality
// ============================================================

// Equal reports whether a and b are the same tree: same kinds, same
// parameters, equal children in the same order. It does not decide
// mathematical equivalence; Poly(1, 0) and Pow(1, 1) are not Equal.
func Equal(a, b Func) bool {
	switch x := a.(type) {
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.val == y.val
	case *Polynomial:
		y, ok := b.(*Polynomial)
		return ok && floatsEqual(x.coeffs, y.coeffs)
	case *Power:
		y, ok := b.(*Power)
		return ok && x.exp == y.exp && x.mul == y.mul
	case *Exponential:
		y, ok := b.(*Exponential)
		return ok && x.base == y.base && x.k == y.k
	case *NaturalLog:
		_, ok := b.(*NaturalLog)
		return ok
	case *Logarithm:
		y, ok := b.(*Logarithm)
		return ok && x.base == y.base
	case *Negate:
		y, ok := b.(*Negate)
		return ok && Equal(x.arg, y.arg)
	case *Add:
		y, ok := b.(*Add)
		return ok && funcsEqual(x.terms, y.terms)
	case *Subtract:
		y, ok := b.(*Subtract)
		return ok && Equal(x.left, y.left) && Equal(x.right, y.right)
	case *Multiply:
		y, ok := b.(*Multiply)
		return ok && funcsEqual(x.factors, y.factors)
	case *Divide:
		y, ok := b.(*Divide)
		return ok && Equal(x.num, y.num) && Equal(x.den, y.den)
	case *Compose:
		y, ok := b.(*Compose)
		return ok && Equal(x.outer, y.outer) && Equal(x.inner, y.inner)
	case *PowerCompose:
		y, ok := b.(*PowerCompose)
		return ok && Equal(x.base, y.base) && Equal(x.exp, y.exp)
	case *Piecewise:
		y, ok := b.(*Piecewise)
		if !ok || len(x.points) != len(y.points) {
			return false
		}
		for i := range x.points {
			if x.points[i] != y.points[i] {
				return false
			}
		}
		return funcsEqual(x.segments, y.segments)
	}
	return false
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func funcsEqual(a, b []Func) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
