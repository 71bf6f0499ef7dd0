package funcalg

import (
	"math"
	"strconv"
	"strings"
)

// E is Euler's number. Exponentials with this exact base differentiate
// without the ln(base) factor.
const E = math.E

// ============================================================
// Polynomial: c0·x^n + c1·x^(n-1) + … + cn
// ============================================================

// Polynomial holds its coefficients highest degree first, so a degree-n
// polynomial has exactly n+1 coefficients. The empty polynomial is 0.
type Polynomial struct{ coeffs []float64 }

// Poly returns the polynomial with the given coefficients, highest degree
// first: Poly(2, 3, -4) is 2x² + 3x − 4.
func Poly(coeffs ...float64) *Polynomial {
	cs := make([]float64, len(coeffs))
	copy(cs, coeffs)
	return &Polynomial{coeffs: cs}
}

// Linear returns a·x + b.
func Linear(a, b float64) *Polynomial { return Poly(a, b) }

// Quadratic returns a·x² + b·x + c.
func Quadratic(a, b, c float64) *Polynomial { return Poly(a, b, c) }

// X returns the identity function x.
func X() *Polynomial { return Poly(1, 0) }

// Coefficients returns a copy of the coefficients, highest degree first.
func (p *Polynomial) Coefficients() []float64 {
	cs := make([]float64, len(p.coeffs))
	copy(cs, p.coeffs)
	return cs
}

// Degree is len(Coefficients())-1; the empty polynomial has degree -1.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

func (p *Polynomial) String() string { return p.format(freeVar) }
func (p *Polynomial) LaTeX() string  { return p.latex(freeVar) }

func (p *Polynomial) format(v operand) string {
	return p.render(v.plain(), "*", func(d int) string { return "^" + strconv.Itoa(d) })
}

func (p *Polynomial) latex(v operand) string {
	return p.render(v.tex(), " ", func(d int) string { return "^{" + strconv.Itoa(d) + "}" })
}

func (p *Polynomial) render(x, times string, pow func(int) string) string {
	n := p.Degree()
	parts := []string{}
	for i, c := range p.coeffs {
		if c == 0 {
			continue
		}
		d := n - i
		if d == 0 {
			parts = append(parts, fmtNum(c))
			continue
		}
		term := x
		if d > 1 {
			term += pow(d)
		}
		if c != 1 {
			term = fmtNum(c) + times + term
		}
		parts = append(parts, term)
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

func (p *Polynomial) prec() int {
	n := p.Degree()
	terms, c, d := 0, 0.0, 0
	for i, ci := range p.coeffs {
		if ci != 0 {
			terms++
			c, d = ci, n-i
		}
	}
	switch {
	case terms == 0:
		return precAtom
	case terms > 1 || c < 0:
		return precSum
	case d == 0:
		return precAtom
	case c != 1 || d > 1:
		return precProduct
	}
	return precAtom
}

func (p *Polynomial) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "poly", "coeffs": p.Coefficients()}
}

// ============================================================
// Coefficient algebra
// ============================================================

// horner evaluates coefficients stored highest degree first.
func horner(cs []float64, x float64) float64 {
	if len(cs) == 0 {
		return 0
	}
	r := cs[0]
	for _, c := range cs[1:] {
		r = r*x + c
	}
	return r
}

// descendingWeights returns [n, n-1, …, 1, 0]: the exponent each of the
// n+1 coefficients of a degree-n polynomial carries.
func descendingWeights(n int) []float64 {
	if n < 0 {
		return nil
	}
	ws := make([]float64, n+1)
	for i := range ws {
		ws[i] = float64(n - i)
	}
	return ws
}

// shiftCoefficients returns the coefficients of the derivative: every
// coefficient times its exponent, with the constant term dropped.
func shiftCoefficients(cs []float64) []float64 {
	if len(cs) <= 1 {
		return nil
	}
	ws := descendingWeights(len(cs) - 1)
	out := make([]float64, len(cs)-1)
	for i := range out {
		out[i] = cs[i] * ws[i]
	}
	return out
}

// derivePolynomial applies the coefficient shift; degree-0 and empty
// polynomials become Constant(0).
func derivePolynomial(p *Polynomial) Func {
	shifted := shiftCoefficients(p.coeffs)
	if shifted == nil {
		return Const(0)
	}
	return &Polynomial{coeffs: shifted}
}

// PolynomialCoefficients views f as a coefficient list, highest degree
// first. A Constant c is the degree-0 list [c]. It reports false for
// every other kind.
func PolynomialCoefficients(f Func) ([]float64, bool) {
	switch v := f.(type) {
	case *Polynomial:
		return v.Coefficients(), true
	case *Constant:
		return []float64{v.val}, true
	}
	return nil, false
}
