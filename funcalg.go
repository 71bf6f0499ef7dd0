// Package funcalg provides a symbolic algebra of one-argument real functions.
//
// A function is a tree of immutable nodes built bottom-up from leaves
// (constants, polynomials, powers, exponentials, logarithms) and
// combinators (negation, sum, difference, product, quotient, composition,
// power composition, piecewise dispatch). Two entry points consume a tree:
//
//   - Evaluate(f, x) computes f(x) with float64 arithmetic.
//   - Derivative(f, n) returns a new tree for the n-th derivative of f,
//     obtained by exact rewrite rules rather than numeric approximation.
//
// Design goals:
//   - Closed node set, one concrete type per kind, one rule table
//   - Immutable trees: derived trees never modify their source
//   - Deterministic text, LaTeX and JSON renderings
//   - Embeddable in services, CLIs and agent backends (see HandleToolCall)
//
// Division by zero and logarithms of non-positive values are not
// intercepted; they follow IEEE-754 semantics and yield ±Inf or NaN.
package funcalg

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Func is a node of the function algebra. The set of implementations is
// closed: only the types declared in this package satisfy it.
type Func interface {
	String() string
	LaTeX() string
	format(v operand) string
	latex(v operand) string
	prec() int
	toJSON() map[string]interface{}
}

// Rendering precedence, lowest binds loosest.
const (
	precSum = iota + 1
	precProduct
	precAtom
)

// operand is the already-rendered argument a node is applied to: the free
// variable itself, or the rendering of an inner function under Compose.
type operand struct {
	text string
	atom bool
}

var freeVar = operand{text: "x", atom: true}

func (v operand) plain() string {
	if v.atom {
		return v.text
	}
	return "(" + v.text + ")"
}

func (v operand) tex() string {
	if v.atom {
		return v.text
	}
	return "\\left(" + v.text + "\\right)"
}

func wrap(f Func, v operand, min int) string {
	s := f.format(v)
	if f.prec() < min {
		return "(" + s + ")"
	}
	return s
}

func wrapTeX(f Func, v operand, min int) string {
	s := f.latex(v)
	if f.prec() < min {
		return "\\left(" + s + "\\right)"
	}
	return s
}

func fmtNum(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func mustFunc(kind string, fs ...Func) {
	for i, f := range fs {
		if f == nil {
			panic(fmt.Sprintf("funcalg: %s: nil operand %d", kind, i))
		}
	}
}

func cloneFuncs(fs []Func) []Func {
	out := make([]Func, len(fs))
	copy(out, fs)
	return out
}

// ============================================================
// Constant
// ============================================================

// Constant is the function x ↦ c.
type Constant struct{ val float64 }

// Const returns the constant function c.
func Const(c float64) *Constant { return &Constant{val: c} }

// Value returns the constant's value.
func (c *Constant) Value() float64 { return c.val }

func (c *Constant) String() string { return c.format(freeVar) }
func (c *Constant) LaTeX() string  { return c.latex(freeVar) }
func (c *Constant) format(operand) string {
	return fmtNum(c.val)
}
func (c *Constant) latex(operand) string { return fmtNum(c.val) }
func (c *Constant) prec() int {
	if c.val < 0 {
		return precSum
	}
	return precAtom
}
func (c *Constant) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "value": c.val}
}

// ============================================================
// Power: m·x^e
// ============================================================

// Power is the function x ↦ m·x^e for a real exponent e.
type Power struct{ exp, mul float64 }

// Pow returns x ↦ mul·x^exp.
func Pow(exp, mul float64) *Power { return &Power{exp: exp, mul: mul} }

// Exponent returns e.
func (p *Power) Exponent() float64 { return p.exp }

// Multiplier returns m.
func (p *Power) Multiplier() float64 { return p.mul }

func (p *Power) String() string { return p.format(freeVar) }
func (p *Power) LaTeX() string  { return p.latex(freeVar) }
func (p *Power) format(v operand) string {
	s := v.plain() + "^" + fmtNum(p.exp)
	if p.mul == 1 {
		return s
	}
	return fmtNum(p.mul) + "*" + s
}
func (p *Power) latex(v operand) string {
	s := v.tex() + "^{" + fmtNum(p.exp) + "}"
	if p.mul == 1 {
		return s
	}
	return fmtNum(p.mul) + " " + s
}
func (p *Power) prec() int {
	if p.mul < 0 {
		return precSum
	}
	return precProduct
}
func (p *Power) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "power", "exp": p.exp, "mul": p.mul}
}

// ============================================================
// Exponential: b^(k·x)
// ============================================================

// Exponential is the function x ↦ b^(k·x).
type Exponential struct{ base, k float64 }

// Exp returns x ↦ base^(k·x).
func Exp(base, k float64) *Exponential { return &Exponential{base: base, k: k} }

// NatExp returns x ↦ e^(k·x).
func NatExp(k float64) *Exponential { return Exp(E, k) }

// Base returns b.
func (e *Exponential) Base() float64 { return e.base }

// Rate returns k, the factor applied to x in the exponent.
func (e *Exponential) Rate() float64 { return e.k }

func (e *Exponential) String() string { return e.format(freeVar) }
func (e *Exponential) LaTeX() string  { return e.latex(freeVar) }
func (e *Exponential) power(v operand) string {
	if e.k == 1 {
		return v.text
	}
	return fmtNum(e.k) + "*" + v.plain()
}
func (e *Exponential) format(v operand) string {
	if e.base == E {
		return "exp(" + e.power(v) + ")"
	}
	return fmtNum(e.base) + "^(" + e.power(v) + ")"
}
func (e *Exponential) latex(v operand) string {
	p := v.text
	if e.k != 1 {
		p = fmtNum(e.k) + " " + v.tex()
	}
	if e.base == E {
		return "e^{" + p + "}"
	}
	return fmtNum(e.base) + "^{" + p + "}"
}
func (e *Exponential) prec() int { return precAtom }
func (e *Exponential) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "exp", "base": e.base, "k": e.k}
}

// ============================================================
// NaturalLog and Logarithm
// ============================================================

// NaturalLog is the function x ↦ ln x.
type NaturalLog struct{}

// Ln returns the natural logarithm.
func Ln() *NaturalLog { return &NaturalLog{} }

func (l *NaturalLog) String() string          { return l.format(freeVar) }
func (l *NaturalLog) LaTeX() string           { return l.latex(freeVar) }
func (l *NaturalLog) format(v operand) string { return "ln(" + v.text + ")" }
func (l *NaturalLog) latex(v operand) string  { return "\\ln\\left(" + v.text + "\\right)" }
func (l *NaturalLog) prec() int               { return precAtom }
func (l *NaturalLog) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "ln"}
}

// Logarithm is the function x ↦ log_b x = ln x / ln b.
type Logarithm struct{ base float64 }

// Log returns the logarithm to the given base.
func Log(base float64) *Logarithm { return &Logarithm{base: base} }

// Base returns b.
func (l *Logarithm) Base() float64 { return l.base }

func (l *Logarithm) String() string { return l.format(freeVar) }
func (l *Logarithm) LaTeX() string  { return l.latex(freeVar) }
func (l *Logarithm) format(v operand) string {
	return "log_" + fmtNum(l.base) + "(" + v.text + ")"
}
func (l *Logarithm) latex(v operand) string {
	return "\\log_{" + fmtNum(l.base) + "}\\left(" + v.text + "\\right)"
}
func (l *Logarithm) prec() int { return precAtom }
func (l *Logarithm) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "log", "base": l.base}
}

// ============================================================
// Negate
// ============================================================

// Negate is −f.
type Negate struct{ arg Func }

// NegOf returns −f.
func NegOf(f Func) *Negate {
	mustFunc("neg", f)
	return &Negate{arg: f}
}

// Arg returns the negated function.
func (n *Negate) Arg() Func { return n.arg }

func (n *Negate) String() string { return n.format(freeVar) }
func (n *Negate) LaTeX() string  { return n.latex(freeVar) }
func (n *Negate) format(v operand) string {
	return "-" + wrap(n.arg, v, precProduct)
}
func (n *Negate) latex(v operand) string {
	return "-" + wrapTeX(n.arg, v, precProduct)
}
func (n *Negate) prec() int { return precSum }
func (n *Negate) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "neg", "arg": n.arg.toJSON()}
}

// ============================================================
// Add: sum of terms
// ============================================================

// Add is f1 + f2 + … + fn. The empty sum is 0.
type Add struct{ terms []Func }

// AddOf returns the sum of the given terms.
func AddOf(terms ...Func) *Add {
	mustFunc("add", terms...)
	return &Add{terms: cloneFuncs(terms)}
}

func (a *Add) Terms() []Func { return cloneFuncs(a.terms) }

func (a *Add) String() string { return a.format(freeVar) }
func (a *Add) LaTeX() string  { return a.latex(freeVar) }
func (a *Add) format(v operand) string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.format(v)
	}
	return strings.Join(parts, " + ")
}
func (a *Add) latex(v operand) string {
	if len(a.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.latex(v)
	}
	return strings.Join(parts, " + ")
}
func (a *Add) prec() int {
	if len(a.terms) == 1 {
		return a.terms[0].prec()
	}
	if len(a.terms) == 0 {
		return precAtom
	}
	return precSum
}
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}

// ============================================================
// Subtract
// ============================================================

// Subtract is f − g.
type Subtract struct{ left, right Func }

// SubOf returns f − g.
func SubOf(f, g Func) *Subtract {
	mustFunc("sub", f, g)
	return &Subtract{left: f, right: g}
}

// Left returns the minuend f of f − g.
func (s *Subtract) Left() Func { return s.left }

// Right returns the subtrahend g of f − g.
func (s *Subtract) Right() Func { return s.right }

func (s *Subtract) String() string { return s.format(freeVar) }
func (s *Subtract) LaTeX() string  { return s.latex(freeVar) }
func (s *Subtract) format(v operand) string {
	return s.left.format(v) + " - " + wrap(s.right, v, precProduct)
}
func (s *Subtract) latex(v operand) string {
	return s.left.latex(v) + " - " + wrapTeX(s.right, v, precProduct)
}
func (s *Subtract) prec() int { return precSum }
func (s *Subtract) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sub", "left": s.left.toJSON(), "right": s.right.toJSON()}
}

// ============================================================
// Multiply: product of factors
// ============================================================

// Multiply is f1 · f2 · … · fn. The empty product is 1.
type Multiply struct{ factors []Func }

// MulOf returns the product of the given factors.
func MulOf(factors ...Func) *Multiply {
	mustFunc("mul", factors...)
	return &Multiply{factors: cloneFuncs(factors)}
}

func (m *Multiply) Factors() []Func { return cloneFuncs(m.factors) }

func (m *Multiply) String() string { return m.format(freeVar) }
func (m *Multiply) LaTeX() string  { return m.latex(freeVar) }
func (m *Multiply) format(v operand) string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = wrap(f, v, precProduct)
	}
	return strings.Join(parts, "*")
}
func (m *Multiply) latex(v operand) string {
	if len(m.factors) == 0 {
		return "1"
	}
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = wrapTeX(f, v, precProduct)
	}
	return strings.Join(parts, " \\cdot ")
}
func (m *Multiply) prec() int {
	if len(m.factors) == 1 {
		return m.factors[0].prec()
	}
	if len(m.factors) == 0 {
		return precAtom
	}
	return precProduct
}
func (m *Multiply) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}

// ============================================================
// Divide
// ============================================================

// Divide is f / g.
type Divide struct{ num, den Func }

// DivOf returns f / g.
func DivOf(f, g Func) *Divide {
	mustFunc("div", f, g)
	return &Divide{num: f, den: g}
}

func (d *Divide) Numerator() Func   { return d.num }
func (d *Divide) Denominator() Func { return d.den }

func (d *Divide) String() string { return d.format(freeVar) }
func (d *Divide) LaTeX() string  { return d.latex(freeVar) }
func (d *Divide) format(v operand) string {
	return wrap(d.num, v, precProduct) + "/" + wrap(d.den, v, precAtom)
}
func (d *Divide) latex(v operand) string {
	return "\\frac{" + d.num.latex(v) + "}{" + d.den.latex(v) + "}"
}
func (d *Divide) prec() int { return precProduct }
func (d *Divide) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "div", "num": d.num.toJSON(), "den": d.den.toJSON()}
}

// ============================================================
// Compose: outer(inner(x))
// ============================================================

// Compose is outer ∘ inner, the function x ↦ outer(inner(x)).
type Compose struct{ outer, inner Func }

// ComposeOf returns outer ∘ inner.
func ComposeOf(outer, inner Func) *Compose {
	mustFunc("compose", outer, inner)
	return &Compose{outer: outer, inner: inner}
}

// Outer and Inner return the two sides of outer(inner(x)).
func (c *Compose) Outer() Func { return c.outer }
func (c *Compose) Inner() Func { return c.inner }

func (c *Compose) String() string { return c.format(freeVar) }
func (c *Compose) LaTeX() string  { return c.latex(freeVar) }
func (c *Compose) format(v operand) string {
	return c.outer.format(operand{text: c.inner.format(v), atom: c.inner.prec() == precAtom})
}
func (c *Compose) latex(v operand) string {
	return c.outer.latex(operand{text: c.inner.latex(v), atom: c.inner.prec() == precAtom})
}
func (c *Compose) prec() int { return c.outer.prec() }
func (c *Compose) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "compose", "outer": c.outer.toJSON(), "inner": c.inner.toJSON()}
}

// ============================================================
// PowerCompose: base(x)^exp(x)
// ============================================================

// PowerCompose is the function x ↦ base(x)^exp(x).
type PowerCompose struct{ base, exp Func }

// PowComposeOf returns base^exp.
func PowComposeOf(base, exp Func) *PowerCompose {
	mustFunc("powcompose", base, exp)
	return &PowerCompose{base: base, exp: exp}
}

// Base returns the function raised to the power.
func (p *PowerCompose) Base() Func { return p.base }

// Exponent returns the function used as the power.
func (p *PowerCompose) Exponent() Func { return p.exp }

func (p *PowerCompose) String() string { return p.format(freeVar) }
func (p *PowerCompose) LaTeX() string  { return p.latex(freeVar) }
func (p *PowerCompose) format(v operand) string {
	return wrap(p.base, v, precAtom) + "^" + wrap(p.exp, v, precAtom)
}
func (p *PowerCompose) latex(v operand) string {
	return wrapTeX(p.base, v, precAtom) + "^{" + p.exp.latex(v) + "}"
}
func (p *PowerCompose) prec() int { return precProduct }
func (p *PowerCompose) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "powcompose", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}

// ============================================================
// Top-level convenience functions
// ============================================================

// String renders f as plain text in the variable x.
func String(f Func) string { return f.String() }

// LaTeX renders f as a LaTeX math expression.
func LaTeX(f Func) string { return f.LaTeX() }

// Derive returns the first derivative of f.
func Derive(f Func) Func { return Derivative(f, 1) }

// Derive2 returns the second derivative of f.
func Derive2(f Func) Func { return Derivative(f, 2) }
