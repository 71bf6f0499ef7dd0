package funcalg

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON renders f as a JSON object tree. Non-finite parameters cannot be
// represented in JSON and make it fail.
func ToJSON(f Func) (string, error) {
	b, err := json.Marshal(f.toJSON())
	return string(b), err
}

// ParseJSON decodes a tree produced by ToJSON.
func ParseJSON(data []byte) (Func, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return FromJSON(m)
}

// FromJSON rebuilds a function from its decoded JSON object. Piecewise
// objects go through PiecewiseOf, so invalid boundaries are reported as
// errors.
func FromJSON(data map[string]interface{}) (Func, error) {
	if data == nil {
		return nil, fmt.Errorf("function must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subNumber := func(field string) (float64, error) {
		v, ok := data[field]
		if !ok {
			return 0, fmt.Errorf("%s: missing %q", typ, field)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("%s: %q must be a number", typ, field)
		}
		return n, nil
	}

	subFunc := func(field string) (Func, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		f, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return f, nil
	}

	subFuncArray := func(field string) ([]Func, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Func, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			f, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = f
		}
		return out, nil
	}

	switch typ {
	case "const":
		v, err := subNumber("value")
		if err != nil {
			return nil, err
		}
		return Const(v), nil

	case "poly":
		raw, ok := data["coeffs"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("poly: %q must be an array of numbers", "coeffs")
		}
		cs := make([]float64, len(raw))
		for i, r := range raw {
			c, ok := r.(float64)
			if !ok {
				return nil, fmt.Errorf("poly: coeffs[%d] must be a number", i)
			}
			cs[i] = c
		}
		return Poly(cs...), nil

	case "power":
		e, err := subNumber("exp")
		if err != nil {
			return nil, err
		}
		m, err := subNumber("mul")
		if err != nil {
			return nil, err
		}
		return Pow(e, m), nil

	case "exp":
		b, err := subNumber("base")
		if err != nil {
			return nil, err
		}
		k, err := subNumber("k")
		if err != nil {
			return nil, err
		}
		return Exp(b, k), nil

	case "ln":
		return Ln(), nil

	case "log":
		b, err := subNumber("base")
		if err != nil {
			return nil, err
		}
		return Log(b), nil

	case "neg":
		arg, err := subFunc("arg")
		if err != nil {
			return nil, err
		}
		return NegOf(arg), nil

	case "add":
		terms, err := subFuncArray("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "sub":
		l, err := subFunc("left")
		if err != nil {
			return nil, err
		}
		r, err := subFunc("right")
		if err != nil {
			return nil, err
		}
		return SubOf(l, r), nil

	case "mul":
		factors, err := subFuncArray("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "div":
		n, err := subFunc("num")
		if err != nil {
			return nil, err
		}
		d, err := subFunc("den")
		if err != nil {
			return nil, err
		}
		return DivOf(n, d), nil

	case "compose":
		o, err := subFunc("outer")
		if err != nil {
			return nil, err
		}
		i, err := subFunc("inner")
		if err != nil {
			return nil, err
		}
		return ComposeOf(o, i), nil

	case "powcompose":
		b, err := subFunc("base")
		if err != nil {
			return nil, err
		}
		e, err := subFunc("exp")
		if err != nil {
			return nil, err
		}
		return PowComposeOf(b, e), nil

	case "piecewise":
		segs, err := subFuncArray("segments")
		if err != nil {
			return nil, err
		}
		points, err := controlPointsFromJSON(data["points"])
		if err != nil {
			return nil, err
		}
		p, err := PiecewiseOf(segs, points)
		if err != nil {
			return nil, fmt.Errorf("piecewise: %w", err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown function type: %s", typ)
}

func controlPointsFromJSON(v interface{}) ([]ControlPoint, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("piecewise: %q must be an array", "points")
	}
	out := make([]ControlPoint, len(raw))
	for i, it := range raw {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("piecewise: points[%d] must be an object", i)
		}
		at, ok := m["at"].(float64)
		if !ok {
			return nil, fmt.Errorf("piecewise: points[%d]: %q must be a number", i, "at")
		}
		out[i].At = at
		side, ok := m["side"].(string)
		if !ok {
			return nil, fmt.Errorf("piecewise: points[%d]: %q must be a string", i, "side")
		}
		if err := out[i].Side.UnmarshalText([]byte(side)); err != nil {
			return nil, fmt.Errorf("piecewise: points[%d]: %w", i, err)
		}
	}
	return out, nil
}
