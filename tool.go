package funcalg

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// Tool Interface
// ============================================================

// MaxOrder bounds the derivative order a tool call or the command line may
// request. Unsimplified derivative trees grow faster than exponentially with
// the order, so a few bytes of input could otherwise exhaust memory.
const MaxOrder = 6

// ToolRequest is one call of a named tool with JSON-decoded parameters.
// Functions are passed as the objects produced by ToJSON.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error message. Function
// results are JSON objects and also rendered as text and LaTeX.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool call. Invalid input is reported in
// ToolResponse.Error.
func HandleToolCall(req ToolRequest) ToolResponse {
	getFunc := func(key string) (Func, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		val, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid type for param %s", key)
		}
		return FromJSON(val)
	}
	getNumber := func(key string) (float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		n, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("param %s must be a number", key)
		}
		return n, nil
	}
	getNumbers := func(key string) ([]float64, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		out := make([]float64, len(raw))
		for i, r := range raw {
			n, ok := r.(float64)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be a number", key, i)
			}
			out[i] = n
		}
		return out, nil
	}
	getOrder := func() (int, error) {
		v, ok := req.Params["order"]
		if !ok {
			return 1, nil
		}
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) || n < 0 {
			return 0, fmt.Errorf("param order must be a non-negative integer")
		}
		if n > MaxOrder {
			return 0, fmt.Errorf("param order must be at most %d, got %v", MaxOrder, n)
		}
		return int(n), nil
	}
	getBool := func(key string) (bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return false, nil
		}
		b, ok := v.(bool)
		if !ok {
			return false, fmt.Errorf("param %s must be a boolean", key)
		}
		return b, nil
	}
	respond := func(f Func) ToolResponse {
		return ToolResponse{Result: f.toJSON(), String: f.String(), LaTeX: f.LaTeX()}
	}

	switch req.Tool {
	case "evaluate":
		f, err := getFunc("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getNumber("x")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		v := Evaluate(f, x)
		return ToolResponse{Result: jsonNumber(v), String: fmtNum(v)}

	case "sample":
		f, err := getFunc("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		xs, err := getNumbers("xs")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		order := 0
		if _, ok := req.Params["order"]; ok {
			if order, err = getOrder(); err != nil {
				return ToolResponse{Error: err.Error()}
			}
		}
		ys := Sample(Derivative(f, order), xs)
		out := make([]interface{}, len(ys))
		for i, y := range ys {
			out[i] = jsonNumber(y)
		}
		return ToolResponse{Result: out}

	case "derivative":
		f, err := getFunc("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		order, err := getOrder()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		simplify, err := getBool("simplify")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		d := Derivative(f, order)
		if simplify {
			d = Simplify(d)
		}
		return respond(d)

	case "simplify":
		f, err := getFunc("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(Simplify(f))

	case "to_latex":
		f, err := getFunc("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: f.LaTeX(), LaTeX: f.LaTeX(), String: f.String()}

	case "equal":
		a, err := getFunc("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getFunc("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		eq := Equal(a, b)
		return ToolResponse{Result: eq, String: fmt.Sprint(eq)}

	case "tool_spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// jsonNumber keeps non-finite values encodable: JSON has no NaN or Inf.
func jsonNumber(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmtNum(v)
	}
	return v
}

// ============================================================
// Tool spec
// ============================================================

// ToolSpec returns the JSON schema of every tool HandleToolCall accepts.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts("evaluate", "Evaluate a function at x", []string{"expr", "x"}, map[string]string{"expr": "object", "x": "number"}),
		ts("sample", "Evaluate a function (or its order-th derivative) at every point of xs", []string{"expr", "xs"}, map[string]string{"expr": "object", "xs": "array", "order": "integer"}),
		ts("derivative", fmt.Sprintf("Exact derivative of the given order (default 1, at most %d); optional simplify", MaxOrder), []string{"expr"}, map[string]string{"expr": "object", "order": "integer", "simplify": "boolean"}),
		ts("simplify", "Fold constants and elide identity terms", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("to_latex", "Render a function as LaTeX", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("equal", "Structural equality of two functions", []string{"a", "b"}, map[string]string{"a": "object", "b": "object"}),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
