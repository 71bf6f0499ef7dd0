package main

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/funcalg"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const squareYAML = `
type: poly
coeffs: [1, 0, 0]
`

func TestEvalPoints(t *testing.T) {
	path := writeFile(t, "square.yaml", squareYAML)

	out, err := runCommand(t, "eval", "--file", path, "--x", "0,1,2", "--order", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "f^(1)(x) = ")
	assert.Contains(t, out, "0\t0\n1\t2\n2\t4\n")
}

func TestEvalRange(t *testing.T) {
	path := writeFile(t, "step.json", `{
  "type": "piecewise",
  "segments": [{"type": "const", "value": 0}, {"type": "const", "value": 1}],
  "points": [{"at": 0.5, "side": "left"}]
}`)

	out, err := runCommand(t, "eval", "-f", path, "--from", "0", "--to", "1", "--steps", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "f(x) = piecewise(")
	assert.Contains(t, out, "0\t0\n0.25\t0\n0.5\t1\n0.75\t1\n1\t1\n")
}

func TestEvalSimplifyLaTeX(t *testing.T) {
	path := writeFile(t, "exp.yaml", `
type: exp
base: 2.718281828459045
k: 2
`)
	out, err := runCommand(t, "eval", "-f", path, "--x", "0", "--order", "2", "--simplify", "--latex")
	require.NoError(t, err)
	assert.Contains(t, out, "e^{2 x}")
	assert.Contains(t, out, "0\t4\n")
}

func TestEvalErrors(t *testing.T) {
	good := writeFile(t, "square.yaml", squareYAML)
	bad := writeFile(t, "bad.yaml", "type: sinh\n")

	for name, args := range map[string][]string{
		"no file":        {"eval", "--x", "1"},
		"no points":      {"eval", "-f", good},
		"negative order": {"eval", "-f", good, "--x", "1", "--order", "-1"},
		"order too high": {"eval", "-f", good, "--x", "1", "--order", strconv.Itoa(funcalg.MaxOrder + 1)},
		"unknown type":   {"eval", "-f", bad, "--x", "1"},
		"missing file":   {"eval", "-f", good + ".missing", "--x", "1"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := runCommand(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestSpecCommand(t *testing.T) {
	out, err := runCommand(t, "spec")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "evaluate"`)
}
