package sphharm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/pyfar/spherical-harmonic-definitions/symbolic"
)

// DefaultSamples is the sample-grid resolution used for the
// comparison figures.
const DefaultSamples = 1000

// SampleGrid returns count evenly spaced points over [−1, 1]. The
// slice is shared read-only across plot calls by convention.
func SampleGrid(count int) []float64 {
	if count < 2 {
		count = 2
	}
	return floats.Span(make([]float64, count), -1, 1)
}

type nmKey struct{ n, m int }

type tableEntry struct {
	expr symbolic.Expr
	fn   func(float64) float64
}

// FunctionTable holds, for every valid (n, m) with n ≤ nMax, the
// symbolic closed form of P_n^m under one definition together with
// its compiled numeric evaluator. The table is immutable after
// construction.
type FunctionTable struct {
	def     Definition
	nMax    int
	entries map[nmKey]tableEntry
}

// NewFunctionTable derives and compiles all (nMax+1)² closed forms
// for the chosen definition.
func NewFunctionTable(def Definition, nMax int) (*FunctionTable, error) {
	if nMax < 0 {
		return nil, fmt.Errorf("sphharm: maximum degree must be non-negative, got %d", nMax)
	}
	t := &FunctionTable{
		def:     def,
		nMax:    nMax,
		entries: make(map[nmKey]tableEntry, (nMax+1)*(nMax+1)),
	}
	for n := 0; n <= nMax; n++ {
		for m := -n; m <= n; m++ {
			expr, err := LegendreExpr(def, n, m)
			if err != nil {
				return nil, err
			}
			fn, err := symbolic.Compile(expr, Var)
			if err != nil {
				return nil, fmt.Errorf("sphharm: compiling %v P_%d^%d: %w", def, n, m, err)
			}
			t.entries[nmKey{n, m}] = tableEntry{expr: expr, fn: fn}
		}
	}
	return t, nil
}

// Definition reports which definition the table was built from.
func (t *FunctionTable) Definition() Definition { return t.def }

// NMax reports the maximum degree the table covers.
func (t *FunctionTable) NMax() int { return t.nMax }

func (t *FunctionTable) entry(n, m int) (tableEntry, error) {
	e, ok := t.entries[nmKey{n, m}]
	if !ok {
		return tableEntry{}, fmt.Errorf("sphharm: no table entry for n=%d, m=%d (nMax=%d)", n, m, t.nMax)
	}
	return e, nil
}

// Expr returns the symbolic closed form of P_n^m.
func (t *FunctionTable) Expr(n, m int) (symbolic.Expr, error) {
	e, err := t.entry(n, m)
	if err != nil {
		return nil, err
	}
	return e.expr, nil
}

// LaTeX renders the closed form of P_n^m.
func (t *FunctionTable) LaTeX(n, m int) (string, error) {
	e, err := t.entry(n, m)
	if err != nil {
		return "", err
	}
	return e.expr.LaTeX(), nil
}

// Eval evaluates the compiled candidate over xs. Non-finite values at
// the domain endpoints (negative half-powers of 1−x² at x = ±1) are
// passed through for the caller to render as gaps, never treated as
// errors.
func (t *FunctionTable) Eval(n, m int, xs []float64) ([]float64, error) {
	e, err := t.entry(n, m)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.fn(x)
	}
	return out, nil
}
