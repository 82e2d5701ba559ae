package symbolic

import (
	"fmt"
	"math"
)

// Compile translates expr into a numeric function of the single
// variable varName. The returned function is pure: it closes over
// constants folded at compile time and carries no mutable state, so
// repeated evaluation over the same inputs is bit-identical.
//
// Non-finite results (negative bases under even roots, negative powers
// of zero) are not errors; they propagate as NaN or ±Inf exactly as
// math.Pow produces them, and callers decide how to present them.
func Compile(e Expr, varName string) (func(float64) float64, error) {
	for name := range FreeSymbols(e) {
		if name != varName {
			return nil, fmt.Errorf("symbolic: compile: expression contains symbol %q, want only %q", name, varName)
		}
	}
	return compile(e.Simplify(), varName)
}

func compile(e Expr, varName string) (func(float64) float64, error) {
	switch v := e.(type) {
	case *Num:
		c := v.Float64()
		return func(float64) float64 { return c }, nil

	case *Sym:
		if v.name != varName {
			return nil, fmt.Errorf("symbolic: compile: unexpected symbol %q", v.name)
		}
		return func(x float64) float64 { return x }, nil

	case *Add:
		fns, err := compileAll(v.terms, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 {
			sum := 0.0
			for _, f := range fns {
				sum += f(x)
			}
			return sum
		}, nil

	case *Mul:
		fns, err := compileAll(v.factors, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 {
			prod := 1.0
			for _, f := range fns {
				prod *= f(x)
			}
			return prod
		}, nil

	case *Pow:
		base, err := compile(v.base, varName)
		if err != nil {
			return nil, err
		}
		// Small integer exponents avoid math.Pow on the hot path.
		if en, ok := v.exp.(*Num); ok && en.IsInteger() {
			if e := en.Rat().Num().Int64(); e >= 2 && e <= 16 {
				return func(x float64) float64 {
					b := base(x)
					r := b
					for i := int64(1); i < e; i++ {
						r *= b
					}
					return r
				}, nil
			}
		}
		exp, err := compile(v.exp, varName)
		if err != nil {
			return nil, err
		}
		return func(x float64) float64 { return math.Pow(base(x), exp(x)) }, nil

	case *Call:
		arg, err := compile(v.arg, varName)
		if err != nil {
			return nil, err
		}
		switch v.name {
		case "sin":
			return func(x float64) float64 { return math.Sin(arg(x)) }, nil
		case "cos":
			return func(x float64) float64 { return math.Cos(arg(x)) }, nil
		case "abs":
			return func(x float64) float64 { return math.Abs(arg(x)) }, nil
		}
		return nil, fmt.Errorf("symbolic: compile: unknown function %q", v.name)
	}
	return nil, fmt.Errorf("symbolic: compile: unsupported expression %T", e)
}

func compileAll(exprs []Expr, varName string) ([]func(float64) float64, error) {
	fns := make([]func(float64) float64, len(exprs))
	for i, e := range exprs {
		f, err := compile(e, varName)
		if err != nil {
			return nil, err
		}
		fns[i] = f
	}
	return fns, nil
}
