package sphharm

import (
	"fmt"

	"github.com/pyfar/spherical-harmonic-definitions/symbolic"
)

// Var is the symbol the Legendre closed forms are expressed in.
const Var = "x"

// Definition selects one of the published associated Legendre
// function definitions.
type Definition int

const (
	// Williams is the Williams/Rafaely definition: the Condon–Shortley
	// phase, an explicit even/odd-m construction of (1−x²)^(m/2), and
	// the factorial recurrence for negative orders.
	Williams Definition = iota
	// ZotterFrank is the unified Rodrigues form with derivative order
	// n+m, valid for the full order range −n ≤ m ≤ n.
	ZotterFrank
	// AES69 is the AES69-2015 definition, which omits the
	// Condon–Shortley phase.
	AES69
)

// Definitions lists all variants in presentation order.
var Definitions = []Definition{Williams, ZotterFrank, AES69}

func (d Definition) String() string {
	switch d {
	case Williams:
		return "Williams/Rafaely"
	case ZotterFrank:
		return "Zotter-Frank"
	case AES69:
		return "AES69"
	}
	return fmt.Sprintf("Definition(%d)", int(d))
}

// PhaseFactor is the documented sign relation between this definition
// and the reference evaluator (which includes the Condon–Shortley
// phase): candidate(x) == PhaseFactor(m) * reference(x) on (−1, 1).
func (d Definition) PhaseFactor(m int) float64 {
	if d == AES69 && m%2 != 0 {
		return -1
	}
	return 1
}

// LegendreExpr builds the closed form of P_n^m under the chosen
// definition as a symbolic expression in Var.
func LegendreExpr(def Definition, n, m int) (symbolic.Expr, error) {
	if n < 0 {
		return nil, fmt.Errorf("sphharm: degree must be non-negative, got n=%d", n)
	}
	if m < -n || m > n {
		return nil, fmt.Errorf("sphharm: order out of range: need |m| <= n, got n=%d, m=%d", n, m)
	}
	switch def {
	case Williams:
		return williamsExpr(n, m), nil
	case ZotterFrank:
		return zotterFrankExpr(n, m), nil
	case AES69:
		return aes69Expr(n, m), nil
	}
	return nil, fmt.Errorf("sphharm: unknown definition %d", int(def))
}

// legendrePoly returns the Legendre polynomial P_n(x) via Rodrigues'
// formula: 1/(2ⁿ n!) dⁿ/dxⁿ (x²−1)ⁿ.
func legendrePoly(n int) symbolic.Expr {
	d := symbolic.DiffN(rodriguesBase(n), Var, n)
	return symbolic.MulOf(rodriguesScale(n), d)
}

// rodriguesBase is (x²−1)ⁿ, expanded so DiffN works on plain
// polynomial form.
func rodriguesBase(n int) symbolic.Expr {
	x := symbolic.S(Var)
	return symbolic.Expand(symbolic.PowOf(
		symbolic.AddOf(symbolic.PowOf(x, symbolic.N(2)), symbolic.N(-1)),
		symbolic.N(int64(n)),
	))
}

// rodriguesScale is 1/(2ⁿ n!).
func rodriguesScale(n int) symbolic.Expr {
	return symbolic.PowOf(
		symbolic.MulOf(symbolic.PowOf(symbolic.N(2), symbolic.N(int64(n))), symbolic.Factorial(n)),
		symbolic.N(-1),
	)
}

// oneMinusX2 is 1 − x².
func oneMinusX2() symbolic.Expr {
	return symbolic.AddOf(symbolic.N(1), symbolic.MulOf(symbolic.N(-1), symbolic.PowOf(symbolic.S(Var), symbolic.N(2))))
}

// halfPower builds (1−x²)^(m/2) for m ≥ 0 with the even/odd split the
// Williams/Rafaely source writes out: an exact integer power for even
// m, and an integer power times a square root for odd m.
func halfPower(m int) symbolic.Expr {
	if m%2 == 0 {
		return symbolic.PowOf(oneMinusX2(), symbolic.N(int64(m/2)))
	}
	return symbolic.MulOf(
		symbolic.PowOf(oneMinusX2(), symbolic.N(int64((m-1)/2))),
		symbolic.SqrtOf(oneMinusX2()),
	)
}

// condonShortley is (−1)^m.
func condonShortley(m int) symbolic.Expr {
	if m%2 != 0 {
		return symbolic.N(-1)
	}
	return symbolic.N(1)
}

// factorialRatio is (n−k)!/(n+k)! for 0 ≤ k ≤ n, exact.
func factorialRatio(n, k int) symbolic.Expr {
	return symbolic.MulOf(
		symbolic.Factorial(n-k),
		symbolic.PowOf(symbolic.Factorial(n+k), symbolic.N(-1)),
	)
}

// williamsExpr: (−1)^m (1−x²)^(m/2) d^m/dx^m P_n(x) for m ≥ 0, and
// the recurrence (−1)^|m| (n−|m|)!/(n+|m|)! P_n^|m| for m < 0.
func williamsExpr(n, m int) symbolic.Expr {
	if m < 0 {
		k := -m
		return symbolic.MulOf(condonShortley(k), factorialRatio(n, k), williamsExpr(n, k))
	}
	dm := symbolic.DiffN(legendrePoly(n), Var, m)
	return symbolic.MulOf(condonShortley(m), halfPower(m), dm)
}

// zotterFrankExpr: (−1)^m/(2ⁿ n!) (1−x²)^(m/2) d^(n+m)/dx^(n+m)
// (x²−1)ⁿ, directly for every m in [−n, n]. Negative orders carry a
// negative half-power of (1−x²) and are singular at x = ±1.
func zotterFrankExpr(n, m int) symbolic.Expr {
	d := symbolic.DiffN(rodriguesBase(n), Var, n+m)
	return symbolic.MulOf(
		condonShortley(m),
		rodriguesScale(n),
		symbolic.PowOf(oneMinusX2(), symbolic.F(int64(m), 2)),
		d,
	)
}

// aes69Expr is the Williams/Rafaely construction with the
// Condon–Shortley phase omitted; negative orders use the same
// factorial recurrence applied to the phase-free function.
func aes69Expr(n, m int) symbolic.Expr {
	if m < 0 {
		k := -m
		return symbolic.MulOf(condonShortley(k), factorialRatio(n, k), aes69Expr(n, k))
	}
	dm := symbolic.DiffN(legendrePoly(n), Var, m)
	return symbolic.MulOf(halfPower(m), dm)
}
