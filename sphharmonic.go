package sphharm

import (
	"fmt"
	"math"

	"github.com/pyfar/spherical-harmonic-definitions/symbolic"
)

// Normalization selects the real spherical harmonic normalization
// convention used in ambisonics.
type Normalization int

const (
	// N3D is the fully (orthonormal) 3D normalization.
	N3D Normalization = iota
	// SN3D is the Schmidt semi-normalized convention used by AES69 /
	// AmbiX.
	SN3D
)

func (n Normalization) String() string {
	switch n {
	case N3D:
		return "N3D"
	case SN3D:
		return "SN3D"
	}
	return fmt.Sprintf("Normalization(%d)", int(n))
}

// RealSphericalHarmonic evaluates the real spherical harmonic
// Y_n^m(θ, φ) for the channel acn, with colatitude theta and azimuth
// phi in radians. The ambisonics convention is phase-free, so the
// Condon–Shortley phase carried by the reference Legendre evaluator
// is stripped before normalization.
func RealSphericalHarmonic(acn int, theta, phi float64, norm Normalization) (float64, error) {
	n, m, err := Acn2Nm(acn)
	if err != nil {
		return 0, err
	}
	k := m
	if k < 0 {
		k = -k
	}
	p := AssocLegendre(k, n, math.Cos(theta))
	if k%2 != 0 {
		p = -p
	}

	// SN3D: sqrt((2−δ_{m0}) (n−|m|)!/(n+|m|)!)
	ratio := 1.0
	for i := n - k + 1; i <= n+k; i++ {
		ratio /= float64(i)
	}
	scale := 2.0
	if m == 0 {
		scale = 1.0
	}
	norm3 := math.Sqrt(scale * ratio)
	if norm == N3D {
		norm3 *= math.Sqrt(float64(2*n + 1))
	}

	az := math.Cos(float64(m) * phi)
	if m < 0 {
		az = math.Sin(float64(k) * phi)
	}
	return norm3 * p * az, nil
}

// ColatitudeForm substitutes x → cos(θ) so a Legendre closed form
// reads as the colatitude part P_n^m(cos θ) of a spherical harmonic.
func ColatitudeForm(e symbolic.Expr) symbolic.Expr {
	return symbolic.Sub(e, Var, symbolic.CosOf(symbolic.S("theta")))
}
