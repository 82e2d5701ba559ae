package sphharm

import "math"

// AssocLegendre is the trusted reference evaluator for the associated
// Legendre (Ferrers) function P_n^m(x), including the Condon–Shortley
// phase. It uses the standard stable three-term recurrence: seed
// P_m^m, lift to P_{m+1}^m, then recur upward in degree. Negative
// orders follow P_n^{−m} = (−1)^m (n−m)!/(n+m)! P_n^m.
//
// Arguments outside the valid range (n < 0 or |m| > n) yield NaN.
func AssocLegendre(m, n int, x float64) float64 {
	if n < 0 || m < -n || m > n {
		return math.NaN()
	}
	if m < 0 {
		k := -m
		scale := 1.0
		for i := n - k + 1; i <= n+k; i++ {
			scale /= float64(i)
		}
		if k%2 != 0 {
			scale = -scale
		}
		return scale * assocLegendrePos(k, n, x)
	}
	return assocLegendrePos(m, n, x)
}

func assocLegendrePos(m, n int, x float64) float64 {
	// P_m^m(x) = (−1)^m (2m−1)!! (1−x²)^(m/2)
	pmm := 1.0
	if m > 0 {
		somx2 := math.Sqrt((1 - x) * (1 + x))
		odd := 1.0
		for i := 0; i < m; i++ {
			pmm *= -odd * somx2
			odd += 2
		}
	}
	if n == m {
		return pmm
	}
	pmmp1 := x * float64(2*m+1) * pmm
	if n == m+1 {
		return pmmp1
	}
	var pnm float64
	for k := m + 2; k <= n; k++ {
		pnm = (x*float64(2*k-1)*pmmp1 - float64(k+m-1)*pmm) / float64(k-m)
		pmm, pmmp1 = pmmp1, pnm
	}
	return pnm
}

// AssocLegendreSlice evaluates AssocLegendre over every point of xs.
func AssocLegendreSlice(m, n int, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = AssocLegendre(m, n, x)
	}
	return out
}
