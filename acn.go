package sphharm

import (
	"fmt"
	"math"
)

// Nm2Acn returns the ambisonic channel number for spherical harmonic
// degree n and order m: acn = n² + n + m. The mapping is a bijection
// onto {0, …, (nMax+1)²−1}; an inconsistent pair (n < 0 or |m| > n)
// is rejected.
func Nm2Acn(n, m int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("sphharm: degree must be non-negative, got n=%d", n)
	}
	if m < -n || m > n {
		return 0, fmt.Errorf("sphharm: order out of range: need |m| <= n, got n=%d, m=%d", n, m)
	}
	return n*n + n + m, nil
}

// Acn2Nm inverts Nm2Acn: n = floor(sqrt(acn)), m = acn − n² − n.
func Acn2Nm(acn int) (n, m int, err error) {
	if acn < 0 {
		return 0, 0, fmt.Errorf("sphharm: channel number must be non-negative, got %d", acn)
	}
	n = int(math.Sqrt(float64(acn)))
	// Guard against float rounding at perfect squares.
	for (n+1)*(n+1) <= acn {
		n++
	}
	for n*n > acn {
		n--
	}
	return n, acn - n*n - n, nil
}
