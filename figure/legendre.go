package figure

import (
	"fmt"

	sphharm "github.com/pyfar/spherical-harmonic-definitions"
)

// LegendreGrid lays out the comparison figure for one definition
// table: an (nMax+1) × (2·nMax+1) grid where the cell for (n, m)
// sits at row n, column nMax+m. Each populated cell overlays the
// compiled candidate on the dotted reference curve; cells with
// |m| > n stay blank.
func LegendreGrid(table *sphharm.FunctionTable, xs []float64) (*Grid, error) {
	nMax := table.NMax()
	g, err := NewGrid(nMax+1, 2*nMax+1)
	if err != nil {
		return nil, err
	}
	for n := 0; n <= nMax; n++ {
		for m := -n; m <= n; m++ {
			ys, err := table.Eval(n, m, xs)
			if err != nil {
				return nil, err
			}
			ref := sphharm.AssocLegendreSlice(m, n, xs)
			title := fmt.Sprintf("n = %d, m = %d", n, m)
			err = g.SetCell(n, nMax+m, title,
				Curve{X: xs, Y: ys, Label: table.Definition().String()},
				Curve{X: xs, Y: ref, Label: "reference", Dotted: true},
			)
			if err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
