package figure_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	sphharm "github.com/pyfar/spherical-harmonic-definitions"
	"github.com/pyfar/spherical-harmonic-definitions/figure"
)

func TestNewGrid_Dimensions(t *testing.T) {
	g, err := figure.NewGrid(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 5, g.Cols())

	_, err = figure.NewGrid(0, 5)
	assert.Error(t, err)
	_, err = figure.NewGrid(3, -1)
	assert.Error(t, err)
}

func TestGrid_SetCell(t *testing.T) {
	g, err := figure.NewGrid(2, 2)
	require.NoError(t, err)

	xs := []float64{-1, 0, 1}
	err = g.SetCell(0, 1, "n = 0, m = 0", figure.Curve{X: xs, Y: []float64{1, 1, 1}})
	require.NoError(t, err)

	assert.True(t, g.Populated(0, 1))
	assert.False(t, g.Populated(0, 0))
	assert.False(t, g.Populated(1, 1))
}

func TestGrid_SetCell_OutOfRange(t *testing.T) {
	g, err := figure.NewGrid(2, 2)
	require.NoError(t, err)
	err = g.SetCell(2, 0, "oob")
	assert.Error(t, err)
	err = g.SetCell(0, -1, "oob")
	assert.Error(t, err)
}

func TestGrid_SetCell_LengthMismatch(t *testing.T) {
	g, err := figure.NewGrid(1, 1)
	require.NoError(t, err)
	err = g.SetCell(0, 0, "bad", figure.Curve{X: []float64{0, 1}, Y: []float64{0}})
	assert.Error(t, err)
}

func TestGrid_SetCell_NonFiniteSamples(t *testing.T) {
	// Singular endpoints must render as gaps, not fail the cell.
	g, err := figure.NewGrid(1, 1)
	require.NoError(t, err)
	xs := []float64{-1, -0.5, 0, 0.5, 1}
	ys := []float64{math.NaN(), 2, 1, 2, math.Inf(1)}
	err = g.SetCell(0, 0, "singular", figure.Curve{X: xs, Y: ys, Label: "candidate"})
	require.NoError(t, err)
	assert.True(t, g.Populated(0, 0))
}

func TestGrid_WritePNG(t *testing.T) {
	g, err := figure.NewGrid(2, 3)
	require.NoError(t, err)
	xs := []float64{-1, 0, 1}
	require.NoError(t, g.SetCell(0, 1, "top", figure.Curve{X: xs, Y: []float64{0, 1, 0}}))
	require.NoError(t, g.SetCell(1, 0, "bottom",
		figure.Curve{X: xs, Y: []float64{-1, 0, 1}, Label: "a"},
		figure.Curve{X: xs, Y: []float64{1, 0, -1}, Label: "b", Dotted: true},
	))

	var buf bytes.Buffer
	require.NoError(t, g.WritePNG(&buf, 10*vg.Centimeter, 6*vg.Centimeter))
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])
}

func TestLegendreGrid_Layout(t *testing.T) {
	table, err := sphharm.NewFunctionTable(sphharm.Williams, 2)
	require.NoError(t, err)
	xs := sphharm.SampleGrid(64)

	g, err := figure.LegendreGrid(table, xs)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 5, g.Cols())

	// Row n holds cells at columns nMax+m for -n <= m <= n; the
	// corners with |m| > n stay blank.
	for n := 0; n <= 2; n++ {
		for col := 0; col < 5; col++ {
			m := col - 2
			want := m >= -n && m <= n
			assert.Equal(t, want, g.Populated(n, col), "n=%d col=%d", n, col)
		}
	}
}

func TestLegendreGrid_SingularDefinition(t *testing.T) {
	// Zotter-Frank negative orders are non-finite at the endpoints;
	// the grid must still assemble and render.
	table, err := sphharm.NewFunctionTable(sphharm.ZotterFrank, 2)
	require.NoError(t, err)
	xs := sphharm.SampleGrid(64)

	g, err := figure.LegendreGrid(table, xs)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, g.WritePNG(&buf, 12*vg.Centimeter, 8*vg.Centimeter))
	assert.Greater(t, buf.Len(), 0)
}
