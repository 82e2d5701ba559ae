// Package figure arranges comparison curves into a multi-panel grid
// figure. The grid owns its cell array explicitly: callers populate
// cells with SetCell and render once, so there is no ambient global
// figure state. Cells that are never set stay blank.
package figure

import (
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Curve is one line series in a cell. Dotted marks the trusted
// reference overlay.
type Curve struct {
	X, Y   []float64
	Label  string
	Dotted bool
}

// Grid is a rows × cols arrangement of plot cells.
type Grid struct {
	rows, cols int
	cells      [][]*plot.Plot
}

// NewGrid allocates an empty grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("figure: grid dimensions must be positive, got %dx%d", rows, cols)
	}
	cells := make([][]*plot.Plot, rows)
	for i := range cells {
		cells[i] = make([]*plot.Plot, cols)
	}
	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Populated reports whether a cell has been set.
func (g *Grid) Populated(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols && g.cells[row][col] != nil
}

// SetCell draws the given curves into the cell at (row, col).
// Non-finite samples (NaN, ±Inf) split a curve into its finite
// segments, so singularities at the domain endpoints render as gaps
// instead of failing the figure.
func (g *Grid) SetCell(row, col int, title string, curves ...Curve) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return fmt.Errorf("figure: cell (%d,%d) out of range for %dx%d grid", row, col, g.rows, g.cols)
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.X.Tick.Label.Font.Size = vg.Points(6)
	p.Y.Tick.Label.Font.Size = vg.Points(6)
	p.Legend.TextStyle.Font.Size = vg.Points(6)
	p.Legend.Top = true

	for i, c := range curves {
		if len(c.X) != len(c.Y) {
			return fmt.Errorf("figure: curve %d: len(X)=%d, len(Y)=%d", i, len(c.X), len(c.Y))
		}
		var thumb *plotter.Line
		for _, seg := range finiteSegments(c.X, c.Y) {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("figure: cell (%d,%d): %w", row, col, err)
			}
			l.Color = plotutil.Color(i)
			if c.Dotted {
				l.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
			}
			p.Add(l)
			thumb = l
		}
		if c.Label != "" && thumb != nil {
			p.Legend.Add(c.Label, thumb)
		}
	}
	g.cells[row][col] = p
	return nil
}

// finiteSegments splits a sampled curve at non-finite points,
// returning only the drawable pieces.
func finiteSegments(xs, ys []float64) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			if len(cur) > 1 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 1 {
		segs = append(segs, cur)
	}
	return segs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WritePNG composes the populated cells into one multi-panel PNG.
func (g *Grid) WritePNG(w io.Writer, width, height vg.Length) error {
	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      g.rows,
		Cols:      g.cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Millimeter,
		PadBottom: vg.Millimeter,
		PadLeft:   vg.Millimeter,
		PadRight:  vg.Millimeter,
	}
	canvases := plot.Align(g.cells, tiles, dc)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c] != nil {
				g.cells[r][c].Draw(canvases[r][c])
			}
		}
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("figure: encoding png: %w", err)
	}
	return nil
}

// SavePNG renders the grid to a PNG file.
func (g *Grid) SavePNG(path string, width, height vg.Length) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("figure: %w", err)
	}
	if err := g.WritePNG(f, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
