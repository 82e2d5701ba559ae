// cmd/shfig — renders the associated Legendre comparison figures.
//
// One figure per definition variant: every valid (n, m) up to the
// requested maximum degree gets a subplot overlaying the symbolically
// derived candidate on the dotted reference curve.
//
// Usage:
//
//	shfig --n-max 2 --samples 1000 --out .
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	sphharm "github.com/pyfar/spherical-harmonic-definitions"
	"github.com/pyfar/spherical-harmonic-definitions/figure"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		nMax       int
		samples    int
		outDir     string
		definition string
		widthCm    float64
		heightCm   float64
	)

	cmd := &cobra.Command{
		Use:           "shfig",
		Short:         "Render associated Legendre definition comparison figures",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			defs, err := selectDefinitions(definition)
			if err != nil {
				return err
			}
			xs := sphharm.SampleGrid(samples)

			for _, def := range defs {
				table, err := sphharm.NewFunctionTable(def, nMax)
				if err != nil {
					return fmt.Errorf("building %v table: %w", def, err)
				}
				grid, err := figure.LegendreGrid(table, xs)
				if err != nil {
					return fmt.Errorf("arranging %v figure: %w", def, err)
				}
				path := filepath.Join(outDir, fileName(def))
				w := vg.Length(widthCm) * vg.Centimeter
				h := vg.Length(heightCm) * vg.Centimeter
				if err := grid.SavePNG(path, w, h); err != nil {
					return fmt.Errorf("rendering %v figure: %w", def, err)
				}
				logger.Info("figure rendered",
					zap.String("definition", def.String()),
					zap.String("path", path),
					zap.Int("n_max", nMax),
					zap.Int("samples", len(xs)),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&nMax, "n-max", 2, "maximum spherical harmonic degree")
	cmd.Flags().IntVar(&samples, "samples", sphharm.DefaultSamples, "sample grid resolution over [-1, 1]")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().StringVar(&definition, "definition", "all", "definition to render: all, williams, zotter-frank, or aes69")
	cmd.Flags().Float64Var(&widthCm, "width", 30, "figure width in centimeters")
	cmd.Flags().Float64Var(&heightCm, "height", 18, "figure height in centimeters")

	return cmd
}

func selectDefinitions(name string) ([]sphharm.Definition, error) {
	switch strings.ToLower(name) {
	case "all":
		return sphharm.Definitions, nil
	case "williams":
		return []sphharm.Definition{sphharm.Williams}, nil
	case "zotter-frank":
		return []sphharm.Definition{sphharm.ZotterFrank}, nil
	case "aes69":
		return []sphharm.Definition{sphharm.AES69}, nil
	}
	return nil, fmt.Errorf("unknown definition %q", name)
}

func fileName(def sphharm.Definition) string {
	switch def {
	case sphharm.Williams:
		return "legendre_williams.png"
	case sphharm.ZotterFrank:
		return "legendre_zotter_frank.png"
	case sphharm.AES69:
		return "legendre_aes69.png"
	}
	return "legendre.png"
}
