// Package plot renders run and sweep results to PNG files with gonum/plot.
package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ristakaen/PlasmaTransition/internal/dynamics"
)

var lineColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, name string, xs, ys []float64, idx int) error {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = lineColors[idx%len(lineColors)]
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create plot directory: %w", err)
		}
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// SaveTrajectory draws the three histories against physical time. The
// x-range is capped at the equilibrium time so the long settled tail does
// not flatten the interesting part of the plot.
func SaveTrajectory(path, title string, res *dynamics.Result) error {
	if len(res.Times) == 0 {
		return fmt.Errorf("plot: empty trajectory")
	}

	cut := len(res.Times)
	for i, t := range res.Times {
		if t > res.EquilibriumTime {
			cut = i + 1
			break
		}
	}

	p := newPlot(title, "t", "N, E, V")
	if err := addLine(p, "N", res.Times[:cut], res.N[:cut], 0); err != nil {
		return err
	}
	if err := addLine(p, "E", res.Times[:cut], res.E[:cut], 1); err != nil {
		return err
	}
	if err := addLine(p, "V", res.Times[:cut], res.V[:cut], 2); err != nil {
		return err
	}
	p.Legend.Top = true
	return save(p, path)
}

// SaveSweep draws the final flow-shear gradient against source strength.
func SaveSweep(path string, sValues, finalV []float64) error {
	if len(sValues) != len(finalV) || len(sValues) == 0 {
		return fmt.Errorf("plot: sweep data invalid")
	}

	p := newPlot("Final flow-shear gradient vs source strength", "S", "final V")
	pts := make(plotter.XYs, len(sValues))
	for i := range sValues {
		pts[i].X = sValues[i]
		pts[i].Y = finalV[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = lineColors[0]
	points.Shape = draw.CircleGlyph{}
	points.Color = lineColors[1]
	p.Add(line, points)
	return save(p, path)
}
