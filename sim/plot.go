package sim

import (
	"fmt"
	"image/color"

	"github.com/navstack/ins16ekf/quat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PlotTrack renders a track's true and estimated North/East position as a
// scatter plot, truth as pyramids and estimate as crosses, matching the
// teacher harness's model/filter scatter convention.
func PlotTrack(track Track) (*plot.Plot, error) {
	if len(track.TruePosition) == 0 {
		return nil, fmt.Errorf("sim: empty track")
	}

	p := plot.New()
	p.Title.Text = "NED track: north vs east"
	p.X.Label.Text = "East (m)"
	p.Y.Label.Text = "North (m)"

	legend := plot.NewLegend()
	legend.Top = true
	p.Legend = legend

	truePts := northEastPoints(track.TruePosition)
	trueScatter, err := plotter.NewScatter(truePts)
	if err != nil {
		return nil, err
	}
	trueScatter.GlyphStyle.Color = color.RGBA{R: 255, B: 128, A: 255}
	trueScatter.Shape = draw.PyramidGlyph{}
	trueScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(trueScatter)
	p.Legend.Add("truth", trueScatter)

	estPts := northEastPoints(track.EstPosition)
	estScatter, err := plotter.NewScatter(estPts)
	if err != nil {
		return nil, fmt.Errorf("sim: failed to create estimate scatter: %w", err)
	}
	estScatter.GlyphStyle.Color = color.RGBA{R: 169, G: 169, B: 169, A: 255}
	estScatter.Shape = draw.CrossGlyph{}
	estScatter.GlyphStyle.Radius = vg.Points(3)

	p.Add(estScatter)
	p.Legend.Add("estimate", estScatter)

	return p, nil
}

// SavePNG renders p to a PNG file at path with the given size in inches.
func SavePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	return p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path)
}

// northEastPoints projects NED positions onto the (East, North) plane: X is
// East, Y is North, matching the plot's axis labels.
func northEastPoints(positions []quat.Vector3) plotter.XYs {
	pts := make(plotter.XYs, len(positions))
	for i, pos := range positions {
		pts[i].X = pos.Y
		pts[i].Y = pos.X
	}
	return pts
}
