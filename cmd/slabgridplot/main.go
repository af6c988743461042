// Command slabgridplot renders a generated strut-and-tie grid to an image
// file, for eyeballing clipping and snapping behavior during development.
//
// It builds a rectangular demo slab with an optional concentric hole,
// drops two column control points on it, runs the generator and plots
// boundary loops, mesh edges and tie lines.
//
// Usage:
//
//	slabgridplot -o grid.png -spacing 1000 -diagonals -hole
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gridworks/slabgrid"
)

func main() {
	out := flag.String("o", "grid.png", "output image file (.png, .svg, .pdf)")
	spacing := flag.Float64("spacing", 1000, "target grid spacing in length units")
	diagonals := flag.Bool("diagonals", false, "add cell diagonals")
	hole := flag.Bool("hole", false, "cut a concentric hole into the demo slab")
	verbose := flag.Bool("v", false, "log generator diagnostics to stderr")
	flag.Parse()

	if *verbose {
		slabgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	res, region, err := demoGrid(*spacing, *diagonals, *hole)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	if err := render(res, region, *out); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("wrote %s: %d vertices, %d faces, %d orthogonal, %d diagonal\n",
		*out, len(res.Mesh.Vertices), len(res.Mesh.Quads),
		len(res.Orthogonal), len(res.Diagonal))
}

// demoGrid builds an 8 x 5 m slab in the XY plane and runs the generator.
func demoGrid(spacing float64, diagonals, hole bool) (*slabgrid.Result, slabgrid.Region, error) {
	outer := []slabgrid.Point{{U: 0, V: 0}, {U: 8000, V: 0}, {U: 8000, V: 5000}, {U: 0, V: 5000}}
	var holes [][]slabgrid.Point
	if hole {
		holes = append(holes, []slabgrid.Point{
			{U: 3200, V: 1800}, {U: 4800, V: 1800}, {U: 4800, V: 3200}, {U: 3200, V: 3200},
		})
	}
	region, err := slabgrid.NewPolyRegion(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1}, outer, holes...)
	if err != nil {
		return nil, nil, err
	}

	supports := []r3.Vec{
		{X: 1500, Y: 1500},
		{X: 6500, Y: 3500},
	}
	res, err := slabgrid.Generate(region, supports,
		slabgrid.WithSpacing(spacing),
		slabgrid.WithDiagonals(diagonals),
		slabgrid.WithWorkers(0))
	if err != nil {
		return nil, nil, err
	}
	return res, region, nil
}

// render plots the grid into an image file.
func render(res *slabgrid.Result, region slabgrid.Region, path string) error {
	p := plot.New()
	p.Title.Text = "slabgrid preview"
	p.X.Label.Text = "u"
	p.Y.Label.Text = "v"

	boundary := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	tie := color.RGBA{B: 0xcc, A: 0xff}
	diag := color.RGBA{R: 0xcc, A: 0xff}
	edge := color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff}

	for _, loop := range region.Loops() {
		xys := make(plotter.XYs, len(loop))
		for i, pt := range loop {
			uv, _ := region.ClosestParam(pt)
			xys[i] = plotter.XY{X: uv.U, Y: uv.V}
		}
		if err := addLine(p, xys, boundary, 1.5); err != nil {
			return err
		}
	}

	for _, q := range res.Mesh.Quads {
		ring := [5]int{q[0], q[1], q[2], q[3], q[0]}
		xys := make(plotter.XYs, len(ring))
		for i, vi := range ring {
			uv, _ := region.ClosestParam(res.Mesh.Vertices[vi])
			xys[i] = plotter.XY{X: uv.U, Y: uv.V}
		}
		if err := addLine(p, xys, edge, 0.5); err != nil {
			return err
		}
	}

	if err := addSegments(p, region, res.Orthogonal, tie, 1); err != nil {
		return err
	}
	if err := addSegments(p, region, res.Diagonal, diag, 0.75); err != nil {
		return err
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func addSegments(p *plot.Plot, region slabgrid.Region, segs []slabgrid.Segment, c color.Color, w vg.Length) error {
	for _, s := range segs {
		a, _ := region.ClosestParam(s.A)
		b, _ := region.ClosestParam(s.B)
		xys := plotter.XYs{{X: a.U, Y: a.V}, {X: b.U, Y: b.V}}
		if err := addLine(p, xys, c, w); err != nil {
			return err
		}
	}
	return nil
}

func addLine(p *plot.Plot, xys plotter.XYs, c color.Color, w vg.Length) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = w
	p.Add(l)
	return nil
}
