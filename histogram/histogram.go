// Package histogram provides the 2-D binning behind the heat-map
// plots.
package histogram

import (
	"errors"
	"sort"
)

// Grid is a computed 2-D histogram. Cells[ix][iy] is the sum of the
// weights of the samples falling into X bin ix and Y bin iy.
type Grid struct {
	XEdges []float64
	YEdges []float64
	Cells  [][]float64
}

// Bins returns the number of bins on each axis.
func (g *Grid) Bins() (nx, ny int) {
	return len(g.XEdges) - 1, len(g.YEdges) - 1
}

// Max returns the largest cell value, or 0 for an all-empty grid.
func (g *Grid) Max() float64 {
	max := 0.0
	for _, col := range g.Cells {
		for _, v := range col {
			if v > max {
				max = v
			}
		}
	}

	return max
}

// Hist2D bins the (x, y) samples into the given edges, summing weights
// per cell. A nil weights slice counts samples instead. Samples
// outside the edge ranges are ignored; the last bin of each axis
// includes its right edge.
func Hist2D(x, y, weights []float64, xEdges, yEdges []float64) (*Grid, error) {
	if len(x) != len(y) {
		return nil, errors.New("x and y must have the same length")
	}

	if weights != nil && len(weights) != len(x) {
		return nil, errors.New("weights must match the sample count")
	}

	if len(xEdges) < 2 || len(yEdges) < 2 {
		return nil, errors.New("each axis needs at least one bin")
	}

	grid := &Grid{
		XEdges: xEdges,
		YEdges: yEdges,
	}

	grid.Cells = make([][]float64, len(xEdges)-1)
	for i := range grid.Cells {
		grid.Cells[i] = make([]float64, len(yEdges)-1)
	}

	for i := range x {
		ix, okX := locateBin(xEdges, x[i])
		iy, okY := locateBin(yEdges, y[i])

		if !okX || !okY {
			continue
		}

		w := 1.0
		if weights != nil {
			w = weights[i]
		}

		grid.Cells[ix][iy] += w
	}

	return grid, nil
}

// locateBin finds the bin of v given ascending edges. Bins are
// half-open except the last, which is closed on the right.
func locateBin(edges []float64, v float64) (int, bool) {
	if v < edges[0] || v > edges[len(edges)-1] {
		return 0, false
	}

	i := sort.SearchFloat64s(edges, v)
	if i < len(edges) && edges[i] == v {
		// v sits exactly on an edge and belongs to the bin it opens.
		if i == len(edges)-1 {
			return i - 1, true
		}

		return i, true
	}

	return i - 1, true
}

// UniformEdges builds fixed-width bin edges lo, lo+step, ... up to and
// including hi when (hi-lo) is a multiple of step.
func UniformEdges(lo, hi, step float64) []float64 {
	if step <= 0 {
		panic("bin step must be positive")
	}

	var edges []float64
	for e := lo; e <= hi; e += step {
		edges = append(edges, e)
	}

	return edges
}

// CenteredUnitEdges builds unit-width bins centered on each integer in
// [min, max]: min-0.5, min+0.5, ..., max+0.5.
func CenteredUnitEdges(min, max int) []float64 {
	var edges []float64
	for e := float64(min) - 0.5; e <= float64(max)+0.5; e++ {
		edges = append(edges, e)
	}

	return edges
}

// IntegerEdges builds unit-width bins min, min+1, ..., max+1, one bin
// per integer in [min, max].
func IntegerEdges(min, max int) []float64 {
	var edges []float64
	for e := min; e <= max+1; e++ {
		edges = append(edges, float64(e))
	}

	return edges
}

// TickStep returns the color-scale legend tick spacing for a maximum
// cell value. The step never drops below 1, keeping legend labels
// integral, and caps the legend at about 20 ticks.
func TickStep(maxValue int) int {
	step := maxValue / 20
	if step < 1 {
		return 1
	}

	return step
}
