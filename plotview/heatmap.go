// Package plotview renders 2-D bit-flip histograms as interactive
// heat-map pages served to a local browser.
package plotview

import (
	"fmt"
	"strconv"

	"github.com/dramsec/hammerplot/analysis"
	"github.com/dramsec/hammerplot/dramlog"
	"github.com/dramsec/hammerplot/histogram"
)

// Cell is one non-empty histogram cell. X and Y index the axis bins.
type Cell struct {
	X int     `json:"x"`
	Y int     `json:"y"`
	V float64 `json:"v"`
}

// Heatmap is the display-ready form of a computed histogram, shipped
// as JSON to the plot page. Empty cells are omitted so that "no data"
// renders as the neutral page background, visually distinct from the
// smallest observed count.
type Heatmap struct {
	Seq      int      `json:"seq"`
	Title    string   `json:"title"`
	XLabel   string   `json:"x_label"`
	YLabel   string   `json:"y_label"`
	XTicks   []string `json:"x_ticks"`
	YTicks   []string `json:"y_ticks"`
	Cells    []Cell   `json:"cells"`
	MaxValue int      `json:"max_value"`
	TickStep int      `json:"tick_step"`
	Annotate bool     `json:"annotate"`
}

// SingleAttackHeatmap bins one flattened attack into a column-by-row
// heat map. Columns use fixed-width bins of colStep covering the whole
// module; rows get one unit bin per affected row, labeled with the
// original row number.
//
// The flat set must contain at least one flip; rendering an empty
// attack is a contract violation and panics.
func SingleAttackHeatmap(
	flat *analysis.FlatAttack,
	geom dramlog.Geometry,
	colStep int,
	title string,
) *Heatmap {
	if flat.Flips() == 0 {
		panic("rendering an attack with no observed flips")
	}

	cols := int(geom.Cols())
	xEdges := histogram.UniformEdges(0, float64(cols), float64(colStep))
	yEdges := histogram.CenteredUnitEdges(0, flat.AffectedRows()-1)

	x := make([]float64, flat.Flips())
	y := make([]float64, flat.Flips())
	for i := range x {
		x[i] = float64(flat.Col[i])
		y[i] = float64(flat.RowIdx[i])
	}

	grid, err := histogram.Hist2D(x, y, nil, xEdges, yEdges)
	if err != nil {
		panic(err)
	}

	hm := fromGrid(grid, title)
	hm.XLabel = "Column"
	hm.YLabel = "Row"
	hm.YTicks = flat.RowLabels

	nx, _ := grid.Bins()
	for i := 0; i < nx; i++ {
		hm.XTicks = append(hm.XTicks, strconv.Itoa(i*colStep))
	}

	return hm
}

// AggressorsVsVictimsHeatmap bins the whole-log aggregate table into a
// victim-by-aggressor heat map with one unit bin per observed row
// number and total bit flips as the cell value.
//
// The table must contain at least one victim entry; rendering an empty
// table is a contract violation and panics.
func AggressorsVsVictimsHeatmap(table *analysis.AVTable, annotate bool) *Heatmap {
	aggressors, victims, bitflips := table.Flatten()
	if len(victims) == 0 {
		panic("rendering an aggressor-vs-victim table with no victims")
	}

	minV, maxV := bounds(victims)
	minA, maxA := bounds(aggressors)

	x := make([]float64, len(victims))
	y := make([]float64, len(victims))
	w := make([]float64, len(victims))
	for i := range victims {
		x[i] = float64(victims[i])
		y[i] = float64(aggressors[i])
		w[i] = float64(bitflips[i])
	}

	grid, err := histogram.Hist2D(x, y, w,
		histogram.IntegerEdges(minV, maxV),
		histogram.IntegerEdges(minA, maxA))
	if err != nil {
		panic(err)
	}

	title := fmt.Sprintf("Aggressors (%d, %d) vs victims (%d, %d)",
		minA, maxA, minV, maxV)

	hm := fromGrid(grid, title)
	hm.XLabel = "Victim"
	hm.YLabel = "Aggressor"
	hm.Annotate = annotate

	for v := minV; v <= maxV; v++ {
		hm.XTicks = append(hm.XTicks, strconv.Itoa(v))
	}

	for a := minA; a <= maxA; a++ {
		hm.YTicks = append(hm.YTicks, strconv.Itoa(a))
	}

	return hm
}

func fromGrid(grid *histogram.Grid, title string) *Heatmap {
	max := int(grid.Max())

	hm := &Heatmap{
		Title:    title,
		MaxValue: max,
		TickStep: histogram.TickStep(max),
	}

	nx, ny := grid.Bins()
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			if grid.Cells[ix][iy] == 0 {
				continue
			}

			hm.Cells = append(hm.Cells, Cell{
				X: ix,
				Y: iy,
				V: grid.Cells[ix][iy],
			})
		}
	}

	return hm
}

func bounds(values []int) (min, max int) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}
	}

	return min, max
}
