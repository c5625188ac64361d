package plotview

import (
	"github.com/dramsec/hammerplot/analysis"
	"github.com/dramsec/hammerplot/dramlog"
)

// HistogramRenderer builds heat maps from flattened attack data and
// hands them to a viewer.
type HistogramRenderer struct {
	geom     dramlog.Geometry
	colStep  int
	annotate bool
	viewer   *Viewer
}

// NewHistogramRenderer creates a renderer. colStep is the column bin
// width of single-attack plots; annotate overlays aggregate cells with
// their literal bit-flip counts.
func NewHistogramRenderer(
	geom dramlog.Geometry,
	colStep int,
	annotate bool,
	viewer *Viewer,
) *HistogramRenderer {
	return &HistogramRenderer{
		geom:     geom,
		colStep:  colStep,
		annotate: annotate,
		viewer:   viewer,
	}
}

// RenderSingleAttack shows the row-by-column error map of one attack.
func (r *HistogramRenderer) RenderSingleAttack(
	flat *analysis.FlatAttack,
	title string,
) error {
	return r.viewer.Show(SingleAttackHeatmap(flat, r.geom, r.colStep, title))
}

// RenderAggressorsVsVictims shows the whole-log aggregate map.
func (r *HistogramRenderer) RenderAggressorsVsVictims(
	table *analysis.AVTable,
) error {
	return r.viewer.Show(AggressorsVsVictimsHeatmap(table, r.annotate))
}
