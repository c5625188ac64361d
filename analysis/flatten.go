// Package analysis turns parsed attack records into the flat
// coordinate tables the histogram plots are built from.
package analysis

import (
	"github.com/dramsec/hammerplot/dramlog"
)

// FlatAttack is one attack's bit flips flattened into parallel
// coordinate sequences, one entry per observed flip.
//
// RowIdx holds dense zero-based indices, not absolute row numbers:
// rows with no flips between two affected rows would otherwise show up
// as empty bands in the plot. RowLabels maps a dense index back to the
// row label used as Y-axis tick text.
type FlatAttack struct {
	RowIdx    []int
	Col       []int
	RowLabels []string
}

// Flips returns the number of flattened flip events.
func (f *FlatAttack) Flips() int {
	return len(f.Col)
}

// AffectedRows returns the number of distinct rows with at least one
// flip.
func (f *FlatAttack) AffectedRows() int {
	return len(f.RowLabels)
}

// FlattenAttack flattens the ragged per-row, per-column flip structure
// of one attack. Row labels are assigned dense indices in insertion
// order. The output length equals the total flip count of the input.
//
// The input must have at least one affected row. Calling FlattenAttack
// on an attack with no flips is a contract violation and panics;
// callers decide upstream whether such attacks are plotted at all.
func FlattenAttack(errs dramlog.ErrorsInRows) *FlatAttack {
	if len(errs) == 0 {
		panic("flattening an attack with no affected rows")
	}

	flat := &FlatAttack{}
	for i, row := range errs {
		flat.RowLabels = append(flat.RowLabels, row.Row)

		for _, col := range row.Cols {
			for range col.Flips {
				flat.RowIdx = append(flat.RowIdx, i)
				flat.Col = append(flat.Col, int(col.Col))
			}
		}
	}

	return flat
}
