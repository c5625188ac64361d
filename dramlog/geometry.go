package dramlog

// Geometry describes the DRAM organization the hammering run targeted.
// It is loaded once per run and immutable afterwards.
type Geometry struct {
	RowBits uint
	ColBits uint
}

// Rows returns the total number of rows in the module.
func (g Geometry) Rows() uint {
	return 1 << g.RowBits
}

// Cols returns the total number of columns in a row.
func (g Geometry) Cols() uint {
	return 1 << g.ColBits
}
