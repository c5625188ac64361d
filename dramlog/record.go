// Package dramlog loads rowhammer attack logs and the DRAM geometry
// settings they were produced against.
//
// Attack logs are JSON objects whose key order is meaningful: the order
// in which attack sets, attacks, rows and columns appear in the file is
// the order in which they are displayed. The types in this package
// therefore model JSON objects as ordered slices, never as Go maps.
package dramlog

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// AttackLog is the parsed content of one attack-log artifact.
type AttackLog struct {
	Sets []AttackSet
}

// AttackSet groups the attacks that were run with one configuration.
// ReadCount is sibling metadata in the log and is not an attack.
type AttackSet struct {
	Name      string
	ReadCount uint64
	Attacks   []Attack
}

// Attack is a single named attack record.
type Attack struct {
	Name   string
	Record Record
}

// Record is the attack payload. It is a sealed sum over the attack
// kinds the hammering subsystem emits. Consumers must type-switch
// exhaustively; an unmatched default is a defect, not a skip.
type Record interface {
	attackRecord()

	// Errors returns the per-row bit-flip observations of the attack.
	Errors() ErrorsInRows

	// Title returns the human-readable plot title for the attack.
	Title() string
}

// PairRecord is an attack that hammered one or two specific rows.
type PairRecord struct {
	HammerRow1 uint
	HammerRow2 uint
	ErrorRows  ErrorsInRows
}

func (r *PairRecord) attackRecord() {}

// Errors returns the per-row bit-flip observations.
func (r *PairRecord) Errors() ErrorsInRows { return r.ErrorRows }

// Title names the hammered row pair.
func (r *PairRecord) Title() string {
	return fmt.Sprintf("Hammered rows: (%d, %d)", r.HammerRow1, r.HammerRow2)
}

// SingleRow reports whether the attack hammered a single row, which is
// the precondition for folding it into the aggressor-vs-victim view.
func (r *PairRecord) SingleRow() bool {
	return r.HammerRow1 == r.HammerRow2
}

// SequentialRecord is an attack that swept hammering across a range of
// row pairs. RowPairs maps pair index to target row, in sweep order.
type SequentialRecord struct {
	RowPairs  [][2]uint
	ErrorRows ErrorsInRows
}

func (r *SequentialRecord) attackRecord() {}

// Errors returns the per-row bit-flip observations.
func (r *SequentialRecord) Errors() ErrorsInRows { return r.ErrorRows }

// Title names the first and last row of the sweep.
func (r *SequentialRecord) Title() string {
	start := r.RowPairs[0][1]
	end := r.RowPairs[len(r.RowPairs)-1][1]

	return fmt.Sprintf("Sequential attack on rows from %d to %d", start, end)
}

// ErrorsInRows lists, in log order, the rows that showed at least one
// bit flip during an attack.
type ErrorsInRows []RowErrors

// TotalFlips sums the flip counts over all rows and columns.
func (e ErrorsInRows) TotalFlips() int {
	total := 0
	for _, row := range e {
		total += row.FlipCount()
	}

	return total
}

// RowErrors holds the flips observed in one row. Row is the decimal
// row number as it appears in the log, kept as a string because it is
// used verbatim as axis tick text.
type RowErrors struct {
	Row  string
	Cols []ColErrors
}

// FlipCount sums the flip-list lengths over the row's columns.
func (r RowErrors) FlipCount() int {
	count := 0
	for _, c := range r.Cols {
		count += len(c.Flips)
	}

	return count
}

// ColErrors holds the flips observed at one column of a row. The flip
// payloads are opaque; the length of Flips is the flip count.
type ColErrors struct {
	Col   uint
	Flips []json.RawMessage
}
