package analysis

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dramsec/hammerplot/dramlog"
)

// ErrUnequalHammerRows reports an attempt to fold an attack that
// hammered two different rows into the aggressor-vs-victim table.
// Such an attack has no single aggressor to key on.
var ErrUnequalHammerRows = errors.New(
	"attack hammered two different rows, there is no single aggressor")

// VictimEntry is one victim row's contribution from one attack.
type VictimEntry struct {
	Label    string
	Row      uint
	Bitflips int
}

// AVTable accumulates, across a whole log, which victim rows flipped
// under which aggressor row. Aggressors keep their first-seen order.
// Entries under an aggressor accumulate: two attacks hammering the
// same row both contribute, the latter never replaces the former.
type AVTable struct {
	aggressors []uint
	victims    map[uint][]VictimEntry
}

// NewAVTable creates an empty aggressor-vs-victim table.
func NewAVTable() *AVTable {
	return &AVTable{
		victims: make(map[uint][]VictimEntry),
	}
}

// Add folds one single-row pair attack into the table, appending one
// entry per victim row. The entry's bit-flip count is the sum of the
// row's per-column flip-list lengths.
func (t *AVTable) Add(record *dramlog.PairRecord) error {
	if !record.SingleRow() {
		return ErrUnequalHammerRows
	}

	aggressor := record.HammerRow1
	if _, seen := t.victims[aggressor]; !seen {
		t.aggressors = append(t.aggressors, aggressor)
	}

	for _, row := range record.ErrorRows {
		victim, err := strconv.ParseUint(row.Row, 10, 64)
		if err != nil {
			return fmt.Errorf("victim row label %q is not a number: %w",
				row.Row, err)
		}

		t.victims[aggressor] = append(t.victims[aggressor], VictimEntry{
			Label:    row.Row,
			Row:      uint(victim),
			Bitflips: row.FlipCount(),
		})
	}

	// An attack with no victims still claims its aggressor slot so the
	// table remembers the row was hammered.
	if _, seen := t.victims[aggressor]; !seen {
		t.victims[aggressor] = []VictimEntry{}
	}

	return nil
}

// Empty reports whether no victim entry has been recorded yet.
func (t *AVTable) Empty() bool {
	for _, entries := range t.victims {
		if len(entries) > 0 {
			return false
		}
	}

	return true
}

// Aggressors returns the aggressor rows in first-seen order.
func (t *AVTable) Aggressors() []uint {
	return t.aggressors
}

// Victims returns the accumulated victim entries of one aggressor row.
func (t *AVTable) Victims(aggressor uint) []VictimEntry {
	return t.victims[aggressor]
}

// Flatten unpacks the table into parallel aggressor, victim and
// bit-flip sequences, one entry per (aggressor, victim) observation,
// ready for weighted 2-D histogramming.
func (t *AVTable) Flatten() (aggressors, victims, bitflips []int) {
	for _, a := range t.aggressors {
		for _, v := range t.victims[a] {
			aggressors = append(aggressors, int(a))
			victims = append(victims, int(v.Row))
			bitflips = append(bitflips, v.Bitflips)
		}
	}

	return aggressors, victims, bitflips
}
