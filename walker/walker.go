// Package walker drives one pass over an attack log, routing every
// attack record to the per-attack or the aggregate plotting pipeline.
package walker

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dramsec/hammerplot/analysis"
	"github.com/dramsec/hammerplot/dramlog"
)

// Mode selects what one walk produces. It is fixed for a whole run.
type Mode int

const (
	// PerAttack renders one plot per attack record, as it is visited.
	PerAttack Mode = iota

	// AggressorsVsVictims folds every record into a single aggregate
	// plot rendered after the whole log has been walked. Every record
	// must be a pair attack hammering a single row.
	AggressorsVsVictims
)

// Renderer displays the plots produced during a walk.
type Renderer interface {
	// RenderSingleAttack shows one attack's row-by-column error map
	// and blocks until the operator dismisses it.
	RenderSingleAttack(flat *analysis.FlatAttack, title string) error

	// RenderAggressorsVsVictims shows the whole-log aggregate map.
	RenderAggressorsVsVictims(table *analysis.AVTable) error
}

// EventSink observes every attack record a walk visits.
type EventSink interface {
	RecordAttack(set, attack string, record dramlog.Record) error
}

// ModeMismatchError reports a record that disqualifies the whole log
// from the aggressor-vs-victim view. The run aborts instead of showing
// an aggregate plot built from partial data.
type ModeMismatchError struct {
	Set    string
	Attack string
	Reason string
}

func (e *ModeMismatchError) Error() string {
	return fmt.Sprintf(
		"attack %q in set %q cannot join the aggressor-vs-victim view: "+
			"%s. Configure the hammering step with --row-pair-distance 0 "+
			"to target a single row at a time.",
		e.Attack, e.Set, e.Reason)
}

// Walker walks an attack log once, in log order, with no backtracking.
type Walker struct {
	mode     Mode
	renderer Renderer
	sink     EventSink
	notices  io.Writer
}

// New creates a walker that sends plots to the given renderer.
func New(mode Mode, renderer Renderer) *Walker {
	return &Walker{
		mode:     mode,
		renderer: renderer,
		notices:  os.Stderr,
	}
}

// WithEventSink also reports every visited record to sink.
func (w *Walker) WithEventSink(sink EventSink) *Walker {
	w.sink = sink

	return w
}

// Walk visits every attack set and record of the log. In PerAttack
// mode each record is rendered and discarded immediately; in
// AggressorsVsVictims mode qualifying records accumulate into one
// table that is rendered once, after the log is exhausted. Any fatal
// condition aborts before further plots are produced.
func (w *Walker) Walk(attackLog *dramlog.AttackLog) error {
	table := analysis.NewAVTable()

	for _, set := range attackLog.Sets {
		for _, attack := range set.Attacks {
			if w.sink != nil {
				err := w.sink.RecordAttack(set.Name, attack.Name, attack.Record)
				if err != nil {
					return err
				}
			}

			var err error
			switch w.mode {
			case PerAttack:
				err = w.renderAttack(set.Name, attack)
			case AggressorsVsVictims:
				err = w.foldAttack(set.Name, attack, table)
			}

			if err != nil {
				return err
			}
		}
	}

	if w.mode != AggressorsVsVictims {
		return nil
	}

	if table.Empty() {
		return errors.New("the log contains no bit flips to aggregate")
	}

	return w.renderer.RenderAggressorsVsVictims(table)
}

func (w *Walker) renderAttack(setName string, attack dramlog.Attack) error {
	switch attack.Record.(type) {
	case *dramlog.PairRecord, *dramlog.SequentialRecord:
	default:
		return &dramlog.UnrecognizedAttackKindError{
			Set:    setName,
			Attack: attack.Name,
		}
	}

	if len(attack.Record.Errors()) == 0 {
		fmt.Fprintf(w.notices,
			"Attack %q observed no bit flips, nothing to plot\n",
			attack.Name)

		return nil
	}

	flat := analysis.FlattenAttack(attack.Record.Errors())

	return w.renderer.RenderSingleAttack(flat, attack.Record.Title())
}

func (w *Walker) foldAttack(
	setName string,
	attack dramlog.Attack,
	table *analysis.AVTable,
) error {
	switch record := attack.Record.(type) {
	case *dramlog.SequentialRecord:
		return &ModeMismatchError{
			Set:    setName,
			Attack: attack.Name,
			Reason: "sequential attacks are not hammering a single row",
		}
	case *dramlog.PairRecord:
		if !record.SingleRow() {
			return &ModeMismatchError{
				Set:    setName,
				Attack: attack.Name,
				Reason: fmt.Sprintf("the attack hammered rows %d and %d",
					record.HammerRow1, record.HammerRow2),
			}
		}

		return table.Add(record)
	default:
		return &dramlog.UnrecognizedAttackKindError{
			Set:    setName,
			Attack: attack.Name,
		}
	}
}
