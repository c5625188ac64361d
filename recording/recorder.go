// Package recording optionally persists the attacks and flip events a
// run walks over into a SQLite database, so a log can be queried later
// without replaying the plots.
package recording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/dramsec/hammerplot/dramlog"
)

type attackEntry struct {
	AttackSet  string
	Attack     string
	Kind       string
	HammerRow1 uint
	HammerRow2 uint
	StartRow   uint
	EndRow     uint
	Bitflips   int
}

type flipEntry struct {
	AttackSet string
	Attack    string
	Row       string
	Col       uint
	Flips     int
}

type table struct {
	structType reflect.Type
	entries    []any
}

// Recorder writes attack and flip-event rows into a SQLite database.
// Inserts are buffered and flushed in batches; a flush is also
// registered to run at process exit.
type Recorder struct {
	*sql.DB

	dbName     string
	batchSize  int
	entryCount int
	tables     map[string]*table
}

// NewRecorder creates a recorder backed by path + ".sqlite3". An empty
// path picks a unique name. An existing file is refused rather than
// appended to, so every run records into a fresh database.
func NewRecorder(path string) (*Recorder, error) {
	r := &Recorder{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

func (r *Recorder) init() error {
	if r.dbName == "" {
		r.dbName = "hammerplot_" + xid.New().String()
	}

	filename := r.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		return fmt.Errorf("recording file %s already exists", filename)
	}

	fmt.Fprintf(os.Stderr, "Recording attack data into: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return err
	}

	r.DB = db

	r.createTable("attacks", attackEntry{})
	r.createTable("flip_events", flipEntry{})

	return nil
}

// RecordAttack buffers one attack record and all of its flip events.
// It satisfies the walker's event sink.
func (r *Recorder) RecordAttack(
	set, attack string,
	record dramlog.Record,
) error {
	entry := attackEntry{
		AttackSet: set,
		Attack:    attack,
		Bitflips:  record.Errors().TotalFlips(),
	}

	switch rec := record.(type) {
	case *dramlog.PairRecord:
		entry.Kind = "pair"
		entry.HammerRow1 = rec.HammerRow1
		entry.HammerRow2 = rec.HammerRow2
	case *dramlog.SequentialRecord:
		entry.Kind = "sequential"
		entry.StartRow = rec.RowPairs[0][1]
		entry.EndRow = rec.RowPairs[len(rec.RowPairs)-1][1]
	default:
		return fmt.Errorf("attack %q has an unrecordable kind", attack)
	}

	r.insert("attacks", entry)

	for _, row := range record.Errors() {
		for _, col := range row.Cols {
			r.insert("flip_events", flipEntry{
				AttackSet: set,
				Attack:    attack,
				Row:       row.Row,
				Col:       col.Col,
				Flips:     len(col.Flips),
			})
		}
	}

	return nil
}

func (r *Recorder) createTable(tableName string, sampleEntry any) {
	names := structs.Names(sampleEntry)
	fields := strings.Join(names, ", \n\t")

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	r.mustExecute(createTableSQL)

	r.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		entries:    []any{},
	}
}

func (r *Recorder) insert(tableName string, entry any) {
	t := r.tables[tableName]
	t.entries = append(t.entries, entry)

	r.entryCount++
	if r.entryCount >= r.batchSize {
		r.Flush()
	}
}

// Flush writes all buffered rows into the database.
func (r *Recorder) Flush() {
	if r.entryCount == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for tableName, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}

		statement := r.prepareStatement(tableName, t.entries[0])

		for _, entry := range t.entries {
			v := []any{}

			values := reflect.ValueOf(entry)
			for i := 0; i < values.NumField(); i++ {
				v = append(v, values.Field(i).Interface())
			}

			if _, err := statement.Exec(v...); err != nil {
				panic(err)
			}
		}

		t.entries = nil
		statement.Close()
	}

	r.entryCount = 0
}

// Close flushes the buffers and closes the database.
func (r *Recorder) Close() error {
	r.Flush()

	return r.DB.Close()
}

func (r *Recorder) prepareStatement(tableName string, sampleEntry any) *sql.Stmt {
	names := structs.Names(sampleEntry)
	fields := strings.Join(names, ", ")
	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(names)), ", ")

	insertSQL := `INSERT INTO ` + tableName +
		` (` + fields + `) VALUES (` + placeholders + `);`

	statement, err := r.Prepare(insertSQL)
	if err != nil {
		panic(err)
	}

	return statement
}

func (r *Recorder) mustExecute(query string) sql.Result {
	res, err := r.Exec(query)
	if err != nil {
		panic(query + " " + err.Error())
	}

	return res
}
