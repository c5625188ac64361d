package dramlog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Load reads the DRAM geometry settings and the attack log in one
// call. Both artifacts must exist and parse; there is no partial
// result.
func Load(settingsPath, logPath string) (Geometry, *AttackLog, error) {
	geom, err := LoadGeometry(settingsPath)
	if err != nil {
		return Geometry{}, nil, err
	}

	log, err := LoadAttackLog(logPath)
	if err != nil {
		return Geometry{}, nil, err
	}

	return geom, log, nil
}

type settingsGeom struct {
	RowBits *uint `json:"rowbits"`
	ColBits *uint `json:"colbits"`
}

type settingsFile struct {
	Geom *settingsGeom `json:"geom"`
}

// LoadGeometry reads the generated settings artifact and extracts the
// DRAM geometry from it.
func LoadGeometry(path string) (Geometry, error) {
	f, err := openArtifact(path)
	if err != nil {
		return Geometry{}, err
	}
	defer f.Close()

	var settings settingsFile
	if err := json.NewDecoder(f).Decode(&settings); err != nil {
		return Geometry{}, &MalformedArtifactError{Path: path, Err: err}
	}

	switch {
	case settings.Geom == nil:
		err = errors.New("missing geom section")
	case settings.Geom.RowBits == nil:
		err = errors.New("missing geom.rowbits")
	case settings.Geom.ColBits == nil:
		err = errors.New("missing geom.colbits")
	}

	if err != nil {
		return Geometry{}, &MalformedArtifactError{Path: path, Err: err}
	}

	return Geometry{
		RowBits: *settings.Geom.RowBits,
		ColBits: *settings.Geom.ColBits,
	}, nil
}

// LoadAttackLog reads and parses one attack-log artifact.
func LoadAttackLog(path string) (*AttackLog, error) {
	f, err := openArtifact(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log, err := ParseAttackLog(f)
	if err != nil {
		var unrecognized *UnrecognizedAttackKindError
		if errors.As(err, &unrecognized) {
			return nil, err
		}

		return nil, &MalformedArtifactError{Path: path, Err: err}
	}

	return log, nil
}

func openArtifact(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &ArtifactNotFoundError{Path: path}
	}

	return f, err
}

// ParseAttackLog decodes an attack log from r, preserving the order of
// every JSON object in it. Object key order drives display order, so
// the log is walked token by token instead of being decoded into maps.
func ParseAttackLog(r io.Reader) (*AttackLog, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	log := &AttackLog{}
	for dec.More() {
		name, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		set, err := parseAttackSet(dec, name)
		if err != nil {
			return nil, err
		}

		log.Sets = append(log.Sets, *set)
	}

	return log, expectDelim(dec, '}')
}

func parseAttackSet(dec *json.Decoder, name string) (*AttackSet, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	set := &AttackSet{Name: name}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		// read_count is run metadata that sits next to the attacks.
		if key == "read_count" {
			if err := dec.Decode(&set.ReadCount); err != nil {
				return nil, err
			}

			continue
		}

		record, err := parseRecord(dec, name, key)
		if err != nil {
			return nil, err
		}

		set.Attacks = append(set.Attacks, Attack{Name: key, Record: record})
	}

	return set, expectDelim(dec, '}')
}

func parseRecord(dec *json.Decoder, set, attack string) (Record, error) {
	switch {
	case strings.HasPrefix(attack, "pair"):
		return parsePairRecord(dec)
	case strings.HasPrefix(attack, "sequential"):
		return parseSequentialRecord(dec)
	default:
		return nil, &UnrecognizedAttackKindError{Set: set, Attack: attack}
	}
}

func parsePairRecord(dec *json.Decoder) (*PairRecord, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	record := &PairRecord{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "hammer_row_1":
			err = dec.Decode(&record.HammerRow1)
		case "hammer_row_2":
			err = dec.Decode(&record.HammerRow2)
		case "errors_in_rows":
			record.ErrorRows, err = parseErrorsInRows(dec)
		default:
			err = skipValue(dec)
		}

		if err != nil {
			return nil, err
		}
	}

	return record, expectDelim(dec, '}')
}

func parseSequentialRecord(dec *json.Decoder) (*SequentialRecord, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	record := &SequentialRecord{}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		switch key {
		case "row_pairs":
			err = dec.Decode(&record.RowPairs)
		case "errors_in_rows":
			record.ErrorRows, err = parseErrorsInRows(dec)
		default:
			err = skipValue(dec)
		}

		if err != nil {
			return nil, err
		}
	}

	if len(record.RowPairs) == 0 {
		return nil, errors.New("sequential attack has no row_pairs")
	}

	return record, expectDelim(dec, '}')
}

func parseErrorsInRows(dec *json.Decoder) (ErrorsInRows, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	errs := ErrorsInRows{}
	for dec.More() {
		label, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		row, err := parseRowErrors(dec, label)
		if err != nil {
			return nil, err
		}

		errs = append(errs, *row)
	}

	return errs, expectDelim(dec, '}')
}

func parseRowErrors(dec *json.Decoder, label string) (*RowErrors, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	row := &RowErrors{Row: label}
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		// Besides the col hierarchy, a row entry carries redundant
		// summary fields (row, bitflips) that are recomputed here.
		if key != "col" {
			if err := skipValue(dec); err != nil {
				return nil, err
			}

			continue
		}

		row.Cols, err = parseColErrors(dec)
		if err != nil {
			return nil, err
		}
	}

	return row, expectDelim(dec, '}')
}

func parseColErrors(dec *json.Decoder) ([]ColErrors, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var cols []ColErrors
	for dec.More() {
		label, err := stringToken(dec)
		if err != nil {
			return nil, err
		}

		col, err := strconv.ParseUint(label, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column label %q is not a number: %w", label, err)
		}

		var flips []json.RawMessage
		if err := dec.Decode(&flips); err != nil {
			return nil, err
		}

		cols = append(cols, ColErrors{Col: uint(col), Flips: flips})
	}

	return cols, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want rune) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}

	delim, ok := t.(json.Delim)
	if !ok || rune(delim) != want {
		return fmt.Errorf("expecting %q, found token %v", want, t)
	}

	return nil
}

func stringToken(dec *json.Decoder) (string, error) {
	t, err := dec.Token()
	if err != nil {
		return "", err
	}

	s, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("expecting an object key, found token %v", t)
	}

	return s, nil
}

func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
