package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// recordFields is the number of fields in one index record.
const recordFields = 13

// Matrix describes a single matrix in the collection index. A Matrix is
// immutable once parsed.
type Matrix struct {
	// ID is the 1-based position of the record in the index.
	ID int

	Group string
	Name  string

	Rows     int64
	Cols     int64
	Nonzeros int64

	Real                 bool
	Binary               bool
	ND                   bool
	PosDef               bool
	PatternSymmetric     bool
	NumericallySymmetric bool

	// Kind is a free-form category string, e.g. "power network problem".
	Kind string

	PatternEntries int64
}

// Collection is a parsed snapshot of the collection index.
type Collection struct {
	// DeclaredCount is the matrix count stated in the index header. It may
	// differ from len(Matrices); callers must tolerate a mismatch.
	DeclaredCount int

	// Date is the snapshot date as it appears in the header, unvalidated.
	Date string

	Matrices []Matrix
}

// ParseError describes a malformed index.
type ParseError struct {
	// Line is the 1-based line number of the offending record, or 0 when
	// the input as a whole is unreadable.
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("catalog: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads an index snapshot from r. Records are assigned IDs
// sequentially in file order starting at 1. It returns a *ParseError when
// the header lines are missing, a record has the wrong field count, or a
// numeric field does not parse as an integer.
func Parse(r io.Reader) (*Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	line := 0

	readLine := func() ([]string, error) {
		rec, err := cr.Read()
		if err != nil {
			return nil, err
		}
		line++
		return rec, nil
	}

	header, err := readLine()
	if err != nil {
		return nil, &ParseError{Line: 1, Msg: "missing matrix count header", Err: unwrapEOF(err)}
	}
	count, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, &ParseError{Line: 1, Msg: fmt.Sprintf("invalid matrix count %q", header[0]), Err: err}
	}

	dateLine, err := readLine()
	if err != nil {
		return nil, &ParseError{Line: 2, Msg: "missing snapshot date header", Err: unwrapEOF(err)}
	}

	col := &Collection{
		DeclaredCount: count,
		Date:          dateLine[0],
	}

	id := 1
	for {
		rec, err := readLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Line: line + 1, Msg: "malformed record", Err: err}
		}
		if len(rec) != recordFields {
			return nil, &ParseError{
				Line: line,
				Msg:  fmt.Sprintf("expected %d fields, got %d", recordFields, len(rec)),
			}
		}

		m, err := parseRecord(id, line, rec)
		if err != nil {
			return nil, err
		}
		col.Matrices = append(col.Matrices, m)
		id++
	}

	return col, nil
}

func parseRecord(id, line int, rec []string) (Matrix, error) {
	m := Matrix{
		ID:    id,
		Group: rec[0],
		Name:  rec[1],
		Kind:  rec[11],
	}

	var err error
	if m.Rows, err = parseInt(line, "rows", rec[2]); err != nil {
		return Matrix{}, err
	}
	if m.Cols, err = parseInt(line, "columns", rec[3]); err != nil {
		return Matrix{}, err
	}
	if m.Nonzeros, err = parseInt(line, "nonzeros", rec[4]); err != nil {
		return Matrix{}, err
	}
	if m.PatternEntries, err = parseInt(line, "pattern entries", rec[12]); err != nil {
		return Matrix{}, err
	}

	// Boolean fields are true iff the literal value is "1". Anything else,
	// including "0" and the empty string, decodes as false.
	m.Real = rec[5] == "1"
	m.Binary = rec[6] == "1"
	m.ND = rec[7] == "1"
	m.PosDef = rec[8] == "1"
	m.PatternSymmetric = rec[9] == "1"
	m.NumericallySymmetric = rec[10] == "1"

	return m, nil
}

func parseInt(line int, field, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &ParseError{
			Line: line,
			Msg:  fmt.Sprintf("invalid %s field %q", field, value),
			Err:  err,
		}
	}
	return n, nil
}

// unwrapEOF drops the io.EOF sentinel so header errors read as "missing"
// rather than "EOF".
func unwrapEOF(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
