// Package importer implements the spreadsheet import pipeline: decoding
// uploaded workbooks, detecting which columns map to entry fields,
// auto-categorizing rows by keyword scoring, and merging the result into
// the entry repository with duplicate suppression.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrDecode marks an uploaded file that could not be read as a
// spreadsheet. The import aborts at step 1 with no state mutated.
var ErrDecode = errors.New("importer: undecodable file")

// ErrNoEntries marks a sheet that yielded zero usable rows after
// mapping — a valid file, but nothing to import. Distinct from ErrDecode
// so the caller can tell "bad file" from "check your column mapping".
var ErrNoEntries = errors.New("importer: no valid entries")

// Workbook is a decoded spreadsheet: named sheets of string cells.
type Workbook struct {
	SheetNames []string
	Sheets     map[string][][]string
}

// Rows returns the grid for the named sheet, or ok=false if absent.
func (w *Workbook) Rows(sheet string) ([][]string, bool) {
	grid, ok := w.Sheets[sheet]
	return grid, ok
}

// Decoder turns uploaded file bytes into a Workbook.
type Decoder interface {
	Decode(data []byte, filename string) (*Workbook, error)
}

// NewDecoder returns the default decoder: xlsx via excelize, delimited
// text via encoding/csv.
func NewDecoder() Decoder {
	return &fileDecoder{}
}

type fileDecoder struct{}

// Decode dispatches on the file extension. Unrecognized formats —
// including the legacy .xls binary, which the xlsx reader cannot
// open — fail with ErrDecode.
func (d *fileDecoder) Decode(data []byte, filename string) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return decodeXLSX(data)
	case ".csv":
		return decodeDelimited(data, ',')
	case ".tsv", ".txt":
		return decodeDelimited(data, '\t')
	case ".xls":
		return nil, fmt.Errorf("%w: legacy .xls is not supported, save as .xlsx or .csv", ErrDecode)
	default:
		return nil, fmt.Errorf("%w: unrecognized format %q", ErrDecode, filepath.Ext(filename))
	}
}

func decodeXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	wb := &Workbook{Sheets: make(map[string][][]string)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrDecode, name, err)
		}
		wb.SheetNames = append(wb.SheetNames, name)
		wb.Sheets[name] = rows
	}
	if len(wb.SheetNames) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}
	return wb, nil
}

func decodeDelimited(data []byte, comma rune) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.FieldsPerRecord = -1 // irregular third-party input is the norm
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	// Single implicit sheet, named after the shape of the input.
	const sheet = "Sheet1"
	return &Workbook{
		SheetNames: []string{sheet},
		Sheets:     map[string][][]string{sheet: rows},
	}, nil
}
