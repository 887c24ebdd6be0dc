// Package sheet turns uploaded spreadsheets into header and row string tables.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmpty           = errors.New("sheet has no header row")
	ErrMalformed       = errors.New("malformed sheet")
)

// Sheet is the first worksheet of an uploaded file. Headers is row 1 and Rows
// holds the following rows up to the last one with a non-blank cell, so row
// numbers stay aligned with the file.
type Sheet struct {
	headers []string
	rows    [][]string
}

func (s *Sheet) Headers() []string {
	return s.headers
}

func (s *Sheet) Rows() [][]string {
	return s.rows
}

// Supported reports whether Parse understands the file's extension.
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	default:
		return false
	}
}

func Parse(filename string, r io.Reader) (*Sheet, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readWorkbook(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	return fromRecords(records)
}

func readWorkbook(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrMalformed, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrMalformed, sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %v", ErrMalformed, err)
	}
	return records, nil
}

func fromRecords(records [][]string) (*Sheet, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	headers := make([]string, len(records[0]))
	for i, header := range records[0] {
		headers[i] = strings.TrimPrefix(header, "\ufeff")
	}

	end := len(records)
	for end > 1 && blank(records[end-1]) {
		end--
	}

	rows := make([][]string, 0, end-1)
	rows = append(rows, records[1:end]...)

	return &Sheet{headers: headers, rows: rows}, nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
