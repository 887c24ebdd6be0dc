package sheet

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffName,Contact,Tags,Tag1\nBob,b@x,\"IT, Ops\",IT\nAnn,a@x\n,,\n"

	parsed, err := Parse("people.CSV", strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	headers := parsed.Headers()
	if len(headers) != 4 || headers[0] != "Name" {
		t.Fatalf("unexpected headers %q", headers)
	}
	rows := parsed.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected trailing blank row dropped, got %d rows", len(rows))
	}
	if rows[0][2] != "IT, Ops" {
		t.Fatalf("expected quoted tags cell, got %q", rows[0][2])
	}
	if len(rows[1]) != 2 {
		t.Fatalf("expected short row kept short, got %q", rows[1])
	}
}

func TestParseWorkbook(t *testing.T) {
	book := excelize.NewFile()
	defer book.Close()

	sheetName := book.GetSheetName(0)
	values := [][]interface{}{
		{"Name", "Contact", "Tag1", "Tag2"},
		{"Eve", "e@x", "HQ", "Night"},
		{"Finn", "f@x"},
	}
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		row := value
		if err := book.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	parsed, err := Parse("roster.xlsx", buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := parsed.Headers(); len(got) != 4 || got[3] != "Tag2" {
		t.Fatalf("unexpected headers %q", got)
	}
	rows := parsed.Rows()
	if len(rows) != 2 || rows[0][0] != "Eve" || rows[1][1] != "f@x" {
		t.Fatalf("unexpected rows %q", rows)
	}
}

func TestParseUnsupportedType(t *testing.T) {
	_, err := Parse("people.pdf", strings.NewReader("%PDF"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if Supported("people.pdf") {
		t.Fatalf("expected pdf unsupported")
	}
	if !Supported("people.XLSX") {
		t.Fatalf("expected xlsx supported")
	}
}

func TestParseEmptyCSV(t *testing.T) {
	_, err := Parse("empty.csv", strings.NewReader(""))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestParseMalformedFiles(t *testing.T) {
	cases := []struct {
		filename string
		content  string
	}{
		{filename: "people.xlsx", content: "this is not a zip archive"},
		{filename: "people.csv", content: "Name,Contact\n\"Alice,a@x\nBob\"x,b@x\n"},
	}

	for _, tc := range cases {
		_, err := Parse(tc.filename, strings.NewReader(tc.content))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected ErrMalformed, got %v", tc.filename, err)
		}
	}
}
