package importer

import "people-monitor-go/internal/domain/event"

const (
	SourceList  = "list"
	SourceSheet = "sheet"
)

type Record struct {
	Name    string
	Contact string
	Tags    []string
}

// Sheet is a parsed table: the first row holds the headers, Rows holds the data
// rows in file order. Rows may be shorter than Headers; missing cells are absent.
type Sheet interface {
	Headers() []string
	Rows() [][]string
}

// Result is the outcome of validating one batch. Total counts every row seen,
// Errors holds one line per rejected row, and People is filled in once the
// accepted rows have been appended to a roster.
type Result struct {
	Total    int
	Accepted []event.PersonInput
	Errors   []string
	People   []event.Person
}

func (r Result) AcceptedCount() int {
	return len(r.Accepted)
}
