package importer

import (
	"fmt"
	"strings"

	"people-monitor-go/internal/domain/event"
)

const (
	nameHeader    = "Name"
	contactHeader = "Contact"
	tagsHeader    = "Tags"
	tagPrefix     = "Tag"
	tagsDelimiter = ","

	// Sheet rows are reported with the header counted as row 1.
	sheetRowOffset = 2
)

// ValidateRecords normalizes a structured batch. Rows are numbered from 1.
func ValidateRecords(records []Record) Result {
	result := Result{
		Total:    len(records),
		Accepted: make([]event.PersonInput, 0, len(records)),
		Errors:   make([]string, 0),
	}

	for i, record := range records {
		person, problem := normalizeRow(record.Name, record.Contact, record.Tags)
		if problem != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+1, problem))
			continue
		}
		result.Accepted = append(result.Accepted, person)
	}

	return result
}

// ValidateSheet normalizes a tabular batch. The sheet must carry Name and
// Contact headers; tags come from a comma separated Tags column followed by
// every other column whose header starts with "Tag", in column order.
func ValidateSheet(sheet Sheet) (Result, error) {
	layout, err := readLayout(sheet.Headers())
	if err != nil {
		return Result{}, err
	}

	rows := sheet.Rows()
	result := Result{
		Total:    len(rows),
		Accepted: make([]event.PersonInput, 0, len(rows)),
		Errors:   make([]string, 0),
	}

	for i, cells := range rows {
		r := row(cells)

		var tags []string
		if value, ok := r.value(layout.tags); ok {
			tags = append(tags, strings.Split(value, tagsDelimiter)...)
		}
		for _, column := range layout.tagColumns {
			if value, ok := r.value(column); ok {
				tags = append(tags, value)
			}
		}

		name, _ := r.value(layout.name)
		contact, _ := r.value(layout.contact)

		person, problem := normalizeRow(name, contact, tags)
		if problem != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", i+sheetRowOffset, problem))
			continue
		}
		result.Accepted = append(result.Accepted, person)
	}

	return result, nil
}

type layout struct {
	name       int
	contact    int
	tags       int
	tagColumns []int
}

func readLayout(headers []string) (layout, error) {
	l := layout{name: -1, contact: -1, tags: -1}
	for i, header := range headers {
		switch {
		case header == nameHeader && l.name < 0:
			l.name = i
		case header == contactHeader && l.contact < 0:
			l.contact = i
		case header == tagsHeader && l.tags < 0:
			l.tags = i
		case strings.HasPrefix(header, tagPrefix):
			l.tagColumns = append(l.tagColumns, i)
		}
	}

	var missing []string
	if l.name < 0 {
		missing = append(missing, nameHeader)
	}
	if l.contact < 0 {
		missing = append(missing, contactHeader)
	}
	if len(missing) > 0 {
		return layout{}, fmt.Errorf("%w: missing required columns: %s", ErrMalformedInput, strings.Join(missing, ", "))
	}
	return l, nil
}

// row gives named-column access to one data row. A cell is present when the
// row reaches that column and the cell is not blank.
type row []string

func (r row) value(column int) (string, bool) {
	if column < 0 || column >= len(r) {
		return "", false
	}
	if r[column] == "" {
		return "", false
	}
	return r[column], true
}

func normalizeRow(name, contact string, tags []string) (event.PersonInput, string) {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)

	switch {
	case name == "" && contact == "":
		return event.PersonInput{}, "name and contact are required"
	case name == "":
		return event.PersonInput{}, "name is required"
	case contact == "":
		return event.PersonInput{}, "contact is required"
	}

	return event.PersonInput{
		Name:    name,
		Contact: contact,
		Tags:    mergeTags(tags),
	}, ""
}

// mergeTags trims, drops empties and removes exact duplicates, keeping the
// first occurrence of each tag.
func mergeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
