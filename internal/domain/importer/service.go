package importer

import (
	"context"
	"fmt"

	"people-monitor-go/internal/domain/event"
)

const defaultMaxRows = 5000

type RosterAppender interface {
	AddPeople(ctx context.Context, ownerID, eventID string, inputs []event.PersonInput) ([]event.Person, error)
}

type Recorder interface {
	ImportCompleted(source string, accepted, rejected int)
}

type noopRecorder struct{}

func (noopRecorder) ImportCompleted(string, int, int) {}

type Service struct {
	roster   RosterAppender
	maxRows  int
	recorder Recorder
}

func NewService(roster RosterAppender, maxRows int, recorder Recorder) *Service {
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{roster: roster, maxRows: maxRows, recorder: recorder}
}

func (s *Service) ImportRecords(ctx context.Context, ownerID, eventID string, records []Record) (Result, error) {
	if len(records) > s.maxRows {
		return Result{}, fmt.Errorf("%w: %d records, limit is %d", ErrTooManyRows, len(records), s.maxRows)
	}
	return s.apply(ctx, ownerID, eventID, SourceList, ValidateRecords(records))
}

func (s *Service) ImportSheet(ctx context.Context, ownerID, eventID string, sheet Sheet) (Result, error) {
	if rows := len(sheet.Rows()); rows > s.maxRows {
		return Result{}, fmt.Errorf("%w: %d rows, limit is %d", ErrTooManyRows, rows, s.maxRows)
	}

	result, err := ValidateSheet(sheet)
	if err != nil {
		return Result{}, err
	}
	return s.apply(ctx, ownerID, eventID, SourceSheet, result)
}

// apply appends the accepted rows as one batch. An all-rejected batch still
// resolves the event, so a missing event is reported instead of an empty result.
func (s *Service) apply(ctx context.Context, ownerID, eventID, source string, result Result) (Result, error) {
	people, err := s.roster.AddPeople(ctx, ownerID, eventID, result.Accepted)
	if err != nil {
		return Result{}, err
	}

	result.People = people
	s.recorder.ImportCompleted(source, result.AcceptedCount(), len(result.Errors))
	return result, nil
}
