package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"people-monitor-go/internal/domain/event"
)

type fakeRoster struct {
	events map[string][]event.Person
	calls  int
}

func (f *fakeRoster) AddPeople(ctx context.Context, ownerID, eventID string, inputs []event.PersonInput) ([]event.Person, error) {
	f.calls++
	if _, ok := f.events[eventID]; !ok {
		return nil, event.ErrEventNotFound
	}
	added := make([]event.Person, 0, len(inputs))
	for i, input := range inputs {
		added = append(added, event.Person{
			EventID: eventID,
			ID:      fmt.Sprintf("p-%d", len(f.events[eventID])+i+1),
			Name:    input.Name,
			Contact: input.Contact,
			Tags:    input.Tags,
		})
	}
	f.events[eventID] = append(f.events[eventID], added...)
	return added, nil
}

type fakeImportRecorder struct {
	accepted int
	rejected int
	sources  []string
}

func (f *fakeImportRecorder) ImportCompleted(source string, accepted, rejected int) {
	f.sources = append(f.sources, source)
	f.accepted += accepted
	f.rejected += rejected
}

func TestImportRecordsAppendsAccepted(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{"evt-1": nil}}
	recorder := &fakeImportRecorder{}
	svc := NewService(roster, 0, recorder)

	result, err := svc.ImportRecords(context.Background(), "owner-1", "evt-1", []Record{
		{Name: "A", Contact: "a@x"},
		{Name: "", Contact: "b@x"},
		{Name: "C", Contact: ""},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AcceptedCount() != 1 || len(result.Errors) != 2 {
		t.Fatalf("expected 1 accepted and 2 errors, got %d and %d", result.AcceptedCount(), len(result.Errors))
	}
	if len(roster.events["evt-1"]) != 1 || roster.events["evt-1"][0].Name != "A" {
		t.Fatalf("expected roster to gain A, got %+v", roster.events["evt-1"])
	}
	if len(result.People) != 1 || result.People[0].ID == "" {
		t.Fatalf("expected appended people in result, got %+v", result.People)
	}
	if recorder.accepted != 1 || recorder.rejected != 2 || recorder.sources[0] != SourceList {
		t.Fatalf("unexpected recorder state %+v", recorder)
	}
}

func TestImportAllRejectedLeavesRoster(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{"evt-1": nil}}
	svc := NewService(roster, 0, nil)

	result, err := svc.ImportRecords(context.Background(), "owner-1", "evt-1", []Record{{Name: "", Contact: ""}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.AcceptedCount() != 0 || len(result.Errors) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(roster.events["evt-1"]) != 0 {
		t.Fatalf("expected no roster change")
	}
}

func TestImportEventNotFound(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{}}
	svc := NewService(roster, 0, nil)

	_, err := svc.ImportRecords(context.Background(), "owner-1", "missing", []Record{{Name: "A", Contact: "a@x"}})
	if !errors.Is(err, event.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestImportSheetMalformedSkipsRoster(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{"evt-1": nil}}
	svc := NewService(roster, 0, nil)

	_, err := svc.ImportSheet(context.Background(), "owner-1", "evt-1", table{
		headers: []string{"Full Name", "Contact"},
		rows:    [][]string{{"A", "a@x"}},
	})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if roster.calls != 0 {
		t.Fatalf("expected roster untouched, got %d calls", roster.calls)
	}
}

func TestImportSheetRowLimit(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{"evt-1": nil}}
	svc := NewService(roster, 2, nil)

	_, err := svc.ImportSheet(context.Background(), "owner-1", "evt-1", table{
		headers: []string{"Name", "Contact"},
		rows:    [][]string{{"A", "a"}, {"B", "b"}, {"C", "c"}},
	})
	if !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("expected ErrTooManyRows, got %v", err)
	}
}

func TestImportSheetAppendsMergedTags(t *testing.T) {
	roster := &fakeRoster{events: map[string][]event.Person{"evt-1": nil}}
	svc := NewService(roster, 0, nil)

	result, err := svc.ImportSheet(context.Background(), "owner-1", "evt-1", table{
		headers: []string{"Name", "Contact", "Tags", "Tag1"},
		rows:    [][]string{{"Bob", "b@x", "IT, Ops", "IT"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Total != 1 || result.AcceptedCount() != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	tags := roster.events["evt-1"][0].Tags
	if len(tags) != 2 || tags[0] != "IT" || tags[1] != "Ops" {
		t.Fatalf("expected [IT Ops], got %v", tags)
	}
}
