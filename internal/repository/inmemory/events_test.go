package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	eventdomain "people-monitor-go/internal/domain/event"
	userdomain "people-monitor-go/internal/domain/user"
)

func TestEventRepositoryRosterOrderAndIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	if err := repo.CreateEvent(ctx, &eventdomain.Event{ID: "evt-1", OwnerID: "owner-1", Title: "Quake", IsActive: true}); err != nil {
		t.Fatalf("create event: %v", err)
	}

	batch := []eventdomain.Person{
		{ID: "p1", Name: "Ann", Contact: "a@x", Tags: []string{"IT"}},
		{ID: "p2", Name: "Bob", Contact: "b@x"},
	}
	if err := repo.AppendPeople(ctx, "evt-1", batch); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.AppendPeople(ctx, "evt-1", []eventdomain.Person{{ID: "p3", Name: "Cy", Contact: "c@x"}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	batch[0].Tags[0] = "mutated"

	people, err := repo.ListPeople(ctx, "evt-1")
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	if len(people) != 3 || people[2].ID != "p3" || people[2].Position != 2 {
		t.Fatalf("unexpected roster %+v", people)
	}
	if people[0].Tags[0] != "IT" {
		t.Fatalf("expected stored tags isolated from caller, got %q", people[0].Tags)
	}

	if err := repo.DeletePerson(ctx, "evt-1", "p2"); err != nil {
		t.Fatalf("delete person: %v", err)
	}
	people, _ = repo.ListPeople(ctx, "evt-1")
	if len(people) != 2 || people[0].ID != "p1" || people[1].ID != "p3" {
		t.Fatalf("unexpected roster after delete %+v", people)
	}
}

func TestEventRepositoryTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	if err := repo.CreateEvent(ctx, &eventdomain.Event{ID: "evt-1", OwnerID: "owner-1", IsActive: true}); err != nil {
		t.Fatalf("create event: %v", err)
	}

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx eventdomain.Repository) error {
		if err := tx.AppendPeople(ctx, "evt-1", []eventdomain.Person{{ID: "p1", Name: "Ann", Contact: "a@x"}}); err != nil {
			return err
		}
		if err := tx.SetEventActive(ctx, "evt-1", false); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	people, _ := repo.ListPeople(ctx, "evt-1")
	event, _ := repo.GetEvent(ctx, "evt-1")
	if len(people) != 0 || !event.IsActive {
		t.Fatalf("expected rollback, got %d people and active=%v", len(people), event.IsActive)
	}
}

func TestEventRepositoryResponses(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, personID := range []string{"p2", "p1"} {
		if err := repo.UpsertResponse(ctx, &eventdomain.Response{
			EventID:      "evt-1",
			PersonID:     personID,
			Status:       eventdomain.StatusSafe,
			ResponseTime: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	if err := repo.UpsertResponse(ctx, &eventdomain.Response{
		EventID:      "evt-1",
		PersonID:     "p2",
		Status:       eventdomain.StatusNeedHelp,
		ResponseTime: base.Add(time.Hour),
	}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	responses, err := repo.ListResponses(ctx, "evt-1")
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(responses) != 2 || responses[0].PersonID != "p1" || responses[1].Status != eventdomain.StatusNeedHelp {
		t.Fatalf("unexpected responses %+v", responses)
	}

	if err := repo.DeleteResponsesByEvent(ctx, "evt-1"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	responses, _ = repo.ListResponses(ctx, "evt-1")
	if len(responses) != 0 {
		t.Fatalf("expected no responses, got %d", len(responses))
	}
}

func TestEventRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	if _, err := repo.GetEvent(ctx, "missing"); !errors.Is(err, eventdomain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := repo.GetPerson(ctx, "missing", "p1"); !errors.Is(err, eventdomain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
	if err := repo.UpdatePerson(ctx, &eventdomain.Person{EventID: "missing", ID: "p1"}); !errors.Is(err, eventdomain.ErrPersonNotFound) {
		t.Fatalf("expected ErrPersonNotFound, got %v", err)
	}
}

func TestEventRepositoryBacksEventService(t *testing.T) {
	ctx := context.Background()
	svc := eventdomain.NewService(NewEventRepository())

	event, err := svc.CreateEvent(ctx, "owner-1", eventdomain.EventInput{Title: "Storm"})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	added, err := svc.AddPeople(ctx, "owner-1", event.ID, []eventdomain.PersonInput{
		{Name: "Ann", Contact: "a@x"},
		{Name: "Bob", Contact: "b@x"},
	})
	if err != nil {
		t.Fatalf("add people: %v", err)
	}
	if _, err := svc.SubmitResponse(ctx, event.ID, eventdomain.ResponseInput{PersonID: added[0].ID, Status: "safe"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snapshot, err := svc.Snapshot(ctx, "owner-1", event.ID)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapshot.People) != 2 || len(snapshot.Responses) != 1 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestProfileStoreMergesFields(t *testing.T) {
	store := NewProfileStore()
	ctx := context.Background()

	email := "a@x"
	if err := store.UpsertProfile(ctx, &userdomain.Profile{UserID: "user-1", Email: &email}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	name := "Ann"
	if err := store.UpsertProfile(ctx, &userdomain.Profile{UserID: "user-1", DisplayName: &name}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if store.count() != 1 {
		t.Fatalf("expected 1 profile, got %d", store.count())
	}
	stored := store.profiles["user-1"]
	if stored.Email == nil || *stored.Email != email || stored.DisplayName == nil || *stored.DisplayName != name {
		t.Fatalf("expected merged profile, got %+v", stored)
	}
}

func TestProfileCacheExpires(t *testing.T) {
	cache := NewProfileCache()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.SetByUserID("user-1", &userdomain.Profile{UserID: "user-1"}, time.Minute)
	if _, ok := cache.GetByUserID("user-1"); !ok {
		t.Fatalf("expected cache hit")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.GetByUserID("user-1"); ok {
		t.Fatalf("expected entry expired")
	}
	if len(cache.items) != 0 {
		t.Fatalf("expected expired entry evicted")
	}
}
