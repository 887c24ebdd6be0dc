package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	eventdomain "people-monitor-go/internal/domain/event"
)

// EventRepository keeps events, rosters and responses in process memory. A
// transaction works on a copy of the whole store and swaps it in on success,
// so it is meant for development and tests rather than large rosters.
type EventRepository struct {
	mu   *sync.Mutex
	data *eventData
	inTx bool
}

type eventData struct {
	events    map[string]eventdomain.Event
	people    map[string][]eventdomain.Person
	responses map[string]map[string]eventdomain.Response
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		mu: &sync.Mutex{},
		data: &eventData{
			events:    make(map[string]eventdomain.Event),
			people:    make(map[string][]eventdomain.Person),
			responses: make(map[string]map[string]eventdomain.Response),
		},
	}
}

func (r *EventRepository) Transaction(ctx context.Context, fn func(eventdomain.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	staged := r.data.clone()
	if err := fn(&EventRepository{mu: r.mu, data: staged, inTx: true}); err != nil {
		return err
	}
	*r.data = *staged
	return nil
}

func (r *EventRepository) CreateEvent(ctx context.Context, event *eventdomain.Event) error {
	return r.with(func(d *eventData) error {
		now := time.Now().UTC()
		if event.CreatedAt.IsZero() {
			event.CreatedAt = now
		}
		event.UpdatedAt = now
		d.events[event.ID] = *event
		return nil
	})
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (*eventdomain.Event, error) {
	var result eventdomain.Event
	err := r.with(func(d *eventData) error {
		event, ok := d.events[eventID]
		if !ok {
			return eventdomain.ErrEventNotFound
		}
		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *EventRepository) ListEventsByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]eventdomain.Event, error) {
	events := make([]eventdomain.Event, 0)
	err := r.with(func(d *eventData) error {
		for _, event := range d.events {
			if event.OwnerID != ownerID {
				continue
			}
			if activeOnly && !event.IsActive {
				continue
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *eventdomain.Event) error {
	return r.with(func(d *eventData) error {
		stored, ok := d.events[event.ID]
		if !ok {
			return eventdomain.ErrEventNotFound
		}
		stored.Title = event.Title
		stored.Description = event.Description
		stored.CalamityType = event.CalamityType
		stored.UpdatedAt = time.Now().UTC()
		d.events[event.ID] = stored
		return nil
	})
}

func (r *EventRepository) SetEventActive(ctx context.Context, eventID string, active bool) error {
	return r.with(func(d *eventData) error {
		stored, ok := d.events[eventID]
		if !ok {
			return eventdomain.ErrEventNotFound
		}
		stored.IsActive = active
		stored.UpdatedAt = time.Now().UTC()
		d.events[eventID] = stored
		return nil
	})
}

func (r *EventRepository) ListPeople(ctx context.Context, eventID string) ([]eventdomain.Person, error) {
	var people []eventdomain.Person
	err := r.with(func(d *eventData) error {
		people = clonePeople(d.people[eventID])
		return nil
	})
	return people, err
}

func (r *EventRepository) GetPerson(ctx context.Context, eventID, personID string) (*eventdomain.Person, error) {
	var result eventdomain.Person
	err := r.with(func(d *eventData) error {
		for _, person := range d.people[eventID] {
			if person.ID == personID {
				result = clonePerson(person)
				return nil
			}
		}
		return eventdomain.ErrPersonNotFound
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *EventRepository) AppendPeople(ctx context.Context, eventID string, people []eventdomain.Person) error {
	return r.with(func(d *eventData) error {
		roster := d.people[eventID]
		next := 0
		if len(roster) > 0 {
			next = roster[len(roster)-1].Position + 1
		}

		now := time.Now().UTC()
		for i := range people {
			people[i].EventID = eventID
			people[i].Position = next + i
			if people[i].CreatedAt.IsZero() {
				people[i].CreatedAt = now
			}
			roster = append(roster, clonePerson(people[i]))
		}
		d.people[eventID] = roster
		return nil
	})
}

func (r *EventRepository) UpdatePerson(ctx context.Context, person *eventdomain.Person) error {
	return r.with(func(d *eventData) error {
		roster := d.people[person.EventID]
		for i := range roster {
			if roster[i].ID != person.ID {
				continue
			}
			roster[i].Name = person.Name
			roster[i].Contact = person.Contact
			roster[i].Tags = cloneTags(person.Tags)
			return nil
		}
		return eventdomain.ErrPersonNotFound
	})
}

func (r *EventRepository) DeletePerson(ctx context.Context, eventID, personID string) error {
	return r.with(func(d *eventData) error {
		roster := d.people[eventID]
		for i := range roster {
			if roster[i].ID == personID {
				d.people[eventID] = append(roster[:i:i], roster[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

func (r *EventRepository) UpsertResponse(ctx context.Context, response *eventdomain.Response) error {
	return r.with(func(d *eventData) error {
		byPerson, ok := d.responses[response.EventID]
		if !ok {
			byPerson = make(map[string]eventdomain.Response)
			d.responses[response.EventID] = byPerson
		}
		stored := *response
		stored.Message = cloneString(response.Message)
		byPerson[response.PersonID] = stored
		return nil
	})
}

func (r *EventRepository) ListResponses(ctx context.Context, eventID string) ([]eventdomain.Response, error) {
	responses := make([]eventdomain.Response, 0)
	err := r.with(func(d *eventData) error {
		for _, response := range d.responses[eventID] {
			response.Message = cloneString(response.Message)
			responses = append(responses, response)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(responses, func(i, j int) bool {
		if responses[i].ResponseTime.Equal(responses[j].ResponseTime) {
			return responses[i].PersonID < responses[j].PersonID
		}
		return responses[i].ResponseTime.Before(responses[j].ResponseTime)
	})
	return responses, nil
}

func (r *EventRepository) DeleteResponse(ctx context.Context, eventID, personID string) error {
	return r.with(func(d *eventData) error {
		delete(d.responses[eventID], personID)
		return nil
	})
}

func (r *EventRepository) DeleteResponsesByEvent(ctx context.Context, eventID string) error {
	return r.with(func(d *eventData) error {
		delete(d.responses, eventID)
		return nil
	})
}

func (r *EventRepository) with(fn func(d *eventData) error) error {
	if r.inTx {
		return fn(r.data)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.data)
}

func (d *eventData) clone() *eventData {
	cloned := &eventData{
		events:    make(map[string]eventdomain.Event, len(d.events)),
		people:    make(map[string][]eventdomain.Person, len(d.people)),
		responses: make(map[string]map[string]eventdomain.Response, len(d.responses)),
	}
	for id, event := range d.events {
		cloned.events[id] = event
	}
	for id, roster := range d.people {
		cloned.people[id] = clonePeople(roster)
	}
	for id, byPerson := range d.responses {
		copied := make(map[string]eventdomain.Response, len(byPerson))
		for personID, response := range byPerson {
			copied[personID] = response
		}
		cloned.responses[id] = copied
	}
	return cloned
}

func clonePeople(people []eventdomain.Person) []eventdomain.Person {
	cloned := make([]eventdomain.Person, len(people))
	for i := range people {
		cloned[i] = clonePerson(people[i])
	}
	return cloned
}

func clonePerson(person eventdomain.Person) eventdomain.Person {
	person.Tags = cloneTags(person.Tags)
	return person
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	cloned := make([]string, len(tags))
	copy(cloned, tags)
	return cloned
}
