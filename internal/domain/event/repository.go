package event

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	ListEventsByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]Event, error)
	UpdateEvent(ctx context.Context, event *Event) error
	SetEventActive(ctx context.Context, eventID string, active bool) error

	ListPeople(ctx context.Context, eventID string) ([]Person, error)
	GetPerson(ctx context.Context, eventID, personID string) (*Person, error)
	// AppendPeople adds people after the current tail of the roster, keeping
	// their slice order, and assigns Position on each element.
	AppendPeople(ctx context.Context, eventID string, people []Person) error
	UpdatePerson(ctx context.Context, person *Person) error
	DeletePerson(ctx context.Context, eventID, personID string) error

	UpsertResponse(ctx context.Context, response *Response) error
	ListResponses(ctx context.Context, eventID string) ([]Response, error)
	DeleteResponse(ctx context.Context, eventID, personID string) error
	DeleteResponsesByEvent(ctx context.Context, eventID string) error
}
