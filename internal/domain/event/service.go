package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const respondPathPrefix = "/api/respond/"

type Service struct {
	repo     Repository
	locks    *eventLocks
	recorder Recorder
	now      func() time.Time
	newID    func() string
}

func NewService(repo Repository) *Service {
	return NewServiceWithRecorder(repo, nil)
}

func NewServiceWithRecorder(repo Repository, recorder Recorder) *Service {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Service{
		repo:     repo,
		locks:    newEventLocks(),
		recorder: recorder,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) CreateEvent(ctx context.Context, ownerID string, input EventInput) (*Event, error) {
	input, err := normalizeEventInput(input)
	if err != nil {
		return nil, err
	}

	event := Event{
		ID:           s.newID(),
		Title:        input.Title,
		Description:  input.Description,
		CalamityType: input.CalamityType,
		OwnerID:      ownerID,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateEvent(ctx, &event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.recorder.EventCreated()
	return &event, nil
}

func (s *Service) ListEvents(ctx context.Context, ownerID string) ([]Event, error) {
	return s.repo.ListEventsByOwner(ctx, ownerID, true)
}

func (s *Service) GetEvent(ctx context.Context, ownerID, eventID string) (*Event, error) {
	return ownedEvent(ctx, s.repo, ownerID, eventID)
}

func (s *Service) UpdateEvent(ctx context.Context, ownerID, eventID string, input EventInput) (*Event, error) {
	input, err := normalizeEventInput(input)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	var result Event
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		event, err := ownedEvent(ctx, tx, ownerID, eventID)
		if err != nil {
			return err
		}

		event.Title = input.Title
		event.Description = input.Description
		event.CalamityType = input.CalamityType
		if err := tx.UpdateEvent(ctx, event); err != nil {
			return err
		}

		result = *event
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteEvent soft-deletes the event and purges its responses. The purge is not
// undone if the event is ever reactivated.
func (s *Service) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	unlock := s.locks.lock(eventID)
	defer unlock()

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := ownedEvent(ctx, tx, ownerID, eventID); err != nil {
			return err
		}
		if err := tx.SetEventActive(ctx, eventID, false); err != nil {
			return err
		}
		return tx.DeleteResponsesByEvent(ctx, eventID)
	})
}

// DuplicateEvent clones the event and its current roster, person ids included,
// into a new active event. Responses are not copied.
func (s *Service) DuplicateEvent(ctx context.Context, ownerID, eventID, title, description string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	var result Event
	var copied int
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		source, err := ownedEvent(ctx, tx, ownerID, eventID)
		if err != nil {
			return err
		}

		people, err := tx.ListPeople(ctx, eventID)
		if err != nil {
			return err
		}

		clone := Event{
			ID:           s.newID(),
			Title:        title,
			Description:  strings.TrimSpace(description),
			CalamityType: source.CalamityType,
			OwnerID:      source.OwnerID,
			IsActive:     true,
			CreatedAt:    s.now().UTC(),
		}
		if err := tx.CreateEvent(ctx, &clone); err != nil {
			return err
		}

		if len(people) > 0 {
			roster := make([]Person, len(people))
			for i, person := range people {
				roster[i] = Person{
					EventID: clone.ID,
					ID:      person.ID,
					Name:    person.Name,
					Contact: person.Contact,
					Tags:    cloneTags(person.Tags),
				}
			}
			if err := tx.AppendPeople(ctx, clone.ID, roster); err != nil {
				return err
			}
		}

		result = clone
		copied = len(people)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.EventCreated()
	s.recorder.PeopleAdded(copied)
	return &result, nil
}

func (s *Service) ShareLink(ctx context.Context, ownerID, eventID string) (ShareLink, error) {
	event, err := ownedEvent(ctx, s.repo, ownerID, eventID)
	if err != nil {
		return ShareLink{}, err
	}

	return ShareLink{
		URL:        respondPathPrefix + event.ID,
		EventTitle: event.Title,
	}, nil
}

func ownedEvent(ctx context.Context, repo Repository, ownerID, eventID string) (*Event, error) {
	event, err := repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != ownerID {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func normalizeEventInput(input EventInput) (EventInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.CalamityType = strings.TrimSpace(input.CalamityType)
	if input.Title == "" {
		return input, fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	return input, nil
}
