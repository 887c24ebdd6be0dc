package event

import (
	"context"
	"strings"
)

// SubmitResponse upserts the person's response, replacing every field of any
// previous one. It is public: the caller is not checked against the owner.
func (s *Service) SubmitResponse(ctx context.Context, eventID string, input ResponseInput) (*Response, error) {
	status, err := ParseStatus(input.Status)
	if err != nil {
		return nil, err
	}
	personID := strings.TrimSpace(input.PersonID)

	unlock := s.locks.lock(eventID)
	defer unlock()

	var result Response
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.Listable() {
			return ErrEventClosed
		}

		person, err := tx.GetPerson(ctx, eventID, personID)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(input.PersonName)
		if name == "" {
			name = person.Name
		}

		response := Response{
			EventID:      eventID,
			PersonID:     person.ID,
			PersonName:   name,
			Status:       status,
			ResponseTime: s.now().UTC(),
			Message:      input.Message,
		}
		if err := tx.UpsertResponse(ctx, &response); err != nil {
			return err
		}

		result = response
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.ResponseSubmitted(status)
	return &result, nil
}

func (s *Service) ListResponses(ctx context.Context, ownerID, eventID string) ([]Response, error) {
	unlock := s.locks.lock(eventID)
	defer unlock()

	if _, err := ownedEvent(ctx, s.repo, ownerID, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListResponses(ctx, eventID)
}

// PublicEvent returns what a responder needs to pick their name: the event and
// its roster. Soft-deleted events are reported as closed.
func (s *Service) PublicEvent(ctx context.Context, eventID string) (*PublicEvent, error) {
	unlock := s.locks.lock(eventID)
	defer unlock()

	event, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Listable() {
		return nil, ErrEventClosed
	}

	people, err := s.repo.ListPeople(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &PublicEvent{Event: *event, People: people}, nil
}

// Snapshot reads the event, its roster and its responses under the event lock
// and in one transaction, so the three are mutually consistent.
func (s *Service) Snapshot(ctx context.Context, ownerID, eventID string) (Snapshot, error) {
	unlock := s.locks.lock(eventID)
	defer unlock()

	var snapshot Snapshot
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		event, err := ownedEvent(ctx, tx, ownerID, eventID)
		if err != nil {
			return err
		}

		people, err := tx.ListPeople(ctx, eventID)
		if err != nil {
			return err
		}

		responses, err := tx.ListResponses(ctx, eventID)
		if err != nil {
			return err
		}

		snapshot = Snapshot{Event: *event, People: people, Responses: responses}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}
