package event

import (
	"context"
	"fmt"
	"strings"
)

func (s *Service) AddPerson(ctx context.Context, ownerID, eventID string, input PersonInput) (*Person, error) {
	normalized, err := NormalizePerson(input)
	if err != nil {
		return nil, err
	}

	people, err := s.AddPeople(ctx, ownerID, eventID, []PersonInput{normalized})
	if err != nil {
		return nil, err
	}
	return &people[0], nil
}

// AddPeople appends the whole batch to the roster in one transaction or not at
// all. An empty batch only checks that the event exists.
func (s *Service) AddPeople(ctx context.Context, ownerID, eventID string, inputs []PersonInput) ([]Person, error) {
	people := make([]Person, 0, len(inputs))
	for i, input := range inputs {
		normalized, err := NormalizePerson(input)
		if err != nil {
			return nil, fmt.Errorf("person %d: %w", i+1, err)
		}
		people = append(people, Person{
			EventID: eventID,
			ID:      s.newID(),
			Name:    normalized.Name,
			Contact: normalized.Contact,
			Tags:    normalized.Tags,
		})
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := ownedEvent(ctx, tx, ownerID, eventID); err != nil {
			return err
		}
		if len(people) == 0 {
			return nil
		}
		return tx.AppendPeople(ctx, eventID, people)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.PeopleAdded(len(people))
	return people, nil
}

func (s *Service) EditPerson(ctx context.Context, ownerID, eventID, personID string, input PersonInput) (*Person, error) {
	normalized, err := NormalizePerson(input)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	var result Person
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := ownedEvent(ctx, tx, ownerID, eventID); err != nil {
			return err
		}

		person, err := tx.GetPerson(ctx, eventID, personID)
		if err != nil {
			return err
		}

		person.Name = normalized.Name
		person.Contact = normalized.Contact
		person.Tags = normalized.Tags
		if err := tx.UpdatePerson(ctx, person); err != nil {
			return err
		}

		result = *person
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// RemovePerson deletes the person and their response. It shares the event lock
// with SubmitResponse, so a response cannot land for a person mid-removal.
func (s *Service) RemovePerson(ctx context.Context, ownerID, eventID, personID string) error {
	unlock := s.locks.lock(eventID)
	defer unlock()

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := ownedEvent(ctx, tx, ownerID, eventID); err != nil {
			return err
		}
		if _, err := tx.GetPerson(ctx, eventID, personID); err != nil {
			return err
		}
		if err := tx.DeletePerson(ctx, eventID, personID); err != nil {
			return err
		}
		return tx.DeleteResponse(ctx, eventID, personID)
	})
	if err != nil {
		return err
	}

	s.recorder.PersonRemoved()
	return nil
}

func (s *Service) ListPeople(ctx context.Context, ownerID, eventID string) ([]Person, error) {
	unlock := s.locks.lock(eventID)
	defer unlock()

	if _, err := ownedEvent(ctx, s.repo, ownerID, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListPeople(ctx, eventID)
}

// NormalizePerson trims name, contact and tags and drops empty tags. Duplicate
// tags are kept.
func NormalizePerson(input PersonInput) (PersonInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)
	if input.Name == "" {
		return input, fmt.Errorf("%w: name is required", ErrInvalidPerson)
	}
	if input.Contact == "" {
		return input, fmt.Errorf("%w: contact is required", ErrInvalidPerson)
	}

	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	input.Tags = tags
	return input, nil
}

func cloneTags(tags []string) []string {
	cloned := make([]string, len(tags))
	copy(cloned, tags)
	return cloned
}
