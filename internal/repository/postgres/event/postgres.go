package event

import (
	"context"
	"errors"
	"time"

	eventdomain "people-monitor-go/internal/domain/event"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresRepository stores events, rosters and responses through gorm. The
// queries stay within what both the postgres and sqlite dialects accept.
// appendBatchSize keeps each INSERT under the bind-variable limits of SQLite
// (32766) and Postgres (65535); a person binds seven columns.
const appendBatchSize = 500

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(eventdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateEvent(ctx context.Context, event *eventdomain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) GetEvent(ctx context.Context, eventID string) (*eventdomain.Event, error) {
	if !validID(eventID) {
		return nil, eventdomain.ErrEventNotFound
	}

	var event eventdomain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) ListEventsByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]eventdomain.Event, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var events []eventdomain.Event
	if err := query.Order("created_at desc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) UpdateEvent(ctx context.Context, event *eventdomain.Event) error {
	result := r.db.WithContext(ctx).
		Model(&eventdomain.Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":         event.Title,
			"description":   event.Description,
			"calamity_type": event.CalamityType,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrEventNotFound
	}
	return nil
}

func (r *PostgresRepository) SetEventActive(ctx context.Context, eventID string, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&eventdomain.Event{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrEventNotFound
	}
	return nil
}

func (r *PostgresRepository) ListPeople(ctx context.Context, eventID string) ([]eventdomain.Person, error) {
	people := make([]eventdomain.Person, 0)
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position asc").
		Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *PostgresRepository) GetPerson(ctx context.Context, eventID, personID string) (*eventdomain.Person, error) {
	if !validID(personID) {
		return nil, eventdomain.ErrPersonNotFound
	}

	var person eventdomain.Person
	if err := r.db.WithContext(ctx).Where("event_id = ? AND id = ?", eventID, personID).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventdomain.ErrPersonNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PostgresRepository) AppendPeople(ctx context.Context, eventID string, people []eventdomain.Person) error {
	if len(people) == 0 {
		return nil
	}

	var last int64
	if err := r.db.WithContext(ctx).
		Model(&eventdomain.Person{}).
		Where("event_id = ?", eventID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&last).Error; err != nil {
		return err
	}

	for i := range people {
		people[i].EventID = eventID
		people[i].Position = int(last) + 1 + i
	}
	return r.db.WithContext(ctx).CreateInBatches(&people, appendBatchSize).Error
}

func (r *PostgresRepository) UpdatePerson(ctx context.Context, person *eventdomain.Person) error {
	result := r.db.WithContext(ctx).
		Model(person).
		Select("name", "contact", "tags").
		Updates(person)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return eventdomain.ErrPersonNotFound
	}
	return nil
}

func (r *PostgresRepository) DeletePerson(ctx context.Context, eventID, personID string) error {
	return r.db.WithContext(ctx).Delete(&eventdomain.Person{}, "event_id = ? AND id = ?", eventID, personID).Error
}

func (r *PostgresRepository) UpsertResponse(ctx context.Context, response *eventdomain.Response) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "person_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"person_name", "status", "response_time", "message"}),
		}).
		Create(response).Error
}

func (r *PostgresRepository) ListResponses(ctx context.Context, eventID string) ([]eventdomain.Response, error) {
	responses := make([]eventdomain.Response, 0)
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("response_time asc, person_id asc").
		Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *PostgresRepository) DeleteResponse(ctx context.Context, eventID, personID string) error {
	return r.db.WithContext(ctx).Delete(&eventdomain.Response{}, "event_id = ? AND person_id = ?", eventID, personID).Error
}

func (r *PostgresRepository) DeleteResponsesByEvent(ctx context.Context, eventID string) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&eventdomain.Response{}).Error
}

// validID keeps malformed ids away from uuid columns, where postgres would
// reject the query instead of returning no rows.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
