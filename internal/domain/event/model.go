package event

import (
	"strings"
	"time"
)

type Status string

const (
	StatusSafe     Status = "safe"
	StatusNeedHelp Status = "need_help"
)

func (s Status) Valid() bool {
	return s == StatusSafe || s == StatusNeedHelp
}

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type Event struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"not null"`
	Description  string    `gorm:"type:text;not null;default:''"`
	CalamityType string    `gorm:"type:varchar(64);not null;default:''"`
	OwnerID      string    `gorm:"type:text;not null;index"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Listable reports whether the event shows up in listings and accepts responses.
// Direct lookups by id do not use it: a soft-deleted event stays fetchable by
// its owner for as long as the record exists.
func (e *Event) Listable() bool {
	return e.IsActive
}

type Person struct {
	EventID   string    `gorm:"type:uuid;primaryKey"`
	ID        string    `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null;index"`
	Name      string    `gorm:"not null"`
	Contact   string    `gorm:"not null"`
	Tags      []string  `gorm:"serializer:json;type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Person) TableName() string {
	return "event_people"
}

type Response struct {
	EventID      string    `gorm:"type:uuid;primaryKey"`
	PersonID     string    `gorm:"type:uuid;primaryKey"`
	PersonName   string    `gorm:"not null"`
	Status       Status    `gorm:"type:varchar(16);not null"`
	ResponseTime time.Time `gorm:"not null"`
	Message      *string   `gorm:"type:text"`
}

func (Response) TableName() string {
	return "event_responses"
}

type EventInput struct {
	Title        string
	Description  string
	CalamityType string
}

type PersonInput struct {
	Name    string
	Contact string
	Tags    []string
}

type ResponseInput struct {
	PersonID   string
	PersonName string
	Status     string
	Message    *string
}

// Snapshot is a roster and response set read at the same instant.
type Snapshot struct {
	Event     Event
	People    []Person
	Responses []Response
}

type PublicEvent struct {
	Event  Event
	People []Person
}

type ShareLink struct {
	URL        string
	EventTitle string
}
