package events

import (
	"time"

	eventdomain "people-monitor-go/internal/domain/event"
	"people-monitor-go/internal/domain/importer"
)

type eventRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	CalamityType string `json:"calamity_type"`
}

type duplicateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type personRequest struct {
	Name    string   `json:"name"`
	Contact string   `json:"contact"`
	Tags    []string `json:"tags"`
}

type bulkRequest struct {
	People []personRequest `json:"people"`
}

type respondRequest struct {
	PersonID   string  `json:"person_id"`
	PersonName string  `json:"person_name"`
	Status     string  `json:"status"`
	Message    *string `json:"message"`
}

type eventResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	CalamityType string           `json:"calamity_type"`
	OwnerID      string           `json:"owner_id"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	People       []personResponse `json:"people,omitempty"`
}

type personResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Contact string   `json:"contact"`
	Tags    []string `json:"tags"`
}

type responseResponse struct {
	PersonID     string    `json:"person_id"`
	PersonName   string    `json:"person_name"`
	Status       string    `json:"status"`
	ResponseTime time.Time `json:"response_time"`
	Message      *string   `json:"message"`
}

type shareResponse struct {
	ShareURL   string `json:"share_url"`
	EventTitle string `json:"event_title"`
}

// publicEventResponse omits contacts: the respond page is unauthenticated.
type publicEventResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	CalamityType string              `json:"calamity_type"`
	People       []publicPersonEntry `json:"people"`
}

type publicPersonEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type importResponse struct {
	AcceptedCount  int              `json:"accepted_count"`
	TotalRequested *int             `json:"total_requested,omitempty"`
	TotalRows      *int             `json:"total_rows,omitempty"`
	Errors         []string         `json:"errors"`
	People         []personResponse `json:"people"`
}

func toEventResponse(event eventdomain.Event) eventResponse {
	return eventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		CalamityType: event.CalamityType,
		OwnerID:      event.OwnerID,
		IsActive:     event.IsActive,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}

func toPersonResponse(person eventdomain.Person) personResponse {
	tags := person.Tags
	if tags == nil {
		tags = []string{}
	}
	return personResponse{
		ID:      person.ID,
		Name:    person.Name,
		Contact: person.Contact,
		Tags:    tags,
	}
}

func toPeopleResponse(people []eventdomain.Person) []personResponse {
	response := make([]personResponse, 0, len(people))
	for _, person := range people {
		response = append(response, toPersonResponse(person))
	}
	return response
}

func toResponseResponse(response eventdomain.Response) responseResponse {
	return responseResponse{
		PersonID:     response.PersonID,
		PersonName:   response.PersonName,
		Status:       string(response.Status),
		ResponseTime: response.ResponseTime,
		Message:      response.Message,
	}
}

func toImportResponse(result importer.Result, source string) importResponse {
	total := result.Total
	response := importResponse{
		AcceptedCount: result.AcceptedCount(),
		Errors:        result.Errors,
		People:        toPeopleResponse(result.People),
	}
	if response.Errors == nil {
		response.Errors = []string{}
	}
	if source == importer.SourceSheet {
		response.TotalRows = &total
	} else {
		response.TotalRequested = &total
	}
	return response
}

func (r personRequest) input() eventdomain.PersonInput {
	return eventdomain.PersonInput{Name: r.Name, Contact: r.Contact, Tags: r.Tags}
}
