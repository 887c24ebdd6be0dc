package events

import (
	"net/http"

	eventdomain "people-monitor-go/internal/domain/event"
)

// PublicEvent serves the unauthenticated respond page: names only, no contacts.
func (h *Handlers) PublicEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	view, err := h.Events.PublicEvent(r.Context(), eventID)
	if err != nil {
		h.fail(w, "respond.view", err, "event_id", eventID)
		return
	}

	people := make([]publicPersonEntry, 0, len(view.People))
	for _, person := range view.People {
		people = append(people, publicPersonEntry{ID: person.ID, Name: person.Name})
	}
	writeJSON(w, http.StatusOK, publicEventResponse{
		ID:           view.Event.ID,
		Title:        view.Event.Title,
		Description:  view.Event.Description,
		CalamityType: view.Event.CalamityType,
		People:       people,
	})
}

func (h *Handlers) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("respond.submit: invalid json", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	response, err := h.Events.SubmitResponse(r.Context(), eventID, eventdomain.ResponseInput(req))
	if err != nil {
		h.fail(w, "respond.submit", err, "event_id", eventID, "person_id", req.PersonID)
		return
	}

	writeJSON(w, http.StatusOK, toResponseResponse(*response))
}

func (h *Handlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	responses, err := h.Events.ListResponses(r.Context(), owner, eventID)
	if err != nil {
		h.fail(w, "responses.list", err, "event_id", eventID, "owner_id", owner)
		return
	}

	out := make([]responseResponse, 0, len(responses))
	for _, response := range responses {
		out = append(out, toResponseResponse(response))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	stats, err := h.Stats.EventStatistics(r.Context(), owner, eventID)
	if err != nil {
		h.fail(w, "responses.statistics", err, "event_id", eventID, "owner_id", owner)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
