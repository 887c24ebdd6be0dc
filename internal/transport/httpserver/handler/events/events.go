package events

import (
	"net/http"

	eventdomain "people-monitor-go/internal/domain/event"
)

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	events, err := h.Events.ListEvents(r.Context(), owner)
	if err != nil {
		h.fail(w, "events.list", err, "owner_id", owner)
		return
	}

	response := make([]eventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, toEventResponse(event))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("events.create: invalid json", err, "owner_id", owner)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	event, err := h.Events.CreateEvent(r.Context(), owner, eventdomain.EventInput(req))
	if err != nil {
		h.fail(w, "events.create", err, "owner_id", owner)
		return
	}

	h.log.Info("events.create: created", "event_id", event.ID, "owner_id", owner)
	writeJSON(w, http.StatusCreated, toEventResponse(*event))
}

// GetEvent returns the event with its roster, read in one snapshot.
func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	snapshot, err := h.Events.Snapshot(r.Context(), owner, eventID)
	if err != nil {
		h.fail(w, "events.get", err, "event_id", eventID, "owner_id", owner)
		return
	}

	response := toEventResponse(snapshot.Event)
	response.People = toPeopleResponse(snapshot.People)
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("events.update: invalid json", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	event, err := h.Events.UpdateEvent(r.Context(), owner, eventID, eventdomain.EventInput(req))
	if err != nil {
		h.fail(w, "events.update", err, "event_id", eventID, "owner_id", owner)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*event))
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	if err := h.Events.DeleteEvent(r.Context(), owner, eventID); err != nil {
		h.fail(w, "events.delete", err, "event_id", eventID, "owner_id", owner)
		return
	}

	h.log.Info("events.delete: deactivated", "event_id", eventID, "owner_id", owner)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) DuplicateEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	var req duplicateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("events.duplicate: invalid json", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	event, err := h.Events.DuplicateEvent(r.Context(), owner, eventID, req.Title, req.Description)
	if err != nil {
		h.fail(w, "events.duplicate", err, "event_id", eventID, "owner_id", owner)
		return
	}

	h.log.Info("events.duplicate: created", "source_event_id", eventID, "event_id", event.ID)
	writeJSON(w, http.StatusCreated, toEventResponse(*event))
}

func (h *Handlers) ShareEvent(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	link, err := h.Events.ShareLink(r.Context(), owner, eventID)
	if err != nil {
		h.fail(w, "events.share", err, "event_id", eventID, "owner_id", owner)
		return
	}

	writeJSON(w, http.StatusOK, shareResponse{ShareURL: link.URL, EventTitle: link.EventTitle})
}
