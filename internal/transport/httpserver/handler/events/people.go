package events

import (
	"errors"
	"net/http"

	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/sheet"
)

const uploadField = "file"

func (h *Handlers) ListPeople(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	people, err := h.Events.ListPeople(r.Context(), owner, eventID)
	if err != nil {
		h.fail(w, "people.list", err, "event_id", eventID, "owner_id", owner)
		return
	}

	writeJSON(w, http.StatusOK, toPeopleResponse(people))
}

func (h *Handlers) AddPerson(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("people.add: invalid json", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	person, err := h.Events.AddPerson(r.Context(), owner, eventID, req.input())
	if err != nil {
		h.fail(w, "people.add", err, "event_id", eventID, "owner_id", owner)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonResponse(*person))
}

func (h *Handlers) EditPerson(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}
	personID, ok := pathParam(w, r, "person_id")
	if !ok {
		return
	}

	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("people.edit: invalid json", err, "event_id", eventID, "person_id", personID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	person, err := h.Events.EditPerson(r.Context(), owner, eventID, personID, req.input())
	if err != nil {
		h.fail(w, "people.edit", err, "event_id", eventID, "person_id", personID)
		return
	}

	writeJSON(w, http.StatusOK, toPersonResponse(*person))
}

func (h *Handlers) RemovePerson(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}
	personID, ok := pathParam(w, r, "person_id")
	if !ok {
		return
	}

	if err := h.Events.RemovePerson(r.Context(), owner, eventID, personID); err != nil {
		h.fail(w, "people.remove", err, "event_id", eventID, "person_id", personID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) BulkAddPeople(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("people.bulk: invalid json", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid json")
		return
	}

	records := make([]importer.Record, 0, len(req.People))
	for _, person := range req.People {
		records = append(records, importer.Record{Name: person.Name, Contact: person.Contact, Tags: person.Tags})
	}

	result, err := h.Importer.ImportRecords(r.Context(), owner, eventID, records)
	if err != nil {
		h.fail(w, "people.bulk", err, "event_id", eventID, "owner_id", owner)
		return
	}

	h.log.Info("people.bulk: imported", "event_id", eventID, "accepted", result.AcceptedCount(), "rejected", len(result.Errors))
	writeJSON(w, http.StatusOK, toImportResponse(result, importer.SourceList))
}

// UploadPeople imports a roster from a multipart spreadsheet upload.
func (h *Handlers) UploadPeople(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathParam(w, r, "event_id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > h.maxUploadBytes {
			h.log.BusinessError("people.upload: file too large", err, "event_id", eventID, "limit", h.maxUploadBytes)
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload limit")
			return
		}
		h.log.BusinessError("people.upload: missing file", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "invalid_request", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	parsed, err := sheet.Parse(header.Filename, file)
	if err != nil {
		h.fail(w, "people.upload", err, "event_id", eventID, "filename", header.Filename)
		return
	}

	result, err := h.Importer.ImportSheet(r.Context(), owner, eventID, parsed)
	if err != nil {
		h.fail(w, "people.upload", err, "event_id", eventID, "filename", header.Filename)
		return
	}

	h.log.Info("people.upload: imported",
		"event_id", eventID,
		"filename", header.Filename,
		"accepted", result.AcceptedCount(),
		"rejected", len(result.Errors),
	)
	writeJSON(w, http.StatusOK, toImportResponse(result, importer.SourceSheet))
}
