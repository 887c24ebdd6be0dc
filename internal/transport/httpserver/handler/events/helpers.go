package events

import (
	"net/http"
	"strings"

	eventdomain "people-monitor-go/internal/domain/event"
	"people-monitor-go/internal/domain/importer"
	"people-monitor-go/internal/sheet"
	commonhandler "people-monitor-go/internal/transport/httpserver/handler/common"
	"people-monitor-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

var errorMappings = []commonhandler.ErrorMapping{
	{Err: eventdomain.ErrEventNotFound, Status: http.StatusNotFound, Code: "event_not_found", Message: "event not found"},
	{Err: eventdomain.ErrPersonNotFound, Status: http.StatusNotFound, Code: "person_not_found", Message: "person not found in event"},
	{Err: eventdomain.ErrEventClosed, Status: http.StatusConflict, Code: "event_closed", Message: "event is no longer active"},
	{Err: eventdomain.ErrInvalidEvent, Status: http.StatusBadRequest, Code: "invalid_request"},
	{Err: eventdomain.ErrInvalidPerson, Status: http.StatusBadRequest, Code: "invalid_request"},
	{Err: eventdomain.ErrInvalidStatus, Status: http.StatusBadRequest, Code: "invalid_status", Message: "status must be safe or need_help"},
	{Err: importer.ErrTooManyRows, Status: http.StatusRequestEntityTooLarge, Code: "too_many_rows"},
	{Err: importer.ErrMalformedInput, Status: http.StatusBadRequest, Code: "malformed_input"},
	{Err: sheet.ErrUnsupportedType, Status: http.StatusUnsupportedMediaType, Code: "unsupported_file_type", Message: "upload a .xlsx, .xlsm or .csv file"},
	{Err: sheet.ErrEmpty, Status: http.StatusBadRequest, Code: "malformed_input", Message: "file has no header row"},
	{Err: sheet.ErrMalformed, Status: http.StatusBadRequest, Code: "malformed_input", Message: "file could not be read as a spreadsheet"},
}

// fail writes the response for err. Mapped errors are expected outcomes and
// are logged as business errors; anything else is a 500.
func (h *Handlers) fail(w http.ResponseWriter, op string, err error, args ...any) {
	if mapping, ok := commonhandler.MatchError(err, errorMappings); ok {
		h.log.BusinessError(op+": "+mapping.Code, err, args...)
		writeError(w, mapping.Status, mapping.Code, mapping.Message)
		return
	}
	h.log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}
	return userID, true
}

func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", name+" is required")
		return "", false
	}
	return value, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}
