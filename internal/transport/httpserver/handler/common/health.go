package common

import "net/http"

type healthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Message: "People Monitor API", Status: "running"})
}
