package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON body with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response body", "error", err)
	}
}

// respondError maps service errors onto HTTP statuses: validation failures
// are 400, missing rows 404, conflicts 409, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	case apperr.IsConflict(err):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
		respondJSON(w, status, errorResponse{Error: "internal server error"})

		return
	}

	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it has already written the 400 response.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})

		return false
	}

	if err := validate.Struct(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return false
	}

	return true
}

// idParam parses a numeric url parameter. On failure it has already written
// the 400 response.
func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name + " parameter"})

		return 0, false
	}

	return id, true
}

func userIDParam(r *http.Request) string {
	return chi.URLParam(r, "userID")
}
