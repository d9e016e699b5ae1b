package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetMonthSummary handles GET /summary/{year}/{month}.
func (s *Server) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeBadRequest(w, "year must be a number")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeBadRequest(w, "month must be a number")
		return
	}

	summary, err := s.summaries.Month(r.Context(), owner, year, month)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
