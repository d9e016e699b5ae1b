package handler

import (
	"net/http"

	"github.com/centsible/backend/internal/domain"
)

// ListTags handles GET /tags.
// The optional ?q= query parameter filters tags by name prefix; page and
// limit control pagination.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	tags, total, err := s.tags.ListPaged(r.Context(), owner, r.URL.Query().Get("q"), params)
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse[domain.Tag]{
		Data: tags,
		Pagination: paginationMeta{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
