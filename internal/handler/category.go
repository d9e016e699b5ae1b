package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/domain"
)

// categoryRequest is the JSON body accepted by CreateCategory and
// UpdateCategory. MonthlyBudget is a decimal string; null clears the budget.
type categoryRequest struct {
	Name          string  `json:"name"`
	MonthlyBudget *string `json:"monthly_budget,omitempty"`
}

// CreateCategory handles POST /categories.
func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	c, ok := decodeCategory(w, r)
	if !ok {
		return
	}
	c.OwnerID = owner

	created, err := s.categories.Create(r.Context(), c)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	categories, err := s.categories.List(r.Context(), owner)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /categories/{categoryID}.
func (s *Server) GetCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "categoryID")
	if !ok {
		writeBadRequest(w, "invalid category id")
		return
	}

	c, err := s.categories.GetByID(r.Context(), owner, id)
	if err != nil {
		writeError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateCategory handles PUT /categories/{categoryID}.
func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "categoryID")
	if !ok {
		writeBadRequest(w, "invalid category id")
		return
	}

	c, ok := decodeCategory(w, r)
	if !ok {
		return
	}
	c.ID = id
	c.OwnerID = owner

	updated, err := s.categories.Update(r.Context(), c)
	if err != nil {
		writeError(w, err, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCategory handles DELETE /categories/{categoryID}.
func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "categoryID")
	if !ok {
		writeBadRequest(w, "invalid category id")
		return
	}

	if err := s.categories.Delete(r.Context(), owner, id); err != nil {
		writeError(w, err, "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeCategory parses the request body shared by Create and Update.
// On failure it writes the error response and returns ok=false.
func decodeCategory(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return domain.Category{}, false
	}

	c := domain.Category{Name: req.Name}
	if req.MonthlyBudget != nil {
		budget, err := decimal.NewFromString(*req.MonthlyBudget)
		if err != nil {
			writeBadRequest(w, "monthly_budget must be a decimal string")
			return domain.Category{}, false
		}
		c.MonthlyBudget = &budget
	}
	return c, true
}
