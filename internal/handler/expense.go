package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/centsible/backend/internal/domain"
)

// expenseRequest is the JSON body accepted by CreateExpense and UpdateExpense.
// Amount is a decimal string ("-42.50"); Tags is the raw comma-separated tag
// string exactly as typed into the form — parsing it is the sync engine's job.
type expenseRequest struct {
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	OccurredOn  string     `json:"occurred_on"` // "2006-01-02"
	Notes       string     `json:"notes,omitempty"`
	Tags        string     `json:"tags,omitempty"`
}

// expenseResponse is the JSON shape returned for a single expense.
// TagWarnings carries the per-tag sync failures; the expense itself is
// persisted even when TagWarnings is non-empty.
type expenseResponse struct {
	domain.Expense
	Tags        []string `json:"tags"`
	TagWarnings []string `json:"tag_warnings,omitempty"`
}

// CreateExpense handles POST /expenses.
// The expense write and the tag sync are two steps: a 201 with a non-empty
// tag_warnings array means the expense was saved but some tags were not.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	e, rawTags, ok := decodeExpense(w, r, owner)
	if !ok {
		return
	}

	created, warnings, err := s.expenses.Create(r.Context(), e, rawTags)
	if err != nil {
		writeError(w, err, "category not found")
		return
	}

	writeJSON(w, http.StatusCreated, s.expenseBody(r, created, warnings))
}

// ListExpenses handles GET /expenses with optional page and limit params.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	expenses, total, err := s.expenses.List(r.Context(), owner, params)
	if err != nil {
		writeError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, pagedResponse[domain.Expense]{
		Data: expenses,
		Pagination: paginationMeta{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetExpense handles GET /expenses/{expenseID}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "expenseID")
	if !ok {
		writeBadRequest(w, "invalid expense id")
		return
	}

	e, err := s.expenses.GetByID(r.Context(), owner, id)
	if err != nil {
		writeError(w, err, "expense not found")
		return
	}

	writeJSON(w, http.StatusOK, s.expenseBody(r, e, nil))
}

// UpdateExpense handles PUT /expenses/{expenseID}.
// The tags field replaces the expense's whole tag set; an omitted or empty
// tags string unlinks everything.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "expenseID")
	if !ok {
		writeBadRequest(w, "invalid expense id")
		return
	}

	e, rawTags, ok := decodeExpense(w, r, owner)
	if !ok {
		return
	}
	e.ID = id

	updated, warnings, err := s.expenses.Update(r.Context(), e, rawTags)
	if err != nil {
		writeError(w, err, "expense not found")
		return
	}

	writeJSON(w, http.StatusOK, s.expenseBody(r, updated, warnings))
}

// DeleteExpense handles DELETE /expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}
	id, ok := pathUUID(r, "expenseID")
	if !ok {
		writeBadRequest(w, "invalid expense id")
		return
	}

	if err := s.expenses.Delete(r.Context(), owner, id); err != nil {
		writeError(w, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeExpense parses and validates the request body shared by Create and
// Update. On failure it writes the error response and returns ok=false.
func decodeExpense(w http.ResponseWriter, r *http.Request, owner uuid.UUID) (domain.Expense, string, bool) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return domain.Expense{}, "", false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeBadRequest(w, "amount must be a decimal string")
		return domain.Expense{}, "", false
	}

	occurredOn, err := time.Parse("2006-01-02", req.OccurredOn)
	if err != nil {
		writeBadRequest(w, "occurred_on must be formatted YYYY-MM-DD")
		return domain.Expense{}, "", false
	}

	return domain.Expense{
		OwnerID:     owner,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      amount,
		OccurredOn:  occurredOn,
		Notes:       req.Notes,
	}, req.Tags, true
}

// expenseBody builds the single-expense response, resolving the currently
// linked tag names. A failed tag read degrades to an empty list rather than
// failing the response — the expense data is the primary payload.
func (s *Server) expenseBody(r *http.Request, e domain.Expense, warnings []string) expenseResponse {
	names := []string{}
	if tags, err := s.tags.ListByExpense(r.Context(), e.ID); err == nil {
		for _, t := range tags {
			names = append(names, t.Name)
		}
	}
	return expenseResponse{Expense: e, Tags: names, TagWarnings: warnings}
}

// pagedResponse is the generic list envelope: data plus pagination metadata.
type pagedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

// paginationMeta mirrors domain.PaginationParams plus the total row count.
type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
