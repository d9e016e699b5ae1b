// Package handler implements the HTTP handlers for the Centsible API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (expense.go, category.go, etc.) but all share the same Server struct
// so they can access its dependencies.
//
// Owner identity arrives in the X-Owner-ID header, set by the session layer
// in front of this API. Handlers trust it; authentication is out of scope.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centsible/backend/internal/domain"
)

// ExpenseServicer defines the business operations the expense handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type ExpenseServicer interface {
	Create(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error)
	List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error)
	Update(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// CategoryServicer defines the business operations the category handlers depend on.
type CategoryServicer interface {
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	Update(ctx context.Context, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// TagServicer defines the tag read operations the tag handlers depend on.
type TagServicer interface {
	ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error)
}

// SummaryServicer defines the aggregation operations the summary handler depends on.
type SummaryServicer interface {
	Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the service dependencies for all API endpoints.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	expenses   ExpenseServicer
	categories CategoryServicer
	tags       TagServicer
	summaries  SummaryServicer
	exports    ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(expenses ExpenseServicer, categories CategoryServicer, tags TagServicer, summaries SummaryServicer, exports ExportServicer) *Server {
	return &Server{
		expenses:   expenses,
		categories: categories,
		tags:       tags,
		summaries:  summaries,
		exports:    exports,
	}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/expenses", func(r chi.Router) {
		r.Get("/", s.ListExpenses)
		r.Post("/", s.CreateExpense)
		r.Route("/{expenseID}", func(r chi.Router) {
			r.Get("/", s.GetExpense)
			r.Put("/", s.UpdateExpense)
			r.Delete("/", s.DeleteExpense)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.ListCategories)
		r.Post("/", s.CreateCategory)
		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", s.GetCategory)
			r.Put("/", s.UpdateCategory)
			r.Delete("/", s.DeleteCategory)
		})
	})

	r.Get("/tags", s.ListTags)
	r.Get("/summary/{year}/{month}", s.GetMonthSummary)
	r.Get("/export", s.GetExport)

	return r
}

// ownerID extracts the owner UUID from the X-Owner-ID header.
// An absent or malformed header means the request cannot be attributed to a
// user and is rejected upstream of any service call.
func ownerID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.Header.Get("X-Owner-ID"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed so domain.NewPaginationParams applies its defaults.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
