package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/centsible/backend/internal/domain"
	"github.com/centsible/backend/internal/handler"
)

// Test doubles for the handler-side Servicer interfaces. Set only the method
// fields your test needs; the tag double tolerates being unset because the
// expense handlers resolve tag names on every single-expense response.

// ---- mock ExpenseServicer --------------------------------------------------

type mockExpenseServicer struct {
	create  func(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error)
	getByID func(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error)
	list    func(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error)
	update  func(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error)
	delete  func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error) {
	return m.create(ctx, e, rawTags)
}
func (m *mockExpenseServicer) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockExpenseServicer) List(ctx context.Context, ownerID uuid.UUID, p domain.PaginationParams) ([]domain.Expense, int64, error) {
	return m.list(ctx, ownerID, p)
}
func (m *mockExpenseServicer) Update(ctx context.Context, e domain.Expense, rawTags string) (domain.Expense, []string, error) {
	return m.update(ctx, e, rawTags)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

// ---- mock CategoryServicer -------------------------------------------------

type mockCategoryServicer struct {
	create  func(ctx context.Context, c domain.Category) (domain.Category, error)
	getByID func(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error)
	list    func(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error)
	update  func(ctx context.Context, c domain.Category) (domain.Category, error)
	delete  func(ctx context.Context, ownerID, id uuid.UUID) error
}

func (m *mockCategoryServicer) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryServicer) GetByID(ctx context.Context, ownerID, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockCategoryServicer) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Category, error) {
	return m.list(ctx, ownerID)
}
func (m *mockCategoryServicer) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.update(ctx, c)
}
func (m *mockCategoryServicer) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

var _ handler.CategoryServicer = (*mockCategoryServicer)(nil)

// ---- mock TagServicer ------------------------------------------------------

type mockTagServicer struct {
	listPaged     func(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error)
	listByExpense func(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error)
}

func (m *mockTagServicer) ListPaged(ctx context.Context, ownerID uuid.UUID, prefix string, p domain.PaginationParams) ([]domain.Tag, int64, error) {
	return m.listPaged(ctx, ownerID, prefix, p)
}
func (m *mockTagServicer) ListByExpense(ctx context.Context, expenseID uuid.UUID) ([]domain.Tag, error) {
	if m.listByExpense == nil {
		return []domain.Tag{}, nil
	}
	return m.listByExpense(ctx, expenseID)
}

var _ handler.TagServicer = (*mockTagServicer)(nil)

// ---- mock SummaryServicer --------------------------------------------------

type mockSummaryServicer struct {
	month func(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error)
}

func (m *mockSummaryServicer) Month(ctx context.Context, ownerID uuid.UUID, year, month int) (domain.MonthSummary, error) {
	return m.month(ctx, ownerID, year, month)
}

var _ handler.SummaryServicer = (*mockSummaryServicer)(nil)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, ownerID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, ownerID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles one mock per Servicer so tests only fill in what they use.
type serverMocks struct {
	expenses   *mockExpenseServicer
	categories *mockCategoryServicer
	tags       *mockTagServicer
	summaries  *mockSummaryServicer
	exports    *mockExportServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production.
func newHTTPHandler(m serverMocks) http.Handler {
	if m.expenses == nil {
		m.expenses = &mockExpenseServicer{}
	}
	if m.categories == nil {
		m.categories = &mockCategoryServicer{}
	}
	if m.tags == nil {
		m.tags = &mockTagServicer{}
	}
	if m.summaries == nil {
		m.summaries = &mockSummaryServicer{}
	}
	if m.exports == nil {
		m.exports = &mockExportServicer{}
	}
	srv := handler.NewServer(m.expenses, m.categories, m.tags, m.summaries, m.exports)
	return srv.Routes()
}

// doRequest performs one request against the router with the owner header set.
func doRequest(h http.Handler, method, target string, ownerID uuid.UUID, body *bytes.Buffer) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if ownerID != uuid.Nil {
		req.Header.Set("X-Owner-ID", ownerID.String())
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
