package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per expense, with the category
// name repeated on every row. Uncategorized expenses carry an empty
// Category.
//
// Tags holds the names of all tags linked to the expense, ordered
// alphabetically. Callers that need a joined string (e.g. CSV) should join
// with ",".
type ExportRow struct {
	ExpenseID   string
	Description string
	Amount      string // decimal rendered with two fraction digits
	OccurredOn  string // "2006-01-02" formatted date
	Category    string // empty when uncategorized
	Notes       string
	Tags        []string
}
