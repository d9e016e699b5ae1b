package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strings"
)

// exportHeader is the CSV column order for the full-data export.
var exportHeader = []string{"expense_id", "occurred_on", "description", "amount", "category", "tags", "notes"}

// GetExport handles GET /export, streaming the owner's full expense history
// as a CSV attachment. Tag names are joined with "," inside one cell.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		writeBadRequest(w, "missing or invalid X-Owner-ID header")
		return
	}

	rows, err := s.exports.Export(r.Context(), owner)
	if err != nil {
		writeError(w, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="centsible-export.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		slog.Error("write export header", "error", err)
		return
	}
	for _, row := range rows {
		record := []string{
			row.ExpenseID,
			row.OccurredOn,
			row.Description,
			row.Amount,
			row.Category,
			strings.Join(row.Tags, ","),
			row.Notes,
		}
		if err := cw.Write(record); err != nil {
			slog.Error("write export row", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("flush export", "error", err)
	}
}
