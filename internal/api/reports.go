package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/verus/warehouse/internal/report"
)

// ReportsHandler serves the report projection and the spreadsheet download.
type ReportsHandler struct {
	DB *sql.DB
}

// Data handles GET /api/reports/data.
func (h *ReportsHandler) Data(w http.ResponseWriter, r *http.Request) {
	rep, err := report.Build(r.Context(), h.DB)
	if err != nil {
		respondStoreError(w, err, "Report not found", "failed to build report")
		return
	}
	respond(w, http.StatusOK, "", rep)
}

// Excel handles GET /api/reports/excel.
func (h *ReportsHandler) Excel(w http.ResponseWriter, r *http.Request) {
	rep, err := report.Build(r.Context(), h.DB)
	if err != nil {
		respondStoreError(w, err, "Report not found", "failed to build report")
		return
	}

	filename := "report_" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := report.WriteExcel(w, rep); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("writing excel report", "error", err)
	}
}
