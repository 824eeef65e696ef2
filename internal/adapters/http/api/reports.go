package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/okian/paylens/internal/adapters/render"
	"github.com/okian/paylens/internal/domain/catalog"
)

// reportSummary is the list shape of a report.
type reportSummary struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Chart     catalog.ChartKind `json:"chart"`
	Entries   int               `json:"entries"`
	Narrative string            `json:"narrative"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// ReportsHandler serves the reports of the last run.
type ReportsHandler struct {
	reports ReportReader
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(reports ReportReader) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// HandleList handles GET /reports requests.
func (h *ReportsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reports := h.reports.List()
	out := make([]reportSummary, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportSummary{
			ID:        rep.ID(),
			Title:     rep.Spec.Title,
			Chart:     rep.Spec.Chart,
			Entries:   rep.Table.Len(),
			Narrative: rep.Narrative,
			Warnings:  rep.Warnings,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /reports/{id} requests.
func (h *ReportsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	rep, err := h.reports.Get(id)
	if err != nil {
		if errors.Is(err, render.ErrReportNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
