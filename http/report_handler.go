package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jake-kelley/hold-or-sell/domain"
	"github.com/jake-kelley/hold-or-sell/service"
)

type ReportHandler struct {
	service *service.ProjectionService
}

func NewReportHandler(service *service.ProjectionService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RenderReport runs the projection for the posted scenario and returns the
// plain-text verification report.
func (h *ReportHandler) RenderReport(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Analyze(input, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(service.RenderReport(input, result)))
}
