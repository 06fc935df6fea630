package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jake-kelley/hold-or-sell/domain"
	"github.com/jake-kelley/hold-or-sell/service"
)

type AnalysisHandler struct {
	service  *service.ProjectionService
	validate *validator.Validate
}

func NewAnalysisHandler(service *service.ProjectionService) *AnalysisHandler {
	return &AnalysisHandler{
		service:  service,
		validate: validator.New(),
	}
}

// ProjectScenario runs the rent-vs-sell projection for the posted scenario
// and returns the full analysis as JSON.
func (h *AnalysisHandler) ProjectScenario(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input domain.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Analyze(input, time.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// History returns previously computed analyses.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.History())
}
