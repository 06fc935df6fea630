package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jake-kelley/hold-or-sell/domain"
)

// AnalysisRepositoryMemory is an in-memory implementation of
// AnalysisRepository.
type AnalysisRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.StoredAnalysis
}

// NewAnalysisRepositoryMemory creates a new in-memory analysis repository.
func NewAnalysisRepositoryMemory() *AnalysisRepositoryMemory {
	return &AnalysisRepositoryMemory{
		data: []domain.StoredAnalysis{},
	}
}

// Save stores the analysis in memory under a fresh id.
func (r *AnalysisRepositoryMemory) Save(
	input domain.ScenarioInput,
	result domain.AnalysisResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, domain.StoredAnalysis{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Input:     input,
		Result:    result,
	})
	return nil
}

// List returns stored analyses, newest first.
func (r *AnalysisRepositoryMemory) List() []domain.StoredAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.StoredAnalysis, len(r.data))
	for i, stored := range r.data {
		out[len(r.data)-1-i] = stored
	}
	return out
}
