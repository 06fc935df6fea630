package repository

import "github.com/jake-kelley/hold-or-sell/domain"

type AnalysisRepository interface {
	Save(input domain.ScenarioInput, result domain.AnalysisResult) error
	List() []domain.StoredAnalysis
}
