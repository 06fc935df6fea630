package domain

import "time"

// StoredAnalysis is one completed projection kept for the history endpoint.
type StoredAnalysis struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Input     ScenarioInput  `json:"input"`
	Result    AnalysisResult `json:"result"`
}
