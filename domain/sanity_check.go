package domain

type CheckStatus string

const (
	CheckPass CheckStatus = "PASS"
	CheckFail CheckStatus = "FAIL"
	CheckInfo CheckStatus = "INFO"
)

// CheckSample is one labeled figure sampled by a sanity check,
// e.g. the loan balance at year 5.
type CheckSample struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SanityCheck is the result of one verification over the projection
// formulas. Informational checks carry a detail line instead of
// passing or failing.
type SanityCheck struct {
	Name    string        `json:"name"`
	Status  CheckStatus   `json:"status"`
	Samples []CheckSample `json:"samples,omitempty"`
	Detail  string        `json:"detail,omitempty"`
}
