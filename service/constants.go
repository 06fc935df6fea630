package service

const (
	MaxPurchasePrice  = 1_000_000_000.0 // 1 billion
	MaxLoanAmount     = 1_000_000_000.0
	MaxInterestRate   = 1000.0 // 1000% anual
	MaxLoanTermMonths = 600    // 50 años
	MaxYearsToHold    = 100

	MonthsPerYear = 12

	// Straight-line rental depreciation: 80% of the purchase price is
	// building value, written off over the IRS residential 27.5 years.
	BuildingValueRatio = 0.8
	DepreciationYears  = 27.5

	// Primary-residence capital-gains exclusion (married filing jointly),
	// modeled as available only within the first years of the projection.
	PrimaryResidenceExclusion   = 500_000.0
	PrimaryResidenceWindowYears = 3
)
