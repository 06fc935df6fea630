package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jake-kelley/hold-or-sell/domain"
	"github.com/jake-kelley/hold-or-sell/repository"
)

type MockAnalysisRepository struct {
	SaveCalls int
}

func (m *MockAnalysisRepository) Save(
	input domain.ScenarioInput,
	result domain.AnalysisResult,
) error {
	m.SaveCalls++
	return nil
}

func (m *MockAnalysisRepository) List() []domain.StoredAnalysis {
	return nil
}

// referenceDate matches the evaluation date the external calculator was
// checked against.
var referenceDate = time.Date(2026, time.February, 4, 0, 0, 0, 0, time.UTC)

func referenceScenario() domain.ScenarioInput {
	return domain.ScenarioInput{
		PurchasePrice:      400000,
		LoanOriginDate:     domain.NewDate(2022, time.January, 1),
		OriginalLoanAmount: 320000,
		InterestRate:       6.5,
		TotalLoanMonths:    360,
		MonthlyPI:          2023,
		MonthlyHOA:         150,
		MonthlyTaxes:       350,
		MonthlyInsurance:   150,
		MonthlyMaintenance: 200,
		RentalPrice:        2800,
		AnnualRentIncrease: 3,
		PropertyMgmtFee:    10,
		CostsToRent:        5000,
		RentalTaxRate:      22,
		HomeAppreciation:   3,
		SellingFees:        6,
		CostsToSell:        10000,
		CapitalGainsTax:    15,
		InvestmentReturn:   7,
		YearsToHold:        10,
		IsPrimaryResidence: true,
	}
}

func newTestService(t *testing.T) (*ProjectionService, *MockAnalysisRepository, *repository.MockCache) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")

	repo := &MockAnalysisRepository{}
	cache := repository.NewMockCache()
	return NewProjectionService(repo, cache), repo, cache
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name    string
		origin  time.Time
		current time.Time
		want    int
	}{
		{
			name:    "same day",
			origin:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			current: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			want:    0,
		},
		{
			name:    "reference loan",
			origin:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			current: referenceDate,
			want:    49,
		},
		{
			name:    "exact year",
			origin:  time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
			current: time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC),
			want:    12,
		},
		{
			name:    "day of month not yet reached",
			origin:  time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
			current: time.Date(2022, 3, 10, 0, 0, 0, 0, time.UTC),
			want:    1,
		},
		{
			name:    "day of month just reached",
			origin:  time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC),
			current: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, monthsBetween(tt.origin, tt.current))
		})
	}
}

func TestRemainingBalance_ZeroRate(t *testing.T) {
	// Linear amortization must be exact.
	assert.InDelta(t, 700.0, remainingBalance(1200, 0, 12, 5), 1e-9)
	assert.InDelta(t, 0.0, remainingBalance(1200, 0, 12, 12), 1e-9)

	// Past payoff the balance clamps at zero.
	assert.Equal(t, 0.0, remainingBalance(1200, 0, 12, 24))
}

func TestRemainingBalance_FullTermIsZero(t *testing.T) {
	monthlyRate := 6.5 / 100 / 12
	balance := remainingBalance(320000, monthlyRate, 360, 360)
	assert.InDelta(t, 0.0, balance, 1e-6)
}

func TestRemainingBalance_MonotonicNonIncreasing(t *testing.T) {
	monthlyRate := 6.5 / 100 / 12
	prev := remainingBalance(320000, monthlyRate, 360, 0)
	require.InDelta(t, 320000, prev, 1e-6)

	for paid := 1; paid <= 400; paid++ {
		balance := remainingBalance(320000, monthlyRate, 360, paid)
		assert.LessOrEqual(t, balance, prev, "months paid %d", paid)
		assert.GreaterOrEqual(t, balance, 0.0, "months paid %d", paid)
		prev = balance
	}
}

func TestMonthlyPayment_ReferenceLoan(t *testing.T) {
	monthlyRate := 6.5 / 100 / 12
	payment := monthlyPayment(320000, monthlyRate, 360)
	assert.InDelta(t, 2023, payment, 5)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	assert.InDelta(t, 100.0, monthlyPayment(1200, 0, 12), 1e-9)
}

func TestAnalyze_ReferenceScenario(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Analyze(referenceScenario(), referenceDate)
	require.NoError(t, err)

	assert.Equal(t, 49, result.ElapsedMonths)
	assert.Greater(t, result.CurrentLoanBalance, 300000.0)
	assert.Less(t, result.CurrentLoanBalance, 320000.0)
	assert.InDelta(t, 2023, result.CalculatedMonthlyPI, 5)
	assert.InDelta(t, 2873, result.MonthlyOwnershipCost, 1e-9)
	assert.InDelta(t, 400000*0.8/27.5, result.AnnualDepreciation, 1e-9)

	require.Len(t, result.Years, 11)

	yearZero := result.Years[0]
	assert.Equal(t, 49, yearZero.FutureMonths)
	assert.InDelta(t, -5000, yearZero.YearCashFlow, 1e-9)
	assert.InDelta(t, -5000, yearZero.CumulativeCashFlow, 1e-9)

	final := result.FinalYear()
	assert.Equal(t, 10, final.Year)
	// No years left to invest at the horizon.
	assert.InDelta(t, final.NetAfterTaxProceeds, final.InvestedValue, 1e-9)
	assert.NotEmpty(t, final.Recommendation)
	assert.NotEmpty(t, result.Explanation)
}

func TestAnalyze_RentNetWorthExcludesOpportunityCost(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Analyze(referenceScenario(), referenceDate)
	require.NoError(t, err)

	// The opportunity-cost accumulator is a diagnostic: net worth is
	// exactly equity plus cumulative cash flow, with no deduction.
	for _, year := range result.Years {
		assert.InDelta(t, year.Equity+year.CumulativeCashFlow, year.RentNetWorth, 1e-9,
			"year %d", year.Year)
	}
}

func TestAnalyze_OpportunityCostCompounds(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := referenceScenario()
	result, err := svc.Analyze(input, referenceDate)
	require.NoError(t, err)

	// The reference scenario runs a cash-flow shortfall in its early
	// years, so the accumulator must grow by last year's compounding plus
	// this year's shortfall.
	year1 := result.Years[1]
	require.Negative(t, year1.NetRentalCashFlow)
	assert.InDelta(t, -year1.NetRentalCashFlow, year1.CumulativeOpportunityCost, 1e-9)

	year2 := result.Years[2]
	shortfall2 := 0.0
	if year2.NetRentalCashFlow < 0 {
		shortfall2 = -year2.NetRentalCashFlow
	}
	want := year1.CumulativeOpportunityCost*(1+input.InvestmentReturn/100) + shortfall2
	assert.InDelta(t, want, year2.CumulativeOpportunityCost, 1e-9)
}

func TestAnalyze_HomeValueAndRentIncrease(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Analyze(referenceScenario(), referenceDate)
	require.NoError(t, err)

	for i := 1; i < len(result.Years); i++ {
		assert.Greater(t, result.Years[i].HomeValue, result.Years[i-1].HomeValue)
		assert.Greater(t, result.Years[i].MonthlyRent, result.Years[i-1].MonthlyRent)
		assert.Greater(t, result.Years[i].Equity, result.Years[i-1].Equity)
		assert.Less(t, result.Years[i].LoanBalance, result.Years[i-1].LoanBalance)
	}
}

func TestAnalyze_PrimaryResidenceExclusion(t *testing.T) {
	svc, _, _ := newTestService(t)

	result, err := svc.Analyze(referenceScenario(), referenceDate)
	require.NoError(t, err)

	// Gains stay under the $500k exclusion, so the first years owe nothing.
	for year := 0; year <= PrimaryResidenceWindowYears; year++ {
		snap := result.Years[year]
		require.Positive(t, snap.CapitalGain)
		assert.Zero(t, snap.CapitalGainsTaxOwed, "year %d", year)
	}

	// Outside the window the full gain is taxable.
	afterWindow := result.Years[PrimaryResidenceWindowYears+1]
	assert.InDelta(t, afterWindow.CapitalGain*0.15, afterWindow.CapitalGainsTaxOwed, 1e-9)
}

func TestProjectYear_NegativeGainOwesNoTax(t *testing.T) {
	// Bypass validation to model a depreciating market.
	input := referenceScenario()
	input.HomeAppreciation = -5

	snap, _ := projectYear(input, 6.5/100/12, 49, input.MonthlyOwnershipCost(),
		input.PurchasePrice*BuildingValueRatio/DepreciationYears, 1,
		projectionCarry{cumulativeCashFlow: -input.CostsToRent})

	require.Negative(t, snap.CapitalGain)
	assert.Zero(t, snap.CapitalGainsTaxOwed)
}

func TestProjectYear_RentalLossOwesNoRentalTax(t *testing.T) {
	input := referenceScenario()

	snap, _ := projectYear(input, 6.5/100/12, 49, input.MonthlyOwnershipCost(),
		input.PurchasePrice*BuildingValueRatio/DepreciationYears, 1,
		projectionCarry{cumulativeCashFlow: -input.CostsToRent})

	require.Negative(t, snap.TaxableRentalIncome)
	assert.Zero(t, snap.RentalTax)
	assert.InDelta(t, snap.GrossRentalProfit, snap.NetRentalCashFlow, 1e-9)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScenarioInput)
	}{
		{"zero purchase price", func(s *domain.ScenarioInput) { s.PurchasePrice = 0 }},
		{"zero loan amount", func(s *domain.ScenarioInput) { s.OriginalLoanAmount = 0 }},
		{"zero loan term", func(s *domain.ScenarioInput) { s.TotalLoanMonths = 0 }},
		{"negative interest rate", func(s *domain.ScenarioInput) { s.InterestRate = -1 }},
		{"non-finite appreciation", func(s *domain.ScenarioInput) { s.HomeAppreciation = nan() }},
		{"negative hold horizon", func(s *domain.ScenarioInput) { s.YearsToHold = -1 }},
		{"negative rental price", func(s *domain.ScenarioInput) { s.RentalPrice = -100 }},
		{"missing origin date", func(s *domain.ScenarioInput) { s.LoanOriginDate = domain.Date{} }},
		{"future origin date", func(s *domain.ScenarioInput) { s.LoanOriginDate = domain.NewDate(2030, 1, 1) }},
		{"oversized loan term", func(s *domain.ScenarioInput) { s.TotalLoanMonths = 1200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)

			input := referenceScenario()
			tt.mutate(&input)

			_, err := svc.Analyze(input, referenceDate)
			require.Error(t, err)
			assert.Zero(t, repo.SaveCalls, "repository Save should NOT be called")
		})
	}
}

func TestAnalyze_SavesAndCaches(t *testing.T) {
	svc, repo, cache := newTestService(t)
	input := referenceScenario()

	first, err := svc.Analyze(input, referenceDate)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.SaveCalls)
	assert.Len(t, cache.Data, 1)

	// Second run is served from the cache: no new save, one cache hit.
	second, err := svc.Analyze(input, referenceDate)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.SaveCalls)
	assert.Equal(t, 1, cache.Hits)
	assert.Equal(t, first.ElapsedMonths, second.ElapsedMonths)
	assert.Equal(t, first.Years, second.Years)
}

func nan() float64 {
	var zero float64
	return zero / zero
}
