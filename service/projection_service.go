package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/jake-kelley/hold-or-sell/domain"
	"github.com/jake-kelley/hold-or-sell/repository"
)

// ProjectionService runs the year-by-year rent-vs-sell model.
type ProjectionService struct {
	repo      repository.AnalysisRepository
	cache     repository.CacheRepository
	explainer *ExplanationService
}

// NewProjectionService creates a new ProjectionService with the given
// repository and cache.
func NewProjectionService(repo repository.AnalysisRepository,
	cache repository.CacheRepository,
) *ProjectionService {
	return &ProjectionService{
		repo:      repo,
		cache:     cache,
		explainer: NewExplanationService(),
	}
}

// Analyze projects the scenario from asOf through the hold horizon and
// returns one snapshot per year plus the sanity checks. Results are cached
// by input, and saved to the repository for the history endpoint.
func (s *ProjectionService) Analyze(
	input domain.ScenarioInput,
	asOf time.Time,
) (domain.AnalysisResult, error) {

	if err := validateScenario(input, asOf); err != nil {
		return domain.AnalysisResult{}, err
	}

	key := cacheKey(input, asOf)
	if raw, ok := s.cache.Get(key); ok {
		var cached domain.AnalysisResult
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	}

	result := project(input, asOf)
	result.Explanation = s.explainer.ExplainRecommendation(input, result)

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(key, string(raw)); err != nil {
			log.Printf("Warning: failed to cache analysis: %v", err)
		}
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		log.Printf("Warning: failed to save analysis: %v", err)
	}

	return result, nil
}

// History returns previously computed analyses, newest first.
func (s *ProjectionService) History() []domain.StoredAnalysis {
	return s.repo.List()
}

func validateScenario(input domain.ScenarioInput, asOf time.Time) error {
	if input.PurchasePrice <= 0 {
		return errors.New("invalid purchase price")
	}
	if input.PurchasePrice > MaxPurchasePrice {
		return fmt.Errorf("purchase price exceeds the maximum of $%.2f", MaxPurchasePrice)
	}
	if input.OriginalLoanAmount <= 0 {
		return errors.New("invalid loan amount")
	}
	if input.OriginalLoanAmount > MaxLoanAmount {
		return fmt.Errorf("loan amount exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if input.TotalLoanMonths <= 0 {
		return errors.New("invalid loan term")
	}
	if input.TotalLoanMonths > MaxLoanTermMonths {
		return fmt.Errorf("loan term exceeds the maximum of %d months", MaxLoanTermMonths)
	}
	if input.YearsToHold < 0 {
		return errors.New("invalid hold horizon")
	}
	if input.YearsToHold > MaxYearsToHold {
		return fmt.Errorf("hold horizon exceeds the maximum of %d years", MaxYearsToHold)
	}
	if input.InterestRate > MaxInterestRate {
		return fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}

	rates := []struct {
		name  string
		value float64
	}{
		{"interest rate", input.InterestRate},
		{"annual rent increase", input.AnnualRentIncrease},
		{"property management fee", input.PropertyMgmtFee},
		{"rental tax rate", input.RentalTaxRate},
		{"home appreciation", input.HomeAppreciation},
		{"selling fees", input.SellingFees},
		{"capital gains tax", input.CapitalGainsTax},
		{"investment return", input.InvestmentReturn},
	}
	for _, r := range rates {
		if r.value < 0 || math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return fmt.Errorf("invalid %s", r.name)
		}
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"monthly P&I", input.MonthlyPI},
		{"monthly HOA", input.MonthlyHOA},
		{"monthly taxes", input.MonthlyTaxes},
		{"monthly insurance", input.MonthlyInsurance},
		{"monthly maintenance", input.MonthlyMaintenance},
		{"rental price", input.RentalPrice},
		{"costs to rent", input.CostsToRent},
		{"costs to sell", input.CostsToSell},
	}
	for _, a := range amounts {
		if a.value < 0 || math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return fmt.Errorf("invalid %s", a.name)
		}
	}

	if input.LoanOriginDate.IsZero() {
		return errors.New("missing loan origin date")
	}
	if input.LoanOriginDate.After(asOf) {
		return errors.New("loan origin date is in the future")
	}

	return nil
}

// monthsBetween counts whole calendar months from origin to current,
// matching human "how many full months" semantics rather than day-count
// division: 2022-01-01 to 2026-02-04 is 49 months.
func monthsBetween(origin, current time.Time) int {
	years := current.Year() - origin.Year()
	months := int(current.Month()) - int(origin.Month())
	total := years*MonthsPerYear + months
	if current.Day() < origin.Day() {
		total--
	}
	return total
}

// remainingBalance is the closed-form remaining principal under standard
// amortization: B = P * [(1+r)^n - (1+r)^p] / [(1+r)^n - 1].
func remainingBalance(principal, monthlyRate float64, totalMonths, monthsPaid int) float64 {
	if monthlyRate == 0 {
		return math.Max(0, principal-principal/float64(totalMonths)*float64(monthsPaid))
	}

	factor := math.Pow(1+monthlyRate, float64(totalMonths))
	paidFactor := math.Pow(1+monthlyRate, float64(monthsPaid))
	balance := principal * (factor - paidFactor) / (factor - 1)
	return math.Max(0, balance)
}

// monthlyPayment is the standard fixed payment for a fully amortizing
// loan: M = P * r(1+r)^n / ((1+r)^n - 1).
func monthlyPayment(principal, monthlyRate float64, totalMonths int) float64 {
	if monthlyRate == 0 {
		return principal / float64(totalMonths)
	}

	factor := math.Pow(1+monthlyRate, float64(totalMonths))
	return principal * (monthlyRate * factor) / (factor - 1)
}

func homeValueAt(input domain.ScenarioInput, yearsFromPurchase float64) float64 {
	return input.PurchasePrice * math.Pow(1+input.HomeAppreciation/100, yearsFromPurchase)
}

// projectionCarry is the loop-carried state threaded through projectYear.
type projectionCarry struct {
	cumulativeCashFlow        float64
	cumulativeOpportunityCost float64
}

func project(input domain.ScenarioInput, asOf time.Time) domain.AnalysisResult {
	monthlyRate := input.InterestRate / 100 / MonthsPerYear
	elapsed := monthsBetween(input.LoanOriginDate.Time, asOf)
	ownershipCost := input.MonthlyOwnershipCost()
	depreciation := input.PurchasePrice * BuildingValueRatio / DepreciationYears

	currentValue := homeValueAt(input, float64(elapsed)/MonthsPerYear)
	currentBalance := remainingBalance(input.OriginalLoanAmount, monthlyRate, input.TotalLoanMonths, elapsed)

	result := domain.AnalysisResult{
		AsOf:                 domain.Date{Time: asOf},
		ElapsedMonths:        elapsed,
		CurrentLoanBalance:   currentBalance,
		CalculatedMonthlyPI:  monthlyPayment(input.OriginalLoanAmount, monthlyRate, input.TotalLoanMonths),
		CurrentHomeValue:     currentValue,
		CurrentEquity:        currentValue - currentBalance,
		MonthlyOwnershipCost: ownershipCost,
		AnnualDepreciation:   depreciation,
	}

	// Cash-flow accumulator starts at the one-time cost of preparing the
	// property for rent; year 0 never adds the formula cash flow on top.
	carry := projectionCarry{cumulativeCashFlow: -input.CostsToRent}

	result.Years = make([]domain.YearSnapshot, 0, input.YearsToHold+1)
	for year := 0; year <= input.YearsToHold; year++ {
		var snap domain.YearSnapshot
		snap, carry = projectYear(input, monthlyRate, elapsed, ownershipCost, depreciation, year, carry)
		result.Years = append(result.Years, snap)
	}

	result.Checks = runSanityChecks(input, monthlyRate, elapsed, ownershipCost)

	return result
}

// projectYear computes one year's snapshot from the input and the carried
// accumulators. It is pure: the updated carry is returned, not mutated in
// place.
func projectYear(
	input domain.ScenarioInput,
	monthlyRate float64,
	elapsedMonths int,
	ownershipCost float64,
	depreciation float64,
	year int,
	carry projectionCarry,
) (domain.YearSnapshot, projectionCarry) {

	futureMonths := elapsedMonths + year*MonthsPerYear
	yearsFromPurchase := float64(futureMonths) / MonthsPerYear

	homeValue := homeValueAt(input, yearsFromPurchase)
	loanBalance := remainingBalance(input.OriginalLoanAmount, monthlyRate, input.TotalLoanMonths, futureMonths)
	equity := homeValue - loanBalance

	// Rent scenario
	monthlyRent := input.RentalPrice * math.Pow(1+input.AnnualRentIncrease/100, float64(year))
	annualRentalIncome := monthlyRent * MonthsPerYear
	annualMgmtFee := annualRentalIncome * input.PropertyMgmtFee / 100
	annualOwnershipCosts := ownershipCost * MonthsPerYear

	grossRentalProfit := annualRentalIncome - annualMgmtFee - annualOwnershipCosts
	taxableRentalIncome := grossRentalProfit - depreciation
	// Losses never produce a refund in this model.
	rentalTax := math.Max(0, taxableRentalIncome*input.RentalTaxRate/100)
	netRentalCashFlow := grossRentalProfit - rentalTax

	yearCashFlow := netRentalCashFlow
	if year == 0 {
		// Year 0's only cash movement is the rent-preparation expense,
		// already seeded into the accumulator.
		yearCashFlow = -input.CostsToRent
	} else {
		carry.cumulativeCashFlow += netRentalCashFlow
	}

	if year > 0 {
		shortfall := 0.0
		if netRentalCashFlow < 0 {
			shortfall = -netRentalCashFlow
		}
		carry.cumulativeOpportunityCost = carry.cumulativeOpportunityCost*(1+input.InvestmentReturn/100) + shortfall
	}

	// Opportunity cost deliberately excluded; see the diagnostic note on
	// YearSnapshot.CumulativeOpportunityCost.
	rentNetWorth := equity + carry.cumulativeCashFlow

	// Sell scenario
	salePrice := homeValue
	sellingCosts := salePrice*input.SellingFees/100 + input.CostsToSell
	netSaleProceeds := salePrice - loanBalance - sellingCosts
	capitalGain := salePrice - input.PurchasePrice

	var capGainsTaxOwed float64
	if capitalGain > 0 {
		taxableGain := capitalGain
		if input.IsPrimaryResidence && year <= PrimaryResidenceWindowYears {
			taxableGain = math.Max(0, capitalGain-PrimaryResidenceExclusion)
		}
		capGainsTaxOwed = taxableGain * input.CapitalGainsTax / 100
	}

	netAfterTaxProceeds := netSaleProceeds - capGainsTaxOwed
	yearsToInvest := input.YearsToHold - year
	investedValue := netAfterTaxProceeds * math.Pow(1+input.InvestmentReturn/100, float64(yearsToInvest))

	recommendation := domain.RecommendSell
	if rentNetWorth > investedValue {
		recommendation = domain.RecommendRent
	}

	snap := domain.YearSnapshot{
		Year:              year,
		FutureMonths:      futureMonths,
		YearsFromPurchase: yearsFromPurchase,

		HomeValue:   homeValue,
		LoanBalance: loanBalance,
		Equity:      equity,

		MonthlyRent:          monthlyRent,
		AnnualRentalIncome:   annualRentalIncome,
		AnnualMgmtFee:        annualMgmtFee,
		AnnualOwnershipCosts: annualOwnershipCosts,
		GrossRentalProfit:    grossRentalProfit,
		TaxableRentalIncome:  taxableRentalIncome,
		RentalTax:            rentalTax,
		NetRentalCashFlow:    netRentalCashFlow,
		YearCashFlow:         yearCashFlow,
		CumulativeCashFlow:   carry.cumulativeCashFlow,
		RentNetWorth:         rentNetWorth,

		SalePrice:           salePrice,
		SellingCosts:        sellingCosts,
		NetSaleProceeds:     netSaleProceeds,
		CapitalGain:         capitalGain,
		CapitalGainsTaxOwed: capGainsTaxOwed,
		NetAfterTaxProceeds: netAfterTaxProceeds,
		InvestedValue:       investedValue,
		SellNetWorth:        investedValue,

		CumulativeOpportunityCost: carry.cumulativeOpportunityCost,

		Recommendation: recommendation,
	}

	return snap, carry
}

func cacheKey(input domain.ScenarioInput, asOf time.Time) string {
	raw, _ := json.Marshal(struct {
		Input domain.ScenarioInput `json:"input"`
		AsOf  string               `json:"as_of"`
	}{Input: input, AsOf: asOf.Format("2006-01-02")})

	sum := sha256.Sum256(raw)
	return "analysis:" + hex.EncodeToString(sum[:])
}
