package service

import (
	"fmt"
	"math"

	"github.com/jake-kelley/hold-or-sell/domain"
)

// Sample offsets for the monotonicity checks, in years from asOf.
var checkSampleYears = [3]int{0, 5, 10}

// runSanityChecks restates the projection formulas at three sample years
// and verifies the expected monotonic behavior, plus one informational
// check on the first full rental year.
func runSanityChecks(
	input domain.ScenarioInput,
	monthlyRate float64,
	elapsedMonths int,
	ownershipCost float64,
) []domain.SanityCheck {

	checks := make([]domain.SanityCheck, 0, 5)

	var balances, values, equities, rents [3]float64
	for i, year := range checkSampleYears {
		months := elapsedMonths + year*MonthsPerYear
		balances[i] = remainingBalance(input.OriginalLoanAmount, monthlyRate, input.TotalLoanMonths, months)
		values[i] = homeValueAt(input, float64(months)/MonthsPerYear)
		equities[i] = values[i] - balances[i]
		rents[i] = input.RentalPrice * math.Pow(1+input.AnnualRentIncrease/100, float64(year))
	}

	checks = append(checks,
		monotonicCheck("loan balance decreasing", balances, false),
		monotonicCheck("home value increasing", values, true),
		monotonicCheck("equity increasing", equities, true),
		monotonicCheck("rent increasing", rents, true),
		firstYearCashFlowCheck(input, ownershipCost),
	)

	return checks
}

func monotonicCheck(name string, samples [3]float64, increasing bool) domain.SanityCheck {
	check := domain.SanityCheck{
		Name:   name,
		Status: domain.CheckPass,
	}

	for i, year := range checkSampleYears {
		check.Samples = append(check.Samples, domain.CheckSample{
			Label: fmt.Sprintf("year %d", year),
			Value: samples[i],
		})
	}

	for i := 1; i < len(samples); i++ {
		ok := samples[i-1] > samples[i]
		if increasing {
			ok = samples[i-1] < samples[i]
		}
		if !ok {
			check.Status = domain.CheckFail
			break
		}
	}

	return check
}

// firstYearCashFlowCheck reports whether the first full rental year covers
// its own costs. Informational: a negative first year is a legitimate
// scenario, not a model error.
func firstYearCashFlowCheck(input domain.ScenarioInput, ownershipCost float64) domain.SanityCheck {
	income := input.RentalPrice * MonthsPerYear
	expenses := ownershipCost*MonthsPerYear + income*input.PropertyMgmtFee/100
	profit := income - expenses

	detail := "negative cash flow, selling may be better short-term"
	if profit > 0 {
		detail = "positive cash flow, rental builds wealth"
	}

	return domain.SanityCheck{
		Name:   "first-year cash flow",
		Status: domain.CheckInfo,
		Samples: []domain.CheckSample{
			{Label: "rental income", Value: income},
			{Label: "expenses incl mgmt", Value: expenses},
			{Label: "gross profit", Value: profit},
		},
		Detail: detail,
	}
}
