// Command verify runs the default scenario through the projector and
// prints the full verification report, for comparison against an external
// rent-vs-sell calculator.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jake-kelley/hold-or-sell/domain"
	"github.com/jake-kelley/hold-or-sell/repository"
	"github.com/jake-kelley/hold-or-sell/service"
)

// defaultScenario matches the calculator's default inputs.
func defaultScenario() domain.ScenarioInput {
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

func main() {
	input := defaultScenario()

	projector := service.NewProjectionService(
		repository.NewAnalysisRepositoryMemory(),
		repository.NewMockCache(),
	)

	result, err := projector.Analyze(input, time.Now())
	if err != nil {
		log.Fatalf("analyze scenario: %v", err)
	}

	fmt.Print(service.RenderReport(input, result))
}
