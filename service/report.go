package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/jake-kelley/hold-or-sell/domain"
)

const reportRule = "============================================================"

// RenderReport produces the human-readable verification report: derived
// reference values, one block per projected year, then the sanity checks.
// Field order is the contract; exact punctuation is not.
func RenderReport(input domain.ScenarioInput, result domain.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== RENT VS SELL ANALYSIS ===\n")
	fmt.Fprintf(&b, "Loan originated: %s\n", input.LoanOriginDate)
	fmt.Fprintf(&b, "Evaluated: %s\n", result.AsOf)
	fmt.Fprintf(&b, "Months elapsed: %d\n\n", result.ElapsedMonths)

	fmt.Fprintf(&b, "=== LOAN AMORTIZATION CHECK ===\n")
	fmt.Fprintf(&b, "Original loan: %s\n", money(input.OriginalLoanAmount))
	fmt.Fprintf(&b, "Monthly rate: %.6f\n", input.InterestRate/100/MonthsPerYear)
	fmt.Fprintf(&b, "Current balance after %d months: %s\n\n", result.ElapsedMonths, money(result.CurrentLoanBalance))

	fmt.Fprintf(&b, "=== MONTHLY PAYMENT VERIFICATION ===\n")
	fmt.Fprintf(&b, "Input monthly P&I: %s\n", money(input.MonthlyPI))
	fmt.Fprintf(&b, "Calculated monthly P&I: $%.2f\n", result.CalculatedMonthlyPI)
	fmt.Fprintf(&b, "Difference: $%.2f\n\n", math.Abs(input.MonthlyPI-result.CalculatedMonthlyPI))

	fmt.Fprintf(&b, "=== HOME VALUE CHECK ===\n")
	fmt.Fprintf(&b, "Purchase price: %s\n", money(input.PurchasePrice))
	fmt.Fprintf(&b, "Years owned: %.2f\n", float64(result.ElapsedMonths)/MonthsPerYear)
	fmt.Fprintf(&b, "Current home value (with %.4g%% annual appreciation): %s\n", input.HomeAppreciation, money(result.CurrentHomeValue))
	fmt.Fprintf(&b, "Current equity: %s\n\n", money(result.CurrentEquity))

	fmt.Fprintf(&b, "=== MONTHLY COSTS ===\n")
	fmt.Fprintf(&b, "P&I: %s\n", money(input.MonthlyPI))
	fmt.Fprintf(&b, "Taxes: %s\n", money(input.MonthlyTaxes))
	fmt.Fprintf(&b, "Insurance: %s\n", money(input.MonthlyInsurance))
	fmt.Fprintf(&b, "HOA: %s\n", money(input.MonthlyHOA))
	fmt.Fprintf(&b, "Maintenance: %s\n", money(input.MonthlyMaintenance))
	fmt.Fprintf(&b, "Total monthly ownership cost: %s\n\n", money(result.MonthlyOwnershipCost))

	fmt.Fprintf(&b, "=== DEPRECIATION ===\n")
	fmt.Fprintf(&b, "Building value (80%% of purchase): %s\n", money(input.PurchasePrice*BuildingValueRatio))
	fmt.Fprintf(&b, "Annual depreciation (27.5 years): %s\n\n", money(result.AnnualDepreciation))

	fmt.Fprintf(&b, "%s\nYEAR-BY-YEAR ANALYSIS\n%s\n", reportRule, reportRule)

	for _, year := range result.Years {
		writeYearBlock(&b, year, input.YearsToHold)
	}

	fmt.Fprintf(&b, "\n%s\nSANITY CHECKS\n%s\n", reportRule, reportRule)
	for _, check := range result.Checks {
		writeCheckBlock(&b, check)
	}

	if result.Explanation != "" {
		fmt.Fprintf(&b, "\n%s\n", result.Explanation)
	}

	return b.String()
}

func writeYearBlock(b *strings.Builder, y domain.YearSnapshot, yearsToHold int) {
	fmt.Fprintf(b, "\n--- YEAR %d ---\n", y.Year)
	fmt.Fprintf(b, "Home Value: %s\n", money(y.HomeValue))
	fmt.Fprintf(b, "Loan Balance: %s\n", money(y.LoanBalance))
	fmt.Fprintf(b, "Equity: %s\n", money(y.Equity))
	fmt.Fprintf(b, "\n")
	fmt.Fprintf(b, "Annual Rent: %s\n", money(y.AnnualRentalIncome))
	fmt.Fprintf(b, "Annual Expenses: %s\n", money(y.AnnualOwnershipCosts+y.AnnualMgmtFee))
	fmt.Fprintf(b, "Gross Rental Profit: %s\n", money(y.GrossRentalProfit))
	fmt.Fprintf(b, "Net Cash Flow (this year): %s\n", money(y.YearCashFlow))
	fmt.Fprintf(b, "Cumulative Cash Flow: %s\n", money(y.CumulativeCashFlow))
	fmt.Fprintf(b, "RENT Net Worth: %s\n", money(y.RentNetWorth))
	fmt.Fprintf(b, "\n")
	fmt.Fprintf(b, "Sale Price: %s\n", money(y.SalePrice))
	fmt.Fprintf(b, "Selling Costs: %s\n", money(y.SellingCosts))
	fmt.Fprintf(b, "Net Proceeds: %s\n", money(y.NetSaleProceeds))
	fmt.Fprintf(b, "Capital Gain: %s\n", money(y.CapitalGain))
	fmt.Fprintf(b, "Cap Gains Tax: %s\n", money(y.CapitalGainsTaxOwed))
	fmt.Fprintf(b, "Net After Tax: %s\n", money(y.NetAfterTaxProceeds))
	fmt.Fprintf(b, "Invested to Year %d: %s\n", yearsToHold, money(y.InvestedValue))
	fmt.Fprintf(b, "SELL Net Worth: %s\n", money(y.SellNetWorth))
	fmt.Fprintf(b, "\n")
	fmt.Fprintf(b, "Opportunity Cost (cumulative): %s\n", money(y.CumulativeOpportunityCost))
	fmt.Fprintf(b, ">>> BETTER OPTION: %s\n", y.Recommendation)
}

func writeCheckBlock(b *strings.Builder, check domain.SanityCheck) {
	fmt.Fprintf(b, "\n%s:\n", check.Name)
	for _, sample := range check.Samples {
		fmt.Fprintf(b, "  %s: %s\n", sample.Label, money(sample.Value))
	}
	if check.Status == domain.CheckInfo {
		fmt.Fprintf(b, "  %s\n", check.Detail)
		return
	}
	fmt.Fprintf(b, "  %s\n", check.Status)
}

// money renders a whole-dollar amount with thousands separators.
func money(v float64) string {
	negative := v < 0
	n := int64(math.Round(math.Abs(v)))

	digits := fmt.Sprintf("%d", n)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "$" + strings.Join(groups, ",")
	if negative {
		out = "-" + out
	}
	return out
}
