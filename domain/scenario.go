package domain

// ScenarioInput bundles every assumption for a rent-vs-sell projection.
// All rates are plain percentages (6.5 means 6.5% annual).
type ScenarioInput struct {
	PurchasePrice      float64 `json:"purchase_price" validate:"gt=0"`
	LoanOriginDate     Date    `json:"loan_origin_date"`
	OriginalLoanAmount float64 `json:"original_loan_amount" validate:"gt=0"`
	InterestRate       float64 `json:"interest_rate" validate:"gte=0"`
	TotalLoanMonths    int     `json:"total_loan_months" validate:"gt=0"`
	MonthlyPI          float64 `json:"monthly_pi" validate:"gte=0"`
	MonthlyHOA         float64 `json:"monthly_hoa" validate:"gte=0"`
	MonthlyTaxes       float64 `json:"monthly_taxes" validate:"gte=0"`
	MonthlyInsurance   float64 `json:"monthly_insurance" validate:"gte=0"`
	MonthlyMaintenance float64 `json:"monthly_maintenance" validate:"gte=0"`
	RentalPrice        float64 `json:"rental_price" validate:"gte=0"`
	AnnualRentIncrease float64 `json:"annual_rent_increase" validate:"gte=0"`
	PropertyMgmtFee    float64 `json:"property_mgmt_fee" validate:"gte=0"`
	CostsToRent        float64 `json:"costs_to_rent" validate:"gte=0"`
	RentalTaxRate      float64 `json:"rental_tax_rate" validate:"gte=0"`
	HomeAppreciation   float64 `json:"home_appreciation" validate:"gte=0"`
	SellingFees        float64 `json:"selling_fees" validate:"gte=0"`
	CostsToSell        float64 `json:"costs_to_sell" validate:"gte=0"`
	CapitalGainsTax    float64 `json:"capital_gains_tax" validate:"gte=0"`
	InvestmentReturn   float64 `json:"investment_return" validate:"gte=0"`
	YearsToHold        int     `json:"years_to_hold" validate:"gte=0"`
	IsPrimaryResidence bool    `json:"is_primary_residence"`
}

// MonthlyOwnershipCost is the fixed monthly carrying cost of the property
// (P&I plus taxes, insurance, HOA and maintenance).
func (s ScenarioInput) MonthlyOwnershipCost() float64 {
	return s.MonthlyPI + s.MonthlyTaxes + s.MonthlyInsurance + s.MonthlyHOA + s.MonthlyMaintenance
}

type Recommendation string

const (
	RecommendRent Recommendation = "RENT"
	RecommendSell Recommendation = "SELL"
)

// YearSnapshot is one projected year. Every field is recomputed from the
// input each year except the two cumulative accumulators, which carry
// forward from the previous year.
type YearSnapshot struct {
	Year              int     `json:"year"`
	FutureMonths      int     `json:"future_months"`
	YearsFromPurchase float64 `json:"years_from_purchase"`

	HomeValue   float64 `json:"home_value"`
	LoanBalance float64 `json:"loan_balance"`
	Equity      float64 `json:"equity"`

	MonthlyRent          float64 `json:"monthly_rent"`
	AnnualRentalIncome   float64 `json:"annual_rental_income"`
	AnnualMgmtFee        float64 `json:"annual_mgmt_fee"`
	AnnualOwnershipCosts float64 `json:"annual_ownership_costs"`
	GrossRentalProfit    float64 `json:"gross_rental_profit"`
	TaxableRentalIncome  float64 `json:"taxable_rental_income"`
	RentalTax            float64 `json:"rental_tax"`
	NetRentalCashFlow    float64 `json:"net_rental_cash_flow"`
	YearCashFlow         float64 `json:"year_cash_flow"`
	CumulativeCashFlow   float64 `json:"cumulative_cash_flow"`
	RentNetWorth         float64 `json:"rent_net_worth"`

	SalePrice           float64 `json:"sale_price"`
	SellingCosts        float64 `json:"selling_costs"`
	NetSaleProceeds     float64 `json:"net_sale_proceeds"`
	CapitalGain         float64 `json:"capital_gain"`
	CapitalGainsTaxOwed float64 `json:"capital_gains_tax_owed"`
	NetAfterTaxProceeds float64 `json:"net_after_tax_proceeds"`
	InvestedValue       float64 `json:"invested_value"`
	SellNetWorth        float64 `json:"sell_net_worth"`

	// Accrued shortfall capital compounded at the investment return.
	// Diagnostic only: it is not netted out of RentNetWorth.
	CumulativeOpportunityCost float64 `json:"cumulative_opportunity_cost"`

	Recommendation Recommendation `json:"recommendation"`
}

// AnalysisResult is the full projection: derived reference values, one
// snapshot per year and the sanity checks over the same formulas.
type AnalysisResult struct {
	AsOf                 Date    `json:"as_of"`
	ElapsedMonths        int     `json:"elapsed_months"`
	CurrentLoanBalance   float64 `json:"current_loan_balance"`
	CalculatedMonthlyPI  float64 `json:"calculated_monthly_pi"`
	CurrentHomeValue     float64 `json:"current_home_value"`
	CurrentEquity        float64 `json:"current_equity"`
	MonthlyOwnershipCost float64 `json:"monthly_ownership_cost"`
	AnnualDepreciation   float64 `json:"annual_depreciation"`

	Years  []YearSnapshot `json:"years"`
	Checks []SanityCheck  `json:"checks"`

	Explanation string `json:"explanation,omitempty"`
}

// FinalYear returns the snapshot at the hold horizon.
func (r AnalysisResult) FinalYear() YearSnapshot {
	if len(r.Years) == 0 {
		return YearSnapshot{}
	}
	return r.Years[len(r.Years)-1]
}
