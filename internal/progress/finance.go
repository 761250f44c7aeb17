package progress

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/alpha/internal/models"
)

const expenseWindow = 6

var (
	freedomBuffer = decimal.RequireFromString("1.1")
	monthsPerYear = decimal.NewFromInt(12)
)

// MonthlyFreedom is the average of the most recent six monthly expenses plus a
// 10% buffer, rounded to cents. No expenses means no freedom number yet.
func MonthlyFreedom(expenses []models.MonthlyExpense) decimal.Decimal {
	if len(expenses) == 0 {
		return decimal.Zero
	}
	recent := make([]models.MonthlyExpense, len(expenses))
	copy(recent, expenses)
	sort.Slice(recent, func(i, j int) bool { return recent[i].Month > recent[j].Month })
	if len(recent) > expenseWindow {
		recent = recent[:expenseWindow]
	}

	sum := decimal.Zero
	for _, e := range recent {
		sum = sum.Add(e.Amount)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(recent))))
	return avg.Mul(freedomBuffer).Round(2)
}

// AnnualFreedom is twelve months of the monthly freedom number.
func AnnualFreedom(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(monthsPerYear)
}

// IncomeTotals splits monthly income into passive and active sums.
func IncomeTotals(income []models.IncomeSource) (passive, active decimal.Decimal) {
	passive, active = decimal.Zero, decimal.Zero
	for _, src := range income {
		if src.Passive {
			passive = passive.Add(src.MonthlyAmount)
		} else {
			active = active.Add(src.MonthlyAmount)
		}
	}
	return passive, active
}

// FreedomProgress is passive income as a percentage of the monthly freedom number, capped at 100.
func FreedomProgress(passive, monthly decimal.Decimal) int {
	if !monthly.IsPositive() {
		return 0
	}
	pct := int(passive.Div(monthly).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	return max(0, min(pct, 100))
}

// RunwayMonths is how many months current savings cover at the freedom number.
func RunwayMonths(savings, monthly decimal.Decimal) decimal.Decimal {
	if !monthly.IsPositive() {
		return decimal.Zero
	}
	return savings.Div(monthly).Round(1)
}

// Recompute refreshes the derived freedom numbers in place.
func Recompute(fd *models.FinancialData) {
	fd.MonthlyFreedom = MonthlyFreedom(fd.Expenses)
	fd.AnnualFreedom = AnnualFreedom(fd.MonthlyFreedom)
}
