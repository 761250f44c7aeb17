package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FinancialData holds a user's freedom numbers and their inputs.
// MonthlyFreedom and AnnualFreedom are always recomputed from Expenses.
type FinancialData struct {
	UserID         string           `json:"user_id"`
	MonthlyFreedom decimal.Decimal  `json:"monthly_freedom"`
	AnnualFreedom  decimal.Decimal  `json:"annual_freedom"`
	CurrentSavings decimal.Decimal  `json:"current_savings"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Income         []IncomeSource   `json:"income,omitempty"`
	Expenses       []MonthlyExpense `json:"expenses,omitempty"`
}

type IncomeSource struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Passive       bool            `json:"passive"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (i *IncomeSource) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("income source name cannot be empty")
	}
	if i.MonthlyAmount.IsNegative() {
		return fmt.Errorf("income amount cannot be negative")
	}
	return nil
}

type MonthlyExpense struct {
	Month  string          `json:"month"` // YYYY-MM format
	Amount decimal.Decimal `json:"amount"`
}

func (e *MonthlyExpense) Validate() error {
	if _, err := time.Parse("2006-01", e.Month); err != nil {
		return fmt.Errorf("invalid month format (expected YYYY-MM): %w", err)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense amount cannot be negative")
	}
	return nil
}
