package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
	"github.com/julianstephens/alpha/internal/storage"
)

// FinanceSummary is a user's financial data with its derived figures.
type FinanceSummary struct {
	Data            models.FinancialData
	PassiveIncome   decimal.Decimal
	ActiveIncome    decimal.Decimal
	FreedomProgress int
	RunwayMonths    decimal.Decimal
}

func summarize(fd models.FinancialData) FinanceSummary {
	passive, active := progress.IncomeTotals(fd.Income)
	return FinanceSummary{
		Data:            fd,
		PassiveIncome:   passive,
		ActiveIncome:    active,
		FreedomProgress: progress.FreedomProgress(passive, fd.MonthlyFreedom),
		RunwayMonths:    progress.RunwayMonths(fd.CurrentSavings, fd.MonthlyFreedom),
	}
}

func (t *Tracker) Finances(userID string) (FinanceSummary, error) {
	fd, err := t.store.GetFinancialData(userID)
	if err != nil {
		return FinanceSummary{}, wrap("load finances", err)
	}
	progress.Recompute(&fd)
	return summarize(fd), nil
}

// updateFinances applies change inside a transaction, recomputes the freedom
// numbers from the stored expenses and persists them.
func (t *Tracker) updateFinances(op, userID string, change func(storage.Repository, *models.FinancialData) error) (FinanceSummary, error) {
	var out FinanceSummary
	err := t.store.WithTx(func(tx storage.Repository) error {
		fd, err := tx.GetFinancialData(userID)
		if err != nil {
			return err
		}
		if err := change(tx, &fd); err != nil {
			return err
		}
		fresh, err := tx.GetFinancialData(userID)
		if err != nil {
			return err
		}
		fd.Income, fd.Expenses = fresh.Income, fresh.Expenses
		progress.Recompute(&fd)
		fd.UpdatedAt = t.now().UTC().Truncate(time.Second)
		if err := tx.SaveFinancialData(fd); err != nil {
			return err
		}
		out = summarize(fd)
		return nil
	})
	if err != nil {
		return FinanceSummary{}, wrap(op, err)
	}
	return out, nil
}

// SetExpense records what was spent in month (YYYY-MM).
func (t *Tracker) SetExpense(userID, month string, amount decimal.Decimal) (FinanceSummary, error) {
	e := models.MonthlyExpense{Month: month, Amount: amount}
	if err := e.Validate(); err != nil {
		return FinanceSummary{}, invalid(err)
	}
	return t.updateFinances("set expense", userID, func(tx storage.Repository, _ *models.FinancialData) error {
		return tx.SetExpense(userID, e)
	})
}

func (t *Tracker) AddIncome(userID, name string, monthly decimal.Decimal, passive bool) (FinanceSummary, error) {
	src := models.IncomeSource{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          name,
		MonthlyAmount: monthly,
		Passive:       passive,
		CreatedAt:     t.now().UTC().Truncate(time.Second),
	}
	if err := src.Validate(); err != nil {
		return FinanceSummary{}, invalid(err)
	}
	return t.updateFinances("add income", userID, func(tx storage.Repository, _ *models.FinancialData) error {
		return tx.AddIncomeSource(src)
	})
}

func (t *Tracker) RemoveIncome(userID, incomeID string) (FinanceSummary, error) {
	return t.updateFinances("remove income", userID, func(tx storage.Repository, fd *models.FinancialData) error {
		for _, src := range fd.Income {
			if src.ID == incomeID {
				return tx.DeleteIncomeSource(incomeID)
			}
		}
		return fmt.Errorf("income source %s: %w", incomeID, storage.ErrNotFound)
	})
}

func (t *Tracker) SetSavings(userID string, amount decimal.Decimal) (FinanceSummary, error) {
	if amount.IsNegative() {
		return FinanceSummary{}, invalid(fmt.Errorf("savings cannot be negative"))
	}
	return t.updateFinances("set savings", userID, func(_ storage.Repository, fd *models.FinancialData) error {
		fd.CurrentSavings = amount
		return nil
	})
}
