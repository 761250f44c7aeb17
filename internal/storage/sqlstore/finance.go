package sqlstore

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/julianstephens/alpha/internal/models"
)

func (s *Store) GetFinancialData(userID string) (models.FinancialData, error) {
	fd := models.FinancialData{UserID: userID}

	row, err := s.queryRow(s.sb.Select("monthly_freedom", "annual_freedom", "current_savings", "updated_at").
		From("financial_data").
		Where("user_id = ?", userID))
	if err != nil {
		return fd, err
	}
	var updatedAt string
	err = row.Scan(&fd.MonthlyFreedom, &fd.AnnualFreedom, &fd.CurrentSavings, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fd, err
	default:
		if fd.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return fd, err
		}
	}

	if fd.Income, err = s.listIncome(userID); err != nil {
		return fd, err
	}
	if fd.Expenses, err = s.listExpenses(userID); err != nil {
		return fd, err
	}
	return fd, nil
}

// SaveFinancialData upserts the header row. Income and expenses are managed
// through their own methods.
func (s *Store) SaveFinancialData(fd models.FinancialData) error {
	if fd.UpdatedAt.IsZero() {
		fd.UpdatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("financial_data").
		Columns("user_id", "monthly_freedom", "annual_freedom", "current_savings", "updated_at").
		Values(fd.UserID, fd.MonthlyFreedom.StringFixed(2), fd.AnnualFreedom.StringFixed(2), fd.CurrentSavings.StringFixed(2), formatTime(fd.UpdatedAt)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			monthly_freedom = excluded.monthly_freedom,
			annual_freedom = excluded.annual_freedom,
			current_savings = excluded.current_savings,
			updated_at = excluded.updated_at`))
	return err
}

func (s *Store) listIncome(userID string) ([]models.IncomeSource, error) {
	rows, err := s.query(s.sb.Select("id", "name", "monthly_amount", "passive", "created_at").
		From("income_sources").
		Where("user_id = ?", userID).
		OrderBy("passive DESC", "created_at"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var income []models.IncomeSource
	for rows.Next() {
		src := models.IncomeSource{UserID: userID}
		var createdAt string
		if err := rows.Scan(&src.ID, &src.Name, &src.MonthlyAmount, &src.Passive, &createdAt); err != nil {
			return nil, err
		}
		if src.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		income = append(income, src)
	}
	return income, rows.Err()
}

func (s *Store) listExpenses(userID string) ([]models.MonthlyExpense, error) {
	rows, err := s.query(s.sb.Select("month", "amount").
		From("monthly_expenses").
		Where("user_id = ?", userID).
		OrderBy("month DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.MonthlyExpense
	for rows.Next() {
		var e models.MonthlyExpense
		if err := rows.Scan(&e.Month, &e.Amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *Store) AddIncomeSource(src models.IncomeSource) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if src.ID == "" {
		src.ID = uuid.New().String()
	}
	if src.CreatedAt.IsZero() {
		src.CreatedAt = now()
	}
	_, err := s.exec(s.sb.Insert("income_sources").
		Columns("id", "user_id", "name", "monthly_amount", "passive", "created_at").
		Values(src.ID, src.UserID, src.Name, src.MonthlyAmount.StringFixed(2), src.Passive, formatTime(src.CreatedAt)))
	return err
}

func (s *Store) DeleteIncomeSource(id string) error {
	return s.execOne(s.sb.Delete("income_sources").Where("id = ?", id))
}

// SetExpense records the total spent in a month, replacing any earlier value.
func (s *Store) SetExpense(userID string, e models.MonthlyExpense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := s.exec(s.sb.Insert("monthly_expenses").
		Columns("user_id", "month", "amount").
		Values(userID, e.Month, e.Amount.StringFixed(2)).
		Suffix("ON CONFLICT (user_id, month) DO UPDATE SET amount = excluded.amount"))
	return err
}

