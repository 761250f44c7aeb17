package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/storage"
	"github.com/julianstephens/alpha/internal/tracker"
)

type FinanceCmd struct {
	Show    FinanceShowCmd    `cmd:"" help:"Show the financial freedom summary." default:"1"`
	Savings FinanceSavingsCmd `cmd:"" help:"Set current savings."`
	Income  struct {
		Add    IncomeAddCmd    `cmd:"" help:"Add an income source."`
		Remove IncomeRemoveCmd `cmd:"" help:"Remove an income source."`
	} `cmd:"" help:"Manage income sources."`
	Expense struct {
		Set ExpenseSetCmd `cmd:"" help:"Record total expenses for a month."`
	} `cmd:"" help:"Manage monthly expenses."`
}

type FinanceShowCmd struct{}

func (c *FinanceShowCmd) Run(ctx *Context) error {
	sum, err := ctx.Tracker.Finances(ctx.User)
	if err != nil {
		return err
	}
	printFinances(ctx, sum)
	return nil
}

func printFinances(ctx *Context, sum tracker.FinanceSummary) {
	fd := sum.Data
	ctx.Println("Financial Freedom")
	ctx.Printf("  Monthly freedom number: %s\n", money(fd.MonthlyFreedom))
	ctx.Printf("  Annual freedom number:  %s\n", money(fd.AnnualFreedom))
	ctx.Printf("  Passive income:         %s/mo (%d%% of freedom)\n", money(sum.PassiveIncome), sum.FreedomProgress)
	ctx.Printf("  Active income:          %s/mo\n", money(sum.ActiveIncome))
	ctx.Printf("  Savings:                %s (%s months of runway)\n", money(fd.CurrentSavings), sum.RunwayMonths.StringFixed(1))

	if len(fd.Income) > 0 {
		ctx.Println("\nIncome sources")
		for _, src := range fd.Income {
			kind := "active"
			if src.Passive {
				kind = "passive"
			}
			ctx.Printf("  %-8s  %-24s %12s  %s\n", ShortID(src.ID), truncate(src.Name, 24), money(src.MonthlyAmount), kind)
		}
	}
	if len(fd.Expenses) > 0 {
		ctx.Println("\nRecent expenses")
		for i, e := range fd.Expenses {
			if i == 6 {
				ctx.Printf("  ... %d older month(s)\n", len(fd.Expenses)-6)
				break
			}
			ctx.Printf("  %s  %12s\n", e.Month, money(e.Amount))
		}
	}
	if fd.MonthlyFreedom.IsZero() {
		ctx.Println("\nRecord monthly expenses with 'alpha finance expense set YYYY-MM <amount>' to compute your freedom number.")
	}
}

func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

type FinanceSavingsCmd struct {
	Amount string `arg:"" help:"Current savings amount."`
}

func (c *FinanceSavingsCmd) Run(ctx *Context) error {
	amount, err := ParseMoney(c.Amount)
	if err != nil {
		return err
	}
	sum, err := ctx.Tracker.SetSavings(ctx.User, amount)
	if err != nil {
		return err
	}
	ctx.Printf("Savings set to %s (%s months of runway)\n", money(amount), sum.RunwayMonths.StringFixed(1))
	return nil
}

type IncomeAddCmd struct {
	Name    string `arg:"" help:"Income source name."`
	Amount  string `arg:"" help:"Monthly amount."`
	Passive bool   `help:"Income arrives without active work (dividends, rent, royalties)."`
}

func (c *IncomeAddCmd) Run(ctx *Context) error {
	amount, err := ParseMoney(c.Amount)
	if err != nil {
		return err
	}
	sum, err := ctx.Tracker.AddIncome(ctx.User, c.Name, amount, c.Passive)
	if err != nil {
		return err
	}
	ctx.Printf("Added income %q: %s/mo. Passive income covers %d%% of your freedom number.\n",
		c.Name, money(amount), sum.FreedomProgress)
	return nil
}

type IncomeRemoveCmd struct {
	Income string `arg:"" help:"Income source ID, ID prefix or name."`
}

func (c *IncomeRemoveCmd) Run(ctx *Context) error {
	sum, err := ctx.Tracker.Finances(ctx.User)
	if err != nil {
		return err
	}
	src, err := findIncome(sum.Data.Income, c.Income)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker.RemoveIncome(ctx.User, src.ID); err != nil {
		return err
	}
	ctx.Printf("Removed income source: %s\n", src.Name)
	return nil
}

func findIncome(income []models.IncomeSource, ref string) (models.IncomeSource, error) {
	var matches []models.IncomeSource
	for _, src := range income {
		if src.ID == ref {
			return src, nil
		}
		if strings.EqualFold(src.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(src.ID, ref)) {
			matches = append(matches, src)
		}
	}
	switch len(matches) {
	case 0:
		return models.IncomeSource{}, fmt.Errorf("income source %q: %w", ref, storage.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.IncomeSource{}, fmt.Errorf("%q matches %d income sources, use the ID", ref, len(matches))
	}
}

type ExpenseSetCmd struct {
	Month  string `arg:"" help:"Month (YYYY-MM)."`
	Amount string `arg:"" help:"Total expenses for the month."`
}

func (c *ExpenseSetCmd) Run(ctx *Context) error {
	amount, err := ParseMoney(c.Amount)
	if err != nil {
		return err
	}
	sum, err := ctx.Tracker.SetExpense(ctx.User, c.Month, amount)
	if err != nil {
		return err
	}
	ctx.Printf("Expenses for %s set to %s. Monthly freedom number: %s\n",
		c.Month, money(amount), money(sum.Data.MonthlyFreedom))
	return nil
}
