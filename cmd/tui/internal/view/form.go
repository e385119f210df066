package view

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	"github.com/MrJamesThe3rd/carteira/internal/money"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

const formWidth = 50

// Form values live behind pointers so huh bindings survive model copies.

type txFormValues struct {
	Kind        string
	Amount      string
	Category    string
	Description string
	Date        string
}

func newTxFormValues(tx *transaction.Transaction, now time.Time) *txFormValues {
	if tx == nil {
		return &txFormValues{Kind: string(transaction.KindExpense), Date: FormatDate(now)}
	}

	return &txFormValues{
		Kind:        string(tx.Kind),
		Amount:      tx.Amount.StringFixed(2),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        FormatDate(tx.Date),
	}
}

// params converts the form values. The form validators have already
// rejected anything that would fail here.
func (v *txFormValues) params() (transaction.Params, error) {
	amount, err := money.ParseAmount(v.Amount)
	if err != nil {
		return transaction.Params{}, err
	}

	date, err := parseDate(v.Date)
	if err != nil {
		return transaction.Params{}, err
	}

	return transaction.Params{
		Kind:        transaction.Kind(v.Kind),
		Amount:      amount,
		Category:    v.Category,
		Description: v.Description,
		Date:        date,
	}, nil
}

func newTxForm(c *catalog.Catalog, v *txFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("kind").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(transaction.KindExpense)),
					huh.NewOption("Income", string(transaction.KindIncome)),
				).
				Value(&v.Kind),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0,00").
				Value(&v.Amount).
				Validate(validateAmount),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					return huh.NewOptions(c.CategoriesFor(v.Kind)...)
				}, &v.Kind).
				Value(&v.Category),

			huh.NewInput().
				Key("description").
				Title("Description").
				CharLimit(200).
				Value(&v.Description),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&v.Date).
				Validate(validateDate),
		),
	).WithWidth(formWidth).WithShowHelp(false)
}

type investmentFormValues struct {
	Name         string
	Type         string
	Amount       string
	CurrentValue string
	Quantity     string
	Symbol       string
	PurchaseDate string
}

func newInvestmentFormValues(inv *investment.Investment, now time.Time) *investmentFormValues {
	if inv == nil {
		return &investmentFormValues{PurchaseDate: FormatDate(now)}
	}

	v := &investmentFormValues{
		Name:         inv.Name,
		Type:         inv.Type,
		Amount:       inv.Amount.StringFixed(2),
		CurrentValue: inv.CurrentValue.StringFixed(2),
		Symbol:       inv.Symbol,
		PurchaseDate: FormatDate(inv.PurchaseDate),
	}

	if !inv.Quantity.IsZero() {
		v.Quantity = inv.Quantity.String()
	}

	return v
}

func (v *investmentFormValues) params() (investment.Params, error) {
	amount, err := money.ParseAmount(v.Amount)
	if err != nil {
		return investment.Params{}, err
	}

	current, err := money.ParseAmount(v.CurrentValue)
	if err != nil {
		return investment.Params{}, err
	}

	quantity, err := optionalAmount(v.Quantity)
	if err != nil {
		return investment.Params{}, err
	}

	date, err := parseDate(v.PurchaseDate)
	if err != nil {
		return investment.Params{}, err
	}

	return investment.Params{
		Name:         v.Name,
		Type:         v.Type,
		Amount:       amount,
		CurrentValue: current,
		Quantity:     quantity,
		Symbol:       v.Symbol,
		PurchaseDate: date,
	}, nil
}

func newInvestmentForm(c *catalog.Catalog, v *investmentFormValues) *huh.Form {
	types := make([]huh.Option[string], len(c.InvestmentTypes))
	for i, o := range c.InvestmentTypes {
		types[i] = huh.NewOption(o.Label, o.Value)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				CharLimit(100).
				Value(&v.Name).
				Validate(required("name")),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(types...).
				Value(&v.Type),

			huh.NewInput().
				Key("amount").
				Title("Amount invested").
				Value(&v.Amount).
				Validate(validateAmount),

			huh.NewInput().
				Key("current").
				Title("Current value").
				Value(&v.CurrentValue).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("quantity").
				Title("Quantity (optional)").
				Value(&v.Quantity).
				Validate(func(s string) error {
					_, err := optionalAmount(s)
					return err
				}),

			huh.NewInput().
				Key("symbol").
				Title("Symbol (optional)").
				CharLimit(20).
				Value(&v.Symbol),

			huh.NewInput().
				Key("date").
				Title("Purchase date").
				Placeholder("YYYY-MM-DD").
				Value(&v.PurchaseDate).
				Validate(validateDate),
		),
	).WithWidth(formWidth).WithShowHelp(false)
}

type goalFormValues struct {
	Name          string
	TargetAmount  string
	CurrentAmount string
	Deadline      string
	Category      string
	Priority      string
}

func newGoalFormValues(g *goal.Goal, now time.Time) *goalFormValues {
	if g == nil {
		return &goalFormValues{
			CurrentAmount: "0",
			Deadline:      FormatDate(now.AddDate(1, 0, 0)),
			Priority:      string(goal.PriorityMedium),
		}
	}

	return &goalFormValues{
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Deadline:      FormatDate(g.Deadline),
		Category:      g.Category,
		Priority:      string(g.Priority),
	}
}

func (v *goalFormValues) params() (goal.Params, error) {
	target, err := money.ParseAmount(v.TargetAmount)
	if err != nil {
		return goal.Params{}, err
	}

	current, err := money.ParseAmount(v.CurrentAmount)
	if err != nil {
		return goal.Params{}, err
	}

	deadline, err := parseDate(v.Deadline)
	if err != nil {
		return goal.Params{}, err
	}

	return goal.Params{
		Name:          v.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Category:      v.Category,
		Priority:      goal.Priority(v.Priority),
	}, nil
}

func newGoalForm(c *catalog.Catalog, v *goalFormValues) *huh.Form {
	priorities := make([]huh.Option[string], len(c.Priorities))
	for i, o := range c.Priorities {
		priorities[i] = huh.NewOption(o.Label, o.Value)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				CharLimit(100).
				Value(&v.Name).
				Validate(required("name")),

			huh.NewInput().
				Key("target").
				Title("Target amount").
				Value(&v.TargetAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("current").
				Title("Saved so far").
				Value(&v.CurrentAmount).
				Validate(validateAmount),

			huh.NewInput().
				Key("deadline").
				Title("Deadline").
				Placeholder("YYYY-MM-DD").
				Value(&v.Deadline).
				Validate(validateDate),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(c.GoalCategories...)...).
				Value(&v.Category),

			huh.NewSelect[string]().
				Key("priority").
				Title("Priority").
				Options(priorities...).
				Value(&v.Priority),
		),
	).WithWidth(formWidth).WithShowHelp(false)
}

func validateAmount(s string) error {
	_, err := money.ParseAmount(s)
	return err
}

func optionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}

	return money.ParseAmount(s)
}

func validateDate(s string) error {
	_, err := parseDate(s)
	return err
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD")
	}

	return t, nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}

		return nil
	}
}
