package goal

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/carteira/internal/money"
)

var (
	ErrNotFound = errors.New("goal not found")
	ErrInvalid  = errors.New("invalid goal")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusDueSoon   Status = "due_soon"
	StatusOnTrack   Status = "on_track"
)

// DueSoonDays is how close the deadline must be for a goal to be due soon.
const DueSoonDays = 30

// Goal is a savings target.
type Goal struct {
	ID            string
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	Category      string
	Priority      Priority
}

// Progress is the saved share of the target in percent. It can exceed 100
// and is zero when the target is zero.
func (g *Goal) Progress() decimal.Decimal {
	return money.Percent(g.CurrentAmount, g.TargetAmount)
}

func (g *Goal) Completed() bool {
	return g.Progress().GreaterThanOrEqual(decimal.NewFromInt(100))
}

// Remaining is what is still missing to reach the target. It is negative
// once the target is exceeded.
func (g *Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// DaysRemaining counts whole days until the deadline, rounding up. Past
// deadlines give negative values.
func (g *Goal) DaysRemaining(now time.Time) int {
	return int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
}

func (g *Goal) Status(now time.Time) Status {
	if g.Completed() {
		return StatusCompleted
	}

	days := g.DaysRemaining(now)

	switch {
	case days < 0:
		return StatusOverdue
	case days < DueSoonDays:
		return StatusDueSoon
	}

	return StatusOnTrack
}
