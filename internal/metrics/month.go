package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
)

// Month is a calendar month. Months are taken in UTC, the zone entry dates
// are stored in.
type Month struct {
	Year  int
	Month time.Month
}

const monthLayout = "2006-01"

// MonthOf returns the calendar month t falls in.
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads a "2006-01" month.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("parsing month %q: %w", s, err)
	}

	return MonthOf(t), nil
}

func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the last instant of the month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t lies in [Start, End].
func (m Month) Contains(t time.Time) bool {
	return !t.Before(m.Start()) && !t.After(m.End())
}

func (m Month) Prev() Month {
	return MonthOf(m.Start().AddDate(0, -1, 0))
}

func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}

	return m.Month < o.Month
}

func (m Month) String() string {
	return m.Start().Format(monthLayout)
}

// Label renders the month with the catalog's abbreviation, e.g. "fev 2024".
func (m Month) Label(c *catalog.Catalog) string {
	return c.MonthAbbrev(m.Month) + " " + strconv.Itoa(m.Year)
}
