package catalog_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()

	assert.True(t, c.HasCategory("income", "Salário"))
	assert.True(t, c.HasCategory("expense", "Alimentação"))
	assert.False(t, c.HasCategory("income", "Alimentação"))
	assert.False(t, c.HasCategory("transfer", "Outros"))
	assert.Len(t, c.CategoriesFor("expense"), 9)
	assert.Equal(t, "Outros", c.FallbackCategory)

	assert.True(t, c.HasInvestmentType("real_estate"))
	assert.Equal(t, "Criptomoedas", c.InvestmentLabel("crypto"))

	assert.True(t, c.HasGoalCategory("Viagem"))
	assert.True(t, c.HasPriority("high"))
	assert.Equal(t, "Média", c.PriorityLabel("medium"))

	assert.Equal(t, "fev", c.MonthAbbrev(time.February))
	assert.Equal(t, "dez", c.MonthAbbrev(time.December))
}

func TestCatalog_LabelFallback(t *testing.T) {
	c := catalog.Default()

	assert.Equal(t, "options", c.InvestmentLabel("options"))
	assert.Equal(t, "urgent", c.PriorityLabel("urgent"))
}

func TestCatalog_Plan(t *testing.T) {
	c := catalog.Default()

	p, ok := c.Plan("premium")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"dashboard", "goals", "investments"}, p.Features)

	_, ok = c.Plan("enterprise")
	assert.False(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	_, err := catalog.Parse([]byte("months: [jan]\nplans: [{name: basic}]"))
	assert.Error(t, err)

	_, err = catalog.Parse([]byte("::"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := catalog.Load("")
	require.NoError(t, err)
	assert.Same(t, catalog.Default(), c)

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
fallback_category: Misc
categories:
  expense: [Misc, Food]
plans:
  - name: basic
    label: Basic
    features: [dashboard]
months: [jan, feb, mar, apr, may, jun, jul, aug, sep, oct, nov, dec]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err = catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Misc", c.FallbackCategory)
	assert.True(t, c.HasCategory("expense", "Food"))
	assert.Equal(t, "feb", c.MonthAbbrev(time.February))
}
