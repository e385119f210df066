// Package app wires the services shared by the API server, the terminal UI
// and the command line tool.
package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/carteira/internal/catalog"
	"github.com/MrJamesThe3rd/carteira/internal/categorize"
	categorizeStore "github.com/MrJamesThe3rd/carteira/internal/categorize/store"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	"github.com/MrJamesThe3rd/carteira/internal/database"
	"github.com/MrJamesThe3rd/carteira/internal/export"
	"github.com/MrJamesThe3rd/carteira/internal/goal"
	goalStore "github.com/MrJamesThe3rd/carteira/internal/goal/store"
	"github.com/MrJamesThe3rd/carteira/internal/importer"
	"github.com/MrJamesThe3rd/carteira/internal/investment"
	investmentStore "github.com/MrJamesThe3rd/carteira/internal/investment/store"
	"github.com/MrJamesThe3rd/carteira/internal/plan"
	"github.com/MrJamesThe3rd/carteira/internal/storage"
	sqlStore "github.com/MrJamesThe3rd/carteira/internal/storage/store"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
	txStore "github.com/MrJamesThe3rd/carteira/internal/transaction/store"
)

type App struct {
	Catalog      *catalog.Catalog
	Currency     string
	Transactions *transaction.Service
	Investments  *investment.Service
	Goals        *goal.Service
	Rules        *categorize.Service
	Plans        *plan.Service
	Importer     *importer.Service
	Export       *export.Service
}

// New builds every service on top of kv.
func New(kv storage.Storage, c *catalog.Catalog, currency string) *App {
	var (
		transactions = transaction.NewService(txStore.New(kv), c)
		rules        = categorize.NewService(categorizeStore.New(kv), c)
	)

	return &App{
		Catalog:      c,
		Currency:     currency,
		Transactions: transactions,
		Investments:  investment.NewService(investmentStore.New(kv), c),
		Goals:        goal.NewService(goalStore.New(kv), c),
		Rules:        rules,
		Plans:        plan.NewService(kv, c),
		Importer:     importer.NewService(c, rules, transactions),
		Export:       export.NewService(transactions, c, currency),
	}
}

// Open loads the catalog and the configured storage backend. The returned
// close function releases the database, if any.
func Open(cfg *config.Config) (*App, func() error, error) {
	c, err := catalog.Load(cfg.App.Catalog)
	if err != nil {
		return nil, nil, err
	}

	driver, dsn, err := cfg.DataSource()
	if err != nil {
		return nil, nil, err
	}

	if driver == config.DriverMemory {
		slog.Warn("using in-memory storage, data is lost on exit")
		return New(storage.NewMemory(), c, cfg.App.Currency), func() error { return nil }, nil
	}

	var db *sql.DB

	if db, err = database.New(driver, dsn); err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	slog.Debug("storage ready", "driver", driver)

	return New(sqlStore.New(db, driver), c, cfg.App.Currency), db.Close, nil
}
