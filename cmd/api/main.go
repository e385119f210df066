package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/carteira/internal/app"
	"github.com/MrJamesThe3rd/carteira/internal/config"
	carteiraHttp "github.com/MrJamesThe3rd/carteira/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/carteira/internal/http/catalog"
	categorizeHandler "github.com/MrJamesThe3rd/carteira/internal/http/categorize"
	exportHandler "github.com/MrJamesThe3rd/carteira/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/carteira/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/carteira/internal/http/importcsv"
	investmentHandler "github.com/MrJamesThe3rd/carteira/internal/http/investment"
	planHandler "github.com/MrJamesThe3rd/carteira/internal/http/plan"
	summaryHandler "github.com/MrJamesThe3rd/carteira/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/carteira/internal/http/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	a, closeStorage, err := app.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	router := carteiraHttp.New(
		carteiraHttp.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Timeout:        cfg.Server.Timeout,
		},
		carteiraHttp.Handlers{
			Transactions: txHandler.NewHandler(a.Transactions),
			Import:       importHandler.NewHandler(a.Importer),
			Export:       exportHandler.NewHandler(a.Export),
			Categorize:   categorizeHandler.NewHandler(a.Rules),
			Investments:  investmentHandler.NewHandler(a.Investments, a.Catalog),
			Goals:        goalHandler.NewHandler(a.Goals),
			Summary:      summaryHandler.NewHandler(a, a.Export, a.Catalog),
			Plan:         planHandler.NewHandler(a.Plans),
			Catalog:      catalogHandler.NewHandler(a.Catalog),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "app", cfg.App.Name)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
