package main

import (
	"context"

	"github.com/bookhavenhq/bookhaven/internal/cart"
	"github.com/bookhavenhq/bookhaven/internal/checkout"
	"github.com/bookhavenhq/bookhaven/internal/session"
	"github.com/bookhavenhq/bookhaven/internal/storage"
	"github.com/bookhavenhq/bookhaven/internal/theme"
	"github.com/bookhavenhq/bookhaven/internal/tui"
	"github.com/bookhavenhq/bookhaven/pkg/config"
	"github.com/bookhavenhq/bookhaven/pkg/db"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
	"github.com/bookhavenhq/bookhaven/pkg/migrate"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// run bootstraps config, storage and the stores, then hands the terminal to
// the TUI until the user quits.
func run(ctx context.Context) (err error) {
	logg := logger.New(logger.Options{ServiceName: "bookhaven"})

	if dotErr := godotenv.Load(); dotErr != nil {
		logg.Debug(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so they never tear the alternate screen.
	logg = logger.New(logger.Options{
		ServiceName: "bookhaven",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.Storage, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.Run(ctx, logg, dbClient); err != nil {
		return err
	}

	repo := storage.NewRepository(dbClient.DB())

	carts, err := cart.NewStore(cart.Params{Repo: repo, Logger: logg})
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(session.Params{Repo: repo, Cart: carts, Logger: logg})
	if err != nil {
		return err
	}
	themes, err := theme.NewStore(theme.Params{Repo: repo, DefaultDark: cfg.Theme.DefaultDark(), Logger: logg})
	if err != nil {
		return err
	}

	// Rehydrate in the same order every launch. A missing snapshot leaves
	// the store on its default.
	for _, load := range []func(context.Context) error{carts.Load, sessions.Load, themes.Load} {
		if err := load(ctx); err != nil {
			return err
		}
	}

	unsubscribe := carts.Subscribe(func(event cart.Event) {
		cctx := logg.WithFields(ctx, map[string]any{
			"event": string(event.Kind),
			"items": carts.ItemCount(),
			"total": carts.Total().StringFixed(2),
		})
		logg.Debug(cctx, "cart changed")
	})
	defer unsubscribe()

	orders, err := checkout.NewService(carts, logg)
	if err != nil {
		return err
	}

	model, err := tui.NewModel(tui.Params{
		Logger:     logg,
		Cart:       carts,
		Session:    sessions,
		Theme:      themes,
		Checkout:   orders,
		ResetDelay: cfg.Checkout.ResetDelay,
	})
	if err != nil {
		return err
	}

	logg.Info(logg.WithField(ctx, "storage_path", cfg.Storage.Path), "starting storefront")

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
