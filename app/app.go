package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/elarafragrance/elara-backend/config"
	httpapi "github.com/elarafragrance/elara-backend/internal/api/http"
	"github.com/elarafragrance/elara-backend/internal/dependency"
	"github.com/elarafragrance/elara-backend/internal/mail"
	"github.com/elarafragrance/elara-backend/internal/ordercleanup"
	"github.com/elarafragrance/elara-backend/internal/payment/stripe"
	"github.com/elarafragrance/elara-backend/internal/store"
)

// App wires the storefront together: database, mail outbox worker, media
// bucket, payment processor, order cleanup worker and the HTTP server.
type App struct {
	c    *config.Config
	db   dependency.Repository
	hs   *httpapi.Server
	m    dependency.Mailer
	oc   *ordercleanup.Worker
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting elara backend")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.m, err = mail.New(&a.c.Mailer, a.db.Mail())
	if err != nil {
		return fmt.Errorf("failed to create mailer: %w", err)
	}
	if err := a.m.Start(ctx); err != nil {
		return fmt.Errorf("failed to start mail worker: %w", err)
	}

	fileStore, err := a.c.Bucket.Init()
	if err != nil {
		return fmt.Errorf("failed to init media bucket: %w", err)
	}

	invoicer, err := stripe.New(&a.c.Stripe)
	if err != nil {
		return fmt.Errorf("failed to init payment processor: %w", err)
	}

	a.oc = ordercleanup.New(&a.c.OrderCleanup, a.db)
	if err := a.oc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start order cleanup worker: %w", err)
	}

	a.hs, err = httpapi.New(&a.c.HTTP, a.db, a.m, fileStore, invoicer)
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}
	go func() {
		if err := a.hs.Start(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
		close(a.done)
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.oc != nil {
		if err := a.oc.Stop(); err != nil {
			slog.Default().ErrorContext(ctx, "can't stop order cleanup worker",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.m != nil {
		if err := a.m.Stop(); err != nil {
			slog.Default().ErrorContext(ctx, "can't stop mail worker",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
