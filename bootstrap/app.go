package bootstrap

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/21R01A7263/docGPT/config"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/platform/watcher"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	Cfg            *config.Config
	Infrastructure *Infrastructure
	Services       *Services
	Handlers       *Handlers
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Cfg: cfg}
	infra, err := NewInfrastructure(cfg)
	if err != nil {
		logging.Logger.Error("fail NewInfrastructure", "error", err)
		return nil, err
	}
	app.Infrastructure = infra

	services, err := NewServices(ctx, cfg, infra)
	if err != nil {
		logging.Logger.Error("fail NewServices", "error", err)
		_ = infra.Shutdown()
		return nil, err
	}
	app.Services = services

	app.Handlers = NewHandlers(services, infra, cfg.MaxFileSize)
	return app, nil
}

// Run serves HTTP, and watches the inbox when one is configured, until ctx is done.
func (a *App) Run(ctx context.Context) error {
	server := NewFiberApp(a.Cfg, a.Handlers, os.Stdout)
	errCh := make(chan error, 2)

	if a.Cfg.InboxDir != "" {
		inbox, err := watcher.NewInbox(a.Cfg.InboxDir, a.Services.Session)
		if err != nil {
			logging.Logger.Error("fail NewInbox", "dir", a.Cfg.InboxDir, "error", err)
			return err
		}
		go func() {
			if err := inbox.Run(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		logging.Logger.Info("Server running", "url", "http://localhost:"+a.Cfg.HttpPort)
		if err := server.Listen(":" + a.Cfg.HttpPort); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	logging.Logger.Info("Shutting down")
	if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logging.Logger.Error("fail server shutdown", "error", err)
	}
	a.waitForSession(shutdownTimeout)
	return errors.Join(runErr, a.Shutdown())
}

func (a *App) waitForSession(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		a.Services.Session.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		logging.Logger.Warn("background work still running at shutdown")
	}
}

// Shutdown infra
func (a *App) Shutdown() error {
	if a == nil || a.Infrastructure == nil {
		return nil
	}
	return a.Infrastructure.Shutdown()
}
