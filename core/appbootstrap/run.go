package appbootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stpaul-crime/api"
	"stpaul-crime/config"
	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// Run wires the whole service together and blocks until SIGINT/SIGTERM.
func Run(cfg *config.AppConfig, logger *utils.Logger) error {
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.ApplyMigrations(ctx, db, logger); err != nil {
		return err
	}

	comp := composeRuntime(cfg, db, logger)
	if err := comp.maintenance.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewServer(comp.serverDeps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		comp.maintenance.Stop(shutdownCtx)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
