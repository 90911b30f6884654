// Package cli wires the full stack behind the bear365 command tree:
// config, logging, document store backend, identity provider, ledger
// and sync bridge.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"

	"github.com/tuuhea417/bear-365-saving/internal/bridge"
	"github.com/tuuhea417/bear-365-saving/internal/config"
	"github.com/tuuhea417/bear-365-saving/internal/docstore"
	fsstore "github.com/tuuhea417/bear-365-saving/internal/docstore/firestore"
	memstore "github.com/tuuhea417/bear-365-saving/internal/docstore/memory"
	sqlstore "github.com/tuuhea417/bear-365-saving/internal/docstore/sqlite"
	"github.com/tuuhea417/bear-365-saving/internal/identity/local"
	"github.com/tuuhea417/bear-365-saving/internal/ledger"
	applog "github.com/tuuhea417/bear-365-saving/internal/log"
)

// syncWait bounds how long commands wait for the initial inbound
// snapshots before reading or mutating state.
const syncWait = 5 * time.Second

type app struct {
	cfg      *config.Config
	logger   *applog.Logger
	docs     docstore.Store
	ledger   *ledger.Store
	bridge   *bridge.Bridge
	control  *bridge.Controller
	provider *local.Provider
}

// openApp boots the stack and establishes an identity. Callers must
// Close the returned app.
func openApp(ctx context.Context) (*app, error) {
	// Optional .env for local development.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "bear365",
	})
	applog.SetDefault(logger)

	docs, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize %s backend: %w", cfg.DataBackend, err)
	}

	provider, err := local.New(cfg.IdentityFile)
	if err != nil {
		docs.Close()
		return nil, fmt.Errorf("initialize identity provider: %w", err)
	}

	led := ledger.New()
	br := bridge.New(docs, led, bridge.Config{
		AppID:    cfg.AppID,
		Debounce: cfg.SyncDebounce,
	}, logger)
	ctl := bridge.NewController(provider, br, logger)
	ctl.Start(ctx)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		docs:     docs,
		ledger:   led,
		bridge:   br,
		control:  ctl,
		provider: provider,
	}
	a.waitSynced(ctx)
	return a, nil
}

// Close flushes any pending outbound write, then tears everything
// down.
func (a *app) Close(ctx context.Context) {
	if err := a.bridge.Flush(ctx); err != nil {
		a.logger.Warn("Not all collections were persisted", "error", err)
	}
	a.control.Stop()
	a.bridge.Close()
	if err := a.docs.Close(); err != nil {
		a.logger.Warn("Closing document store failed", "error", err)
	}
}

// waitSynced blocks until the store delivered the initial snapshots or
// the deadline passes. In-process backends deliver synchronously;
// this only matters for remote ones.
func (a *app) waitSynced(ctx context.Context) {
	if a.bridge.Identity() == nil {
		return
	}
	deadline := time.Now().Add(syncWait)
	for a.bridge.State() != bridge.StateSynced {
		if time.Now().After(deadline) || ctx.Err() != nil {
			a.logger.Warn("Timed out waiting for initial sync, proceeding with local state")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return sqlstore.New(cfg.SQLiteDBPath)
	case "firestore":
		return fsstore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	default:
		return memstore.New(), nil
	}
}
