// Package cli implements the interactive PrivateMe client.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/nkorotkov/privateme/internal/client/api"
	"github.com/nkorotkov/privateme/internal/client/config"
	"github.com/nkorotkov/privateme/internal/client/crypto"
	"github.com/nkorotkov/privateme/internal/client/storage"
	syncx "github.com/nkorotkov/privateme/internal/client/sync"
	"github.com/nkorotkov/privateme/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config       *config.Config
	store        storage.Store
	client       *api.Client
	orchestrator *syncx.Orchestrator
	keys         *crypto.KeyStore
	logger       logging.Logger
	reader       *bufio.Reader

	// mu guards the session fields below. The REPL goroutine and the
	// online-status watcher both touch them.
	mu     sync.Mutex
	userID string
	email  string
	mode   Mode

	// syncMu serializes sync passes: the watcher's reconnect sync and
	// the REPL's explicit sync command must never interleave, the store
	// read-modify-write cycle is not guarded below this layer.
	syncMu sync.Mutex
}

// NewApp wires the local store, codec, gateway and orchestrator together.
// Everything is an explicit instance; nothing global.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	store, err := storage.NewBoltStore(c.DatabasePath)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewClient(c.ServerBaseURL, c.RequestTimeout)
	codec := crypto.NewCodec()
	orchestrator := syncx.NewOrchestrator(store, codec, apiClient, logger)
	keys := crypto.NewKeyStore(c.KeyPath)

	return &App{
		config:       c,
		store:        store,
		client:       apiClient,
		orchestrator: orchestrator,
		keys:         keys,
		logger:       logger,
		reader:       bufio.NewReader(os.Stdin),
		mode:         ModeOffline,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()
	a.Root(ctx)
}

// session returns a consistent snapshot of the logged-in identity.
func (a *App) session() (userID, email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userID, a.email
}

func (a *App) setSession(userID, email string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = userID
	a.email = email
}

func (a *App) isLoggedIn() bool {
	userID, _ := a.session()
	return userID != ""
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// runSyncPass drives one SyncAllPending pass for the current session.
// Passes are serialized so the watcher and the REPL never overlap.
func (a *App) runSyncPass(ctx context.Context) (syncx.Report, error) {
	userID, _ := a.session()

	a.syncMu.Lock()
	defer a.syncMu.Unlock()
	return a.orchestrator.SyncAllPending(ctx, userID)
}

// StartOnlineStatusWatcher periodically probes the backend and flips the
// online/offline mode. On an offline-to-online transition it kicks off a
// sync pass so pending edits propagate as soon as connectivity returns.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.client.HealthCheck(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
				continue
			}
			wasOffline := a.currentMode() != ModeOnline
			a.setMode(ModeOnline)
			if wasOffline && a.isLoggedIn() {
				if _, err := a.runSyncPass(ctx); err != nil {
					a.logger.Warn(ctx, "reconnect sync failed", "error", err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
