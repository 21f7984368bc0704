// Package sync decides which notes need remote propagation, drives the
// push/pull protocol, and reconciles sync metadata with the outcomes.
//
// The orchestrator owns no state of its own beyond the in-flight pass.
// A note is always written to the local store before any push attempt,
// so a remote failure can never lose data: it only leaves the note in
// pending_sync for a later pass.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/nkorotkov/privateme/internal/client/api"
	"github.com/nkorotkov/privateme/internal/client/crypto"
	"github.com/nkorotkov/privateme/internal/client/models"
	"github.com/nkorotkov/privateme/internal/client/storage"
	"github.com/nkorotkov/privateme/internal/logging"
)

// Report summarizes a batch pass. Per-note failures are collected here
// instead of failing the batch.
type Report struct {
	Synced int
	Failed []string
}

type Orchestrator struct {
	store   storage.Store
	codec   *crypto.Codec
	gateway api.Gateway
	logger  logging.Logger
}

func NewOrchestrator(store storage.Store, codec *crypto.Codec, gateway api.Gateway, logger logging.Logger) *Orchestrator {
	return &Orchestrator{store: store, codec: codec, gateway: gateway, logger: logger}
}

// SyncOne pushes a single note to the remote store.
//
// The note moves to syncing for the duration of the attempt (in memory
// only, never persisted). On success it is written back as synced with a
// refreshed UpdatedAt; on failure it is written back as pending_sync and
// the triggering error is returned so the caller can tell "saved
// locally" apart from "saved and synced".
func (o *Orchestrator) SyncOne(ctx context.Context, note *models.Note, owner string) error {
	note.SyncStatus = models.SyncStatusSyncing

	payload, err := o.codec.Encode(note)
	if err == nil {
		err = o.gateway.Push(ctx, owner, note.ID, payload)
	}

	if err != nil {
		note.SyncStatus = models.SyncStatusPending
		if saveErr := o.store.SaveNote(ctx, note); saveErr != nil {
			o.logger.Error(ctx, "failed to record sync failure", "note_id", note.ID, "error", saveErr)
		}
		return fmt.Errorf("failed to sync note %s: %w", note.ID, err)
	}

	note.SyncStatus = models.SyncStatusSynced
	note.UpdatedAt = time.Now().UTC()
	if err := o.store.SaveNote(ctx, note); err != nil {
		return fmt.Errorf("failed to save synced note %s: %w", note.ID, err)
	}

	o.logger.Info(ctx, "note synced", "note_id", note.ID)
	return nil
}

// SyncAllPending pushes every note awaiting sync, one at a time, in
// store order. Each note's outcome is isolated: one failure never aborts
// the rest of the queue. The returned error covers only the initial
// store read.
func (o *Orchestrator) SyncAllPending(ctx context.Context, owner string) (Report, error) {
	notes, err := o.store.GetAllNotes(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read pending notes: %w", err)
	}

	var report Report
	for i := range notes {
		if !notes[i].NeedsSync() {
			continue
		}
		if err := o.SyncOne(ctx, &notes[i], owner); err != nil {
			o.logger.Warn(ctx, "note sync failed, will retry later", "note_id", notes[i].ID, "error", err)
			report.Failed = append(report.Failed, notes[i].ID)
			continue
		}
		report.Synced++
	}

	return report, nil
}

// FetchOne pulls the remote payload for noteID, decodes it, and writes
// the reconstructed note into the local store, overwriting any local
// copy unconditionally (remote wins on explicit fetch). The store is
// only touched after a successful decode.
func (o *Orchestrator) FetchOne(ctx context.Context, noteID, owner string) (*models.Note, error) {
	payload, err := o.gateway.Pull(ctx, owner, noteID)
	if err != nil {
		return nil, err
	}

	note, err := o.codec.Decode(payload)
	if err != nil {
		return nil, err
	}

	note.SyncStatus = models.SyncStatusSynced
	note.IsEncrypted = true

	if err := o.store.SaveNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save fetched note %s: %w", noteID, err)
	}

	return note, nil
}
