package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nkorotkov/privateme/internal/common"
)

func (a *App) sync(ctx context.Context) {
	report, err := a.runSyncPass(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	log.Printf("Synced %d note(s)", report.Synced)
	for _, id := range report.Failed {
		log.Printf("Note %s is still pending and will retry later", id)
	}
}

func (a *App) fetch(ctx context.Context, id string) {
	userID, _ := a.session()
	note, err := a.orchestrator.FetchOne(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("Note %s does not exist remotely", id)
		} else {
			log.Printf("error fetching note: %v", err)
		}
		return
	}

	log.Printf("Fetched note %s: %s", note.ID, note.Title)
}

func (a *App) status(ctx context.Context) {
	notes, err := a.store.GetAllNotes(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	pending := 0
	for _, n := range notes {
		if n.NeedsSync() {
			pending++
		}
	}

	fmt.Printf("Mode:    %s\n", a.currentMode())
	fmt.Printf("Notes:   %d (%d pending sync)\n", len(notes), pending)

	if _, err := a.keys.Key(); err == nil {
		fmt.Println("Key:     present")
	} else {
		fmt.Println("Key:     unavailable")
	}
}
