package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nkorotkov/privateme/internal/client/models"
)

// addNote saves a new note locally. The save always succeeds (or fails)
// locally first; syncing is a separate step.
func (a *App) addNote(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "- Enter title")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	content, err := GetMultiline(a.reader, "- Enter note text:")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	tags, err := GetTags(a.reader)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	userID, _ := a.session()
	note := models.NewNote(userID, title, content, tags)
	if err := a.store.SaveNote(ctx, note); err != nil {
		log.Printf("error saving note: %v", err)
		return
	}

	log.Printf("Saved note %s (pending sync)", note.ID)
}

func (a *App) list(ctx context.Context) {
	notes, err := a.store.GetAllNotes(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	for _, n := range notes {
		if n.DeletedAt != nil {
			continue
		}
		pin := " "
		if n.IsPinned {
			pin = "*"
		}
		fmt.Printf("%s %s  [%s]  %s\n", pin, n.ID, n.SyncStatus, n.Title)
	}
}

func (a *App) show(ctx context.Context, id string) {
	note, err := a.store.GetNote(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	fmt.Printf("Title:   %s\n", note.Title)
	if len(note.Tags) > 0 {
		fmt.Printf("Tags:    %s\n", strings.Join(note.Tags, ", "))
	}
	fmt.Printf("Status:  %s\n", note.SyncStatus)
	fmt.Printf("Updated: %s\n", note.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Println(note.Content)
}

func (a *App) edit(ctx context.Context, id string) {
	note, err := a.store.GetNote(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("- New title (current: %s)", note.Title))
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if title != "" {
		note.Title = title
	}

	content, err := GetMultiline(a.reader, "- New text (empty to keep current):")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if content != "" {
		note.Content = content
	}

	note.Touch()
	if err := a.store.SaveNote(ctx, note); err != nil {
		log.Printf("error saving note: %v", err)
		return
	}

	log.Printf("Updated note %s (pending sync)", note.ID)
}

// delete tombstones the note so the deletion can propagate on the next
// sync pass. The record stays in the local store until purged.
func (a *App) delete(ctx context.Context, id string) {
	note, err := a.store.GetNote(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	note.MarkDeleted()
	if err := a.store.SaveNote(ctx, note); err != nil {
		log.Printf("error deleting note: %v", err)
		return
	}
	log.Printf("Deleted note %s (pending sync)", id)
}

// purge removes the record from the local store entirely.
func (a *App) purge(ctx context.Context, id string) {
	if err := a.store.DeleteNote(ctx, id); err != nil {
		log.Printf("error purging note: %v", err)
		return
	}
	log.Printf("Purged note %s", id)
}
