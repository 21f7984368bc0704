package cli

import (
	"context"
	"errors"
	"log"

	"github.com/nkorotkov/privateme/internal/common"
)

func (a *App) Register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "- Enter email")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if err := a.client.Register(ctx, email, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return
	}

	log.Println("Registration successful, you can log in now")
}

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "- Enter email")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	userID, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			log.Println("Login unsuccessful: invalid credentials")
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return
	}

	a.setSession(userID, email)
	a.setMode(ModeOnline)

	// make sure the device key exists; it ships with the account but is
	// not yet applied to payloads
	if _, err := a.keys.Key(); err != nil {
		log.Printf("warning: could not prepare device key: %v", err)
	}

	log.Println("Login successful")
}

// Logout clears the session and wipes the local store, matching the
// sign-out/reset flow of the app.
func (a *App) Logout(ctx context.Context) {
	if err := a.store.ClearAll(ctx); err != nil {
		log.Printf("error clearing local notes: %v", err)
		return
	}
	a.setSession("", "")
	a.client.SetToken("")
	log.Println("Logged out, local notes cleared")
}
