package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	_, email := a.session()
	mode := a.currentMode()

	s := ""
	if email != "" {
		s = email + " "
	}
	if mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to PrivateMe CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Printf("pm %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: add, list, show <id>, edit <id>, del <id>, purge <id>, sync, fetch <id>, status, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "add":
			a.addNote(ctx)
		case "list", "l":
			a.list(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.show(ctx, args[0])
		case "edit":
			if len(args) == 0 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			a.edit(ctx, args[0])
		case "del", "delete":
			if len(args) == 0 {
				fmt.Println("Usage: del <id>")
				continue
			}
			a.delete(ctx, args[0])
		case "purge":
			if len(args) == 0 {
				fmt.Println("Usage: purge <id>")
				continue
			}
			a.purge(ctx, args[0])
		case "sync":
			a.sync(ctx)
		case "fetch":
			if len(args) == 0 {
				fmt.Println("Usage: fetch <id>")
				continue
			}
			a.fetch(ctx, args[0])
		case "status":
			a.status(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
