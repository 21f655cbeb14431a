package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Learn(ctx context.Context, args []string) error
	Checkin(ctx context.Context) error
	Stats(ctx context.Context) error
	Say(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the letterpal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in (plus the above):
//	  - list           — show the alphabet with per-letter progress
//	  - learn <letter> — practice a letter and record the result
//	  - checkin        — record today's check-in
//	  - stats          — show streak, stars and completion
//	  - say <letter> <file> — send a recording for pronunciation scoring
//	  - logout         — log out
//
// The ledger commands work without a session too; they just skip the
// server sync. Any errors returned by command handlers are ignored here;
// handlers report their own errors. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lp (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
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
				printlnFn("Available commands: (l)ist, learn, checkin, stats, say, logout, exit")
			} else {
				printlnFn("Available commands: register, login, list, learn, checkin, stats, exit")
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "list", "l":
			_ = a.List(ctx)
		case "learn":
			_ = a.Learn(ctx, args)
		case "checkin":
			_ = a.Checkin(ctx)
		case "stats":
			_ = a.Stats(ctx)
		case "say":
			_ = a.Say(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
