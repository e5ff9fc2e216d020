package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Pages(ctx context.Context) error
	Open(ctx context.Context, name string) error
	knownPage(name string) bool
}

// runREPL starts a simple read-eval-print loop for the libris CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - pages          — list the pages your role may open
//	  - open <page>    — switch to a page (a bare page name works too)
//	  - whoami         — show the signed-in identity and token expiry
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("libris %s> ", statusFn()))
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
				printlnFn("Available commands: pages, open <page>, whoami, logout, exit")
				printlnFn("A bare page name also opens it, e.g. 'books'.")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "pages":
			_ = a.Pages(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <page>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if a.knownPage(cmd) {
				_ = a.Open(ctx, cmd)
				continue
			}
			printlnFn("Unknown command:", cmd)
		}
	}
}
