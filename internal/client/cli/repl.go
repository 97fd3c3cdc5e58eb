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
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Download(ctx context.Context, key string) error
	Upload(ctx context.Context, paths []string) error
	Queue(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the docstore CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help              — show available commands
//	  - login             — authenticate against the identity provider
//	  - list              — list visible files
//	  - search <text>     — substring search over visible keys
//	  - download <key>    — download one object
//	  - exit | quit       — leave the program
//
//	Logged in, additionally:
//	  - upload <paths...> — enqueue files for sequential upload
//	  - queue             — show upload queue status
//	  - logout            — drop the session token
//
// Any errors returned by command handlers are printed here; the loop itself
// never aborts on a command error.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		fmt.Printf("%s> ", statusFn())

		if !scanner.Scan() {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		var err error
		switch cmd {
		case "exit", "quit":
			return
		case "help":
			printHelp(a.isLoggedIn())
		case "login":
			err = a.Login(ctx)
		case "list":
			err = a.List(ctx)
		case "search":
			if len(args) == 0 {
				_, _ = printlnFn("usage: search <text>")
				continue
			}
			err = a.Search(ctx, strings.Join(args, " "))
		case "download":
			if len(args) != 1 {
				_, _ = printlnFn("usage: download <key>")
				continue
			}
			err = a.Download(ctx, args[0])
		case "upload":
			if !a.isLoggedIn() {
				_, _ = printlnFn("login first")
				continue
			}
			if len(args) == 0 {
				_, _ = printlnFn("usage: upload <path> [path...]")
				continue
			}
			err = a.Upload(ctx, args)
		case "queue":
			if !a.isLoggedIn() {
				_, _ = printlnFn("login first")
				continue
			}
			err = a.Queue(ctx)
		case "logout":
			if !a.isLoggedIn() {
				_, _ = printlnFn("not logged in")
				continue
			}
			err = a.Logout(ctx)
		default:
			_, _ = printlnFn("unknown command:", cmd)
		}

		if err != nil {
			_, _ = printlnFn("error:", err.Error())
		}
	}
}

func printHelp(loggedIn bool) {
	_, _ = printlnFn("commands: help, login, list, search <text>, download <key>, exit")
	if loggedIn {
		_, _ = printlnFn("          upload <path...>, queue, logout")
	}
}
