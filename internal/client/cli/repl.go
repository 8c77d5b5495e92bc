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
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Find(ctx context.Context, args []string) error
	Image(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Clear(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on EOF,
// on "exit"/"quit", or when ctx is done.
//
// Commands
//
//	help                 show available commands
//	login                authenticate (empty email uses the site identity)
//	logout               clear cached credentials
//	status               credential state and token claims
//	team | list | l      list team members
//	show <id>            one member by id
//	find <name>          first member whose name contains <name>
//	image <assetId>      public URL of an asset
//	refresh              refetch the team collection
//	clear                drop the cached collection
//	exit | quit          leave the program
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. Commands that prompt for more input read from the
// same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("clinic %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: team, show, find, image, refresh, clear, status, logout, exit")
			} else {
				printlnFn("Available commands: login, team, show, find, image, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "team", "list", "l":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "find":
			_ = a.Find(ctx, args)

		case "image":
			_ = a.Image(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
