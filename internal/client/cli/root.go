package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus(ctx context.Context) string {
	if a.authService.IsAuthenticated(ctx) {
		return "(authenticated)"
	}
	return ""
}

// Root prints the banner and runs the REPL on the App's input until the
// user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Clinic site console (type 'help' for commands)")

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, a.reader)
}
