package cli

import (
	"bufio"
	"context"
	"os"
)

// Root runs the REPL until the user exits or stdin is closed.
func (a *App) Root(ctx context.Context) {
	statusFn := func() string {
		if a.isLoggedIn() {
			return "docstore (authenticated) "
		}
		return "docstore "
	}

	runREPL(ctx, a, statusFn, bufio.NewScanner(os.Stdin))
}
