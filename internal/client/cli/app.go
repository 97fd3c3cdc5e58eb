// Package cli implements the interactive docstore CLI: login against the
// identity provider, listing and searching the visible tree, downloads, and
// queued multi-file uploads.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/pouchain/docstore/internal/client/api"
	"github.com/pouchain/docstore/internal/client/config"
	"github.com/pouchain/docstore/internal/uploadq"
)

type App struct {
	config *config.Config
	api    *api.Client
	queue  *uploadq.Queue
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c)

	queue := uploadq.New(func(ctx context.Context, key string, data []byte, progress func(float64)) error {
		progress(0)
		return client.Upload(ctx, key, key, data)
	})

	return &App{
		config: c,
		api:    client,
		queue:  queue,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
