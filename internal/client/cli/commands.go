package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pouchain/docstore/internal/filex"
	"github.com/pouchain/docstore/internal/shared"
	"github.com/pouchain/docstore/internal/uploadq"
)

// Login prompts for email and password and exchanges them for a token.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email:", os.Stdout)
	if err != nil {
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}

	_, _ = printlnFn("Logged in.")
	return nil
}

// List prints every key visible to the requester.
func (a *App) List(ctx context.Context) error {
	return a.listWithQuery(ctx, "")
}

// Search prints visible keys containing the query substring.
func (a *App) Search(ctx context.Context, query string) error {
	return a.listWithQuery(ctx, query)
}

func (a *App) listWithQuery(ctx context.Context, query string) error {
	objects, err := a.api.List(ctx, query)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		_, _ = printlnFn("no files")
		return nil
	}
	for _, obj := range objects {
		_, _ = printlnFn(fmt.Sprintf("%10d  %s", obj.Size, obj.Key))
	}
	return nil
}

// Download fetches one object into the local downloads directory.
func (a *App) Download(ctx context.Context, key string) error {
	data, _, err := a.api.Download(ctx, key)
	if err != nil {
		return err
	}

	dir, err := filex.EnsureSubdir("downloads")
	if err != nil {
		return err
	}

	dest := filepath.Join(dir, filepath.Base(key))
	if err := os.WriteFile(dest, data, 0o600); err != nil {
		return err
	}

	_, _ = printlnFn("saved to", dest)
	return nil
}

// Upload enqueues each path for sequential upload and waits for the batch.
// The object key is the file's base name; a failed item does not stop the
// rest of the queue.
func (a *App) Upload(ctx context.Context, paths []string) error {
	var items []*uploadq.Item

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			_, _ = printlnFn("skipping", path, ":", err.Error())
			continue
		}
		items = append(items, a.queue.Enqueue(ctx, filepath.Base(path), data))
	}

	for _, item := range items {
		<-item.Done
		if item.Err != nil {
			_, _ = printlnFn("failed:", item.Key, "-", item.Err.Error())
		} else {
			_, _ = printlnFn("uploaded:", item.Key)
		}
	}
	return nil
}

// Queue prints the state of every queue item.
func (a *App) Queue(ctx context.Context) error {
	items := a.queue.Snapshot()
	if len(items) == 0 {
		_, _ = printlnFn("queue empty")
		return nil
	}
	for _, item := range items {
		_, _ = printlnFn(fmt.Sprintf("%-10s %3.0f%%  %s", item.Status, item.Progress*100, item.Key))
	}
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	_, _ = printlnFn("Logged out.")
	return nil
}
