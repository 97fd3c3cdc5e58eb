// Package mutate implements the multi-step mutations over the object store:
// file and folder renames, folder and bulk deletes, and folder-card reorders.
//
// The backend has no atomic rename or recursive delete, so every operation
// here is a sequence of per-key storage calls, issued one at a time. A
// mid-sequence failure leaves partial state; bulk operations continue past
// individual failures and report the count of keys actually processed, so
// callers can re-run to converge. Nothing is retried automatically.
package mutate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pouchain/docstore/internal/keys"
	"github.com/pouchain/docstore/internal/logging"
	"github.com/pouchain/docstore/internal/objstore"
	"github.com/pouchain/docstore/internal/tree"
)

// Orchestrator runs mutations against a Store. It holds no listing state of
// its own: operations that need a key set receive it explicitly, which keeps
// the staleness window visible at the call site.
type Orchestrator struct {
	store objstore.Store
	log   logging.Logger
}

func New(store objstore.Store, log logging.Logger) *Orchestrator {
	return &Orchestrator{store: store, log: log}
}

// RenameFile moves a single object: get old, put new, delete old. Returns
// common.ErrorNotFound if the source is absent. A crash between put and
// delete leaves both keys present.
func (o *Orchestrator) RenameFile(ctx context.Context, oldKey, newKey string) error {
	body, err := o.store.Get(ctx, oldKey)
	if err != nil {
		return err
	}
	if err := o.store.Put(ctx, newKey, body); err != nil {
		return fmt.Errorf("put %s: %w", newKey, err)
	}
	if err := o.store.Delete(ctx, oldKey); err != nil {
		return fmt.Errorf("delete %s: %w", oldKey, err)
	}
	return nil
}

// CreateFolder materializes an empty folder by writing its color marker and
// then the presence marker, in that order. The presence marker keeps the
// prefix alive in a backend that has no first-class folders.
func (o *Orchestrator) CreateFolder(ctx context.Context, name, color string) error {
	prefix := name + "/"
	body := &objstore.Body{Data: []byte("config"), ContentType: "text/plain"}

	colorKey := keys.MarkerKey(prefix, keys.KindColor, color)
	if err := o.store.Put(ctx, colorKey, body); err != nil {
		return fmt.Errorf("write marker %s: %w", colorKey, err)
	}
	keepKey := prefix + keys.PresenceName
	if err := o.store.Put(ctx, keepKey, &objstore.Body{ContentType: "text/plain"}); err != nil {
		return fmt.Errorf("write marker %s: %w", keepKey, err)
	}
	return nil
}

// RenameFolder rewrites every key under oldPrefix to newPrefix, following
// listing continuation cursors until exhaustion. Each object is copied then
// deleted; the count of successfully moved objects is returned. On partial
// failure the folder appears split between both prefixes until re-run.
func (o *Orchestrator) RenameFolder(ctx context.Context, oldPrefix, newPrefix string) (int, error) {
	objects, err := objstore.ListAll(ctx, o.store, oldPrefix)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", oldPrefix, err)
	}

	count := 0
	for _, obj := range objects {
		newKey := strings.Replace(obj.Key, oldPrefix, newPrefix, 1)
		if err := o.RenameFile(ctx, obj.Key, newKey); err != nil {
			return count, fmt.Errorf("move %s: %w", obj.Key, err)
		}
		count++
	}
	return count, nil
}

// DeleteFolder removes every object belonging to folder: the union of keys
// under "folder/" and the folder's own marker objects, computed from the
// given (possibly stale) listing. Per-key failures are logged and skipped;
// the number of keys actually deleted is returned. An empty folder yields 0.
func (o *Orchestrator) DeleteFolder(ctx context.Context, listing []objstore.Object, folder string) (int, error) {
	targets := folderKeys(listing, folder)

	count := 0
	for _, key := range targets {
		if err := o.store.Delete(ctx, key); err != nil {
			o.log.Error(ctx, "delete failed", "key", key, "error", err.Error())
			continue
		}
		count++
	}
	return count, nil
}

// Selection identifies one item of a bulk-delete request.
type Selection struct {
	Path     string `json:"path"`
	IsFolder bool   `json:"isFolder"`
}

// BulkDelete deletes each selected item: single keys for files, the full
// folder key union for folders. Failures are tallied past, not aborted on;
// the final success count is returned.
func (o *Orchestrator) BulkDelete(ctx context.Context, listing []objstore.Object, selection []Selection) (int, error) {
	count := 0
	for _, sel := range selection {
		if sel.IsFolder {
			n, err := o.DeleteFolder(ctx, listing, sel.Path)
			count += n
			if err != nil {
				o.log.Error(ctx, "folder delete failed", "folder", sel.Path, "error", err.Error())
			}
			continue
		}
		if err := o.store.Delete(ctx, sel.Path); err != nil {
			o.log.Error(ctx, "delete failed", "key", sel.Path, "error", err.Error())
			continue
		}
		count++
	}
	return count, nil
}

// Reorder applies a card layout change: for every folder whose row or order
// assignment moved, the superseded marker is deleted (when it was not the
// default) and the new one written. Marker values live in key names, so a
// swap is always delete-old-key then put-new-key.
func (o *Orchestrator) Reorder(ctx context.Context, placements []tree.Placement) error {
	for _, p := range placements {
		prefix := p.Name + "/"

		if p.Order != p.OldOrder {
			if err := o.swapMarker(ctx, prefix, keys.KindOrder, p.OldOrder, p.Order, tree.OrderLast); err != nil {
				return err
			}
		}
		if p.Row != p.OldRow {
			if err := o.swapMarker(ctx, prefix, keys.KindRow, p.OldRow, p.Row, tree.DefaultRow); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) swapMarker(ctx context.Context, prefix string, kind keys.Kind, oldVal, newVal, defaultVal int) error {
	if oldVal != defaultVal {
		oldKey := keys.MarkerKey(prefix, kind, strconv.Itoa(oldVal))
		if err := o.store.Delete(ctx, oldKey); err != nil {
			return fmt.Errorf("clear marker %s: %w", oldKey, err)
		}
	}
	if newVal == defaultVal {
		return nil
	}
	newKey := keys.MarkerKey(prefix, kind, strconv.Itoa(newVal))
	if err := o.store.Put(ctx, newKey, &objstore.Body{Data: []byte("config"), ContentType: "text/plain"}); err != nil {
		return fmt.Errorf("write marker %s: %w", newKey, err)
	}
	return nil
}

// folderKeys computes the deletion key set for a folder from a listing:
// everything under the folder prefix plus the folder's direct markers,
// deduplicated (markers are nested under the prefix too, but the union is
// kept explicit to survive oddly stored marker keys).
func folderKeys(listing []objstore.Object, folder string) []string {
	prefix := folder + "/"
	seen := make(map[string]struct{})
	var targets []string

	add := func(key string) {
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		targets = append(targets, key)
	}

	for _, obj := range listing {
		if strings.HasPrefix(obj.Key, prefix) {
			add(obj.Key)
		}
	}
	for _, obj := range listing {
		p := keys.Parse(obj.Key)
		if p.Folder == folder && p.Kind != keys.KindFile {
			add(obj.Key)
		}
	}
	return targets
}
