// Package objstore models the flat object storage backing the document store:
// blobs addressed by path-like keys, with no real folder hierarchy. It defines
// the minimal Store interface implemented by the S3 backend and by an
// in-memory store used in tests.
package objstore

import "context"

// Object describes a stored blob as seen in listings.
type Object struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// Body carries the full content of an object together with the content type
// it was uploaded with, so that downloads can replay the original headers.
type Body struct {
	Data        []byte
	ContentType string
}

// Page is one page of a listing. When Truncated is true the caller must issue
// another List call with Cursor to continue the enumeration.
type Page struct {
	Objects   []Object
	Cursor    string
	Truncated bool
}

// Store is the object-storage contract used by the rest of the project.
// Implementations must treat keys as opaque strings; any folder semantics
// are layered on top by the callers.
type Store interface {
	// List returns a page of objects whose keys start with prefix.
	// An empty cursor starts a fresh enumeration.
	List(ctx context.Context, prefix string, cursor string) (*Page, error)

	// Get returns the object content, or common.ErrorNotFound if absent.
	Get(ctx context.Context, key string) (*Body, error)

	// Put stores body under key, overwriting any previous object.
	Put(ctx context.Context, key string, body *Body) error

	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ListAll drains a paginated listing, following continuation cursors until
// the store reports the enumeration is complete.
func ListAll(ctx context.Context, s Store, prefix string) ([]Object, error) {
	var objects []Object
	cursor := ""
	for {
		page, err := s.List(ctx, prefix, cursor)
		if err != nil {
			return nil, err
		}
		objects = append(objects, page.Objects...)
		if !page.Truncated {
			return objects, nil
		}
		cursor = page.Cursor
	}
}
