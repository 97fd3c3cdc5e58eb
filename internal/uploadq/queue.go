// Package uploadq provides the FIFO upload queue: enqueued files are
// uploaded strictly one at a time by a single background loop, each item
// reporting fractional progress and ending in a terminal success or error
// state. A slow upload blocks the items behind it, nothing else.
package uploadq

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Status is the lifecycle state of one queue item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// Item is one enqueued upload. Status, Progress and Err are owned by the
// queue loop; read them after Done is closed, or via Snapshot.
type Item struct {
	ID       string
	Key      string
	Data     []byte
	Status   Status
	Progress float64
	Err      error

	// Done is closed when the item reaches a terminal state.
	Done chan struct{}
}

// UploadFunc performs a single upload, invoking progress with values in
// [0,1] as the transfer advances.
type UploadFunc func(ctx context.Context, key string, data []byte, progress func(float64)) error

// Queue serializes uploads. The processing loop starts on the first Enqueue
// and exits when the queue drains; a later Enqueue starts it again.
type Queue struct {
	mu      sync.Mutex
	items   []*Item
	upload  UploadFunc
	running bool
}

func New(upload UploadFunc) *Queue {
	return &Queue{upload: upload}
}

// Enqueue adds a file to the back of the queue and starts the loop if idle.
func (q *Queue) Enqueue(ctx context.Context, key string, data []byte) *Item {
	item := &Item{
		ID:     uuid.NewString(),
		Key:    key,
		Data:   data,
		Status: StatusPending,
		Done:   make(chan struct{}),
	}

	q.mu.Lock()
	q.items = append(q.items, item)
	start := !q.running
	if start {
		q.running = true
	}
	q.mu.Unlock()

	if start {
		go q.process(ctx)
	}
	return item
}

// process dequeues pending items one at a time. Success and error are both
// terminal for an item; the loop always moves on to the next.
func (q *Queue) process(ctx context.Context) {
	for {
		item := q.nextPending()
		if item == nil {
			return
		}

		q.setStatus(item, StatusUploading, nil)
		err := q.upload(ctx, item.Key, item.Data, func(p float64) {
			q.mu.Lock()
			item.Progress = p
			q.mu.Unlock()
		})
		if err != nil {
			q.setStatus(item, StatusError, err)
		} else {
			q.mu.Lock()
			item.Progress = 1
			q.mu.Unlock()
			q.setStatus(item, StatusSuccess, nil)
		}
		close(item.Done)
	}
}

// nextPending returns the oldest pending item. When nothing is pending it
// marks the loop stopped under the same lock, so an Enqueue racing with the
// drain either hands its item to this loop or observes running == false and
// starts a fresh one.
func (q *Queue) nextPending() *Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, item := range q.items {
		if item.Status == StatusPending {
			return item
		}
	}
	q.running = false
	return nil
}

func (q *Queue) setStatus(item *Item, s Status, err error) {
	q.mu.Lock()
	item.Status = s
	item.Err = err
	q.mu.Unlock()
}

// Snapshot returns a copy of the queue contents for display.
func (q *Queue) Snapshot() []Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Item, 0, len(q.items))
	for _, item := range q.items {
		out = append(out, Item{
			ID:       item.ID,
			Key:      item.Key,
			Status:   item.Status,
			Progress: item.Progress,
			Err:      item.Err,
		})
	}
	return out
}

// Clear drops finished items, keeping pending and in-flight ones.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, item := range q.items {
		if item.Status == StatusPending || item.Status == StatusUploading {
			kept = append(kept, item)
		}
	}
	q.items = kept
}
