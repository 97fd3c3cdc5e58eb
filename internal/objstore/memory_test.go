package objstore

import (
	"context"
	"testing"

	"github.com/pouchain/docstore/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.txt", &Body{Data: []byte("hello"), ContentType: "text/plain"}))

	body, err := store.Get(ctx, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), body.Data)
	assert.Equal(t, "text/plain", body.ContentType)

	require.NoError(t, store.Delete(ctx, "a.txt"))
	_, err = store.Get(ctx, "a.txt")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	store := NewMemoryStore()
	store.Seed("Docs/a.pdf", "Docs/b.pdf", "Other/x.txt")

	page, err := store.List(context.Background(), "Docs/", "")
	require.NoError(t, err)
	require.Len(t, page.Objects, 2)
	assert.Equal(t, "Docs/a.pdf", page.Objects[0].Key)
	assert.Equal(t, "Docs/b.pdf", page.Objects[1].Key)
	assert.False(t, page.Truncated)
}

func TestMemoryStore_Pagination(t *testing.T) {
	store := NewMemoryStore()
	store.PageSize = 2
	store.Seed("a", "b", "c", "d", "e")

	ctx := context.Background()
	page, err := store.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, page.Objects, 2)
	assert.True(t, page.Truncated)

	page, err = store.List(ctx, "", page.Cursor)
	require.NoError(t, err)
	require.Len(t, page.Objects, 2)
	assert.Equal(t, "c", page.Objects[0].Key)
	assert.True(t, page.Truncated)

	page, err = store.List(ctx, "", page.Cursor)
	require.NoError(t, err)
	require.Len(t, page.Objects, 1)
	assert.Equal(t, "e", page.Objects[0].Key)
	assert.False(t, page.Truncated)
}

func TestListAll_FollowsCursors(t *testing.T) {
	store := NewMemoryStore()
	store.PageSize = 1
	store.Seed("a", "b", "c")

	objects, err := ListAll(context.Background(), store, "")
	require.NoError(t, err)
	require.Len(t, objects, 3)
	assert.Equal(t, "a", objects[0].Key)
	assert.Equal(t, "c", objects[2].Key)
}
