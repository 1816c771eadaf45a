package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryFor(storyID int64, readAt time.Time) Entry {
	return Entry{
		StoryID:      storyID,
		StoryTitle:   fmt.Sprintf("Story %d", storyID),
		ChapterID:    storyID * 100,
		ChapterTitle: "Chapter 1",
		LastReadAt:   readAt,
	}
}

func TestMemoryCache_PutAndGet(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "local", entryFor(1, time.Now())))

	entry, err := cache.Get(ctx, "local", 1)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(100), entry.ChapterID)
}

func TestMemoryCache_MissReturnsNil(t *testing.T) {
	cache := NewMemoryCache(10)

	entry, err := cache.Get(context.Background(), "local", 42)
	assert.NoError(t, err)
	assert.Nil(t, entry)
}

func TestMemoryCache_EvictsOldestBeyondCapacity(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()
	base := time.Now()

	for i := int64(1); i <= 11; i++ {
		require.NoError(t, cache.Put(ctx, "local", entryFor(i, base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := cache.Entries(ctx, "local")
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	// Story 1 was the oldest and is gone; story 11 is at the front.
	gone, err := cache.Get(ctx, "local", 1)
	assert.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, int64(11), entries[0].StoryID)
}

func TestMemoryCache_RereadMovesToFront(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, cache.Put(ctx, "local", entryFor(1, base)))
	require.NoError(t, cache.Put(ctx, "local", entryFor(2, base.Add(time.Second))))
	require.NoError(t, cache.Put(ctx, "local", entryFor(1, base.Add(2*time.Second))))

	entries, err := cache.Entries(ctx, "local")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].StoryID)
	assert.Equal(t, int64(2), entries[1].StoryID)
}

func TestMemoryCache_RereadUpdatesChapterInPlace(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()

	first := entryFor(1, time.Now())
	require.NoError(t, cache.Put(ctx, "local", first))

	second := first
	second.ChapterID = 105
	second.ChapterTitle = "Chapter 5"
	require.NoError(t, cache.Put(ctx, "local", second))

	entries, err := cache.Entries(ctx, "local")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(105), entries[0].ChapterID)
}

func TestMemoryCache_PartitionsAreIndependent(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "local", entryFor(1, time.Now())))
	require.NoError(t, cache.Put(ctx, "user-a", entryFor(2, time.Now())))

	entry, err := cache.Get(ctx, "user-a", 1)
	assert.NoError(t, err)
	assert.Nil(t, entry)

	entries, err := cache.Entries(ctx, "local")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "local", entryFor(1, time.Now())))
	require.NoError(t, cache.Clear(ctx, "local"))

	entries, err := cache.Entries(ctx, "local")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
