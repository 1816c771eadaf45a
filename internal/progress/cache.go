// Package progress tracks, for each reader, the unit of a work most recently
// opened, across a fast bounded cache and the authoritative reading_history
// store, and recommends a starting chapter when the reader returns.
package progress

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheCapacity matches the size of the reading-history list shown on
// the home page: the ten most recently read stories.
const DefaultCacheCapacity = 10

// Entry is a cached "last position read" for one story.
type Entry struct {
	StoryID      int64     `json:"story_id"`
	StoryTitle   string    `json:"story_title"`
	StoryCover   string    `json:"story_cover"`
	ChapterID    int64     `json:"chapter_id"`
	ChapterTitle string    `json:"chapter_title"`
	LastReadAt   time.Time `json:"last_read_at"`
}

// Cache is the fast progress tier. Implementations keep at most their
// configured capacity of entries per reader, evicting the least recently
// recorded story first. Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, readerKey string, storyID int64) (*Entry, error)
	Put(ctx context.Context, readerKey string, entry Entry) error
	Entries(ctx context.Context, readerKey string) ([]Entry, error)
	Clear(ctx context.Context, readerKey string) error
}

// MemoryCache is an in-process Cache: a bounded ring per reader, most recent
// first. It backs anonymous sessions and tests; each Put is a single
// read-modify-write under the lock, so updates within one process never race.
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	readers  map[string][]Entry
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &MemoryCache{
		capacity: capacity,
		readers:  make(map[string][]Entry),
	}
}

func (c *MemoryCache) Get(ctx context.Context, readerKey string, storyID int64) (*Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.readers[readerKey] {
		if e.StoryID == storyID {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

// Put moves the story's entry to the front, dropping the oldest entry when
// the ring is full.
func (c *MemoryCache) Put(ctx context.Context, readerKey string, entry Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.readers[readerKey]
	ring := make([]Entry, 0, len(existing)+1)
	ring = append(ring, entry)
	for _, e := range existing {
		if e.StoryID != entry.StoryID {
			ring = append(ring, e)
		}
	}
	if len(ring) > c.capacity {
		ring = ring[:c.capacity]
	}
	c.readers[readerKey] = ring
	return nil
}

func (c *MemoryCache) Entries(ctx context.Context, readerKey string) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ring := c.readers[readerKey]
	out := make([]Entry, len(ring))
	copy(out, ring)
	return out, nil
}

func (c *MemoryCache) Clear(ctx context.Context, readerKey string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.readers, readerKey)
	return nil
}
