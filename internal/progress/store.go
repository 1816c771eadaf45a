package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"storyhub/internal/models"
	"storyhub/internal/repository"
)

// ErrNoUnits signals that a story has no chapters to open at all.
var ErrNoUnits = errors.New("story has no chapters")

// Reader identifies who is reading. Anonymous readers only touch the cache;
// authenticated readers also get an authoritative reading_history record.
type Reader struct {
	ID            string
	Authenticated bool
}

// CacheKey is the cache partition for this reader. Anonymous sessions share
// the per-device "local" partition, mirroring browser-local history.
func (r Reader) CacheKey() string {
	if r.Authenticated && r.ID != "" {
		return r.ID
	}
	return "local"
}

// Store combines the bounded cache with the authoritative reading_history
// repository. Cache writes always happen first and independently; a remote
// failure never blocks reading.
type Store struct {
	cache    Cache
	remote   repository.ProgressRepository
	chapters repository.ChapterRepository
	logger   *slog.Logger
}

func NewStore(cache Cache, remote repository.ProgressRepository, chapters repository.ChapterRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cache:    cache,
		remote:   remote,
		chapters: chapters,
		logger:   logger,
	}
}

// RecordProgress is called every time a reader successfully opens a chapter.
// Idempotent: re-recording the same chapter only refreshes the timestamp.
func (s *Store) RecordProgress(ctx context.Context, reader Reader, story *models.Story, chapter *models.Chapter) error {
	if story == nil || chapter == nil {
		return errors.New("story and chapter are required")
	}

	now := time.Now()
	entry := Entry{
		StoryID:      story.ID,
		StoryTitle:   story.Title,
		StoryCover:   story.CoverURL,
		ChapterID:    chapter.ID,
		ChapterTitle: chapter.Title,
		LastReadAt:   now,
	}
	if err := s.cache.Put(ctx, reader.CacheKey(), entry); err != nil {
		s.logger.Error("progress_cache_put_failed",
			"reader", reader.CacheKey(),
			"story_id", story.ID,
			"error", err,
		)
	}

	if !reader.Authenticated {
		return nil
	}

	record := &models.ReadingHistory{
		UserID:       reader.ID,
		StoryID:      story.ID,
		StoryTitle:   story.Title,
		StoryCover:   story.CoverURL,
		ChapterID:    chapter.ID,
		ChapterTitle: chapter.Title,
		LastReadAt:   now,
	}
	if err := s.remote.Upsert(ctx, record); err != nil {
		// Non-fatal: the cache already holds the position.
		s.logger.Error("progress_remote_upsert_failed",
			"user_id", reader.ID,
			"story_id", story.ID,
			"error", err,
		)
	}
	return nil
}

// ResolveStart picks the chapter to open for "continue reading": the remote
// record wins for authenticated readers, then the cache entry, then the
// story's first chapter by order. It degrades instead of erroring; ErrNoUnits
// means there is nothing to open.
func (s *Store) ResolveStart(ctx context.Context, reader Reader, story *models.Story) (*models.Chapter, error) {
	if reader.Authenticated {
		record, err := s.remote.Get(ctx, reader.ID, story.ID)
		switch {
		case err == nil:
			if chapter, cerr := s.chapters.GetByID(ctx, record.ChapterID); cerr == nil {
				return chapter, nil
			}
			// Recorded chapter no longer exists; fall through.
		case !errors.Is(err, gorm.ErrRecordNotFound):
			s.logger.Warn("progress_remote_lookup_failed",
				"user_id", reader.ID,
				"story_id", story.ID,
				"error", err,
			)
		}
	}

	if entry, err := s.cache.Get(ctx, reader.CacheKey(), story.ID); err == nil && entry != nil {
		if chapter, cerr := s.chapters.GetByID(ctx, entry.ChapterID); cerr == nil {
			return chapter, nil
		}
	}

	chapter, err := s.chapters.FirstByOrder(ctx, story.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoUnits
	}
	if err != nil {
		return nil, fmt.Errorf("resolve start for story %d: %w", story.ID, err)
	}
	return chapter, nil
}

// ClearHistory deletes the reader's remote records and empties the cache.
// It returns how many remote records were deleted. If the remote listing
// never ran, the cache is left intact: for authenticated readers the remote
// store is the source of truth and a silent local wipe would lie about it.
func (s *Store) ClearHistory(ctx context.Context, reader Reader) (int, error) {
	if !reader.Authenticated {
		return 0, s.cache.Clear(ctx, reader.CacheKey())
	}

	records, err := s.remote.GetByUser(ctx, reader.ID)
	if err != nil {
		return 0, fmt.Errorf("list reading history for %s: %w", reader.ID, err)
	}

	deleted := 0
	var errs []error
	for _, record := range records {
		if derr := s.remote.Delete(ctx, record.ID); derr != nil {
			errs = append(errs, fmt.Errorf("delete history %d: %w", record.ID, derr))
			continue
		}
		deleted++
	}

	if cerr := s.cache.Clear(ctx, reader.CacheKey()); cerr != nil {
		s.logger.Error("progress_cache_clear_failed", "reader", reader.CacheKey(), "error", cerr)
	}
	return deleted, errors.Join(errs...)
}

// History returns the reader's recent positions, most recent first: the
// authoritative records for authenticated readers, the cache ring otherwise.
func (s *Store) History(ctx context.Context, reader Reader) ([]Entry, error) {
	if !reader.Authenticated {
		return s.cache.Entries(ctx, reader.CacheKey())
	}

	records, err := s.remote.GetByUser(ctx, reader.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			StoryID:      r.StoryID,
			StoryTitle:   r.StoryTitle,
			StoryCover:   r.StoryCover,
			ChapterID:    r.ChapterID,
			ChapterTitle: r.ChapterTitle,
			LastReadAt:   r.LastReadAt,
		})
	}
	return entries, nil
}
