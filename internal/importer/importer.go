// Package importer materializes externally cataloged works as local stories
// and chapters, without creating duplicates on repeat import, and keeps the
// chapter list current as the catalog grows.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"storyhub/internal/models"
	"storyhub/internal/progress"
	"storyhub/internal/repository"
)

// DefaultBatchSize bounds how many chapter creations run concurrently.
// Batches execute sequentially; requests inside a batch run in parallel.
const DefaultBatchSize = 10

// SourceRef identifies a work inside one external catalog. Slug (not title)
// is the dedup key: titles are not unique within or across catalogs.
type SourceRef struct {
	Source string
	Slug   string
}

// WorkMetadata is a catalog's view of a work, normalized across sources.
type WorkMetadata struct {
	ExternalID  string
	Slug        string
	Title       string
	Author      string
	Description string // may carry markup, stripped before persisting
	CoverURL    string
	Completed   bool
	Units       []UnitMetadata
}

// UnitMetadata is one chapter as listed by the catalog. ExternalID is the
// reference later used to fetch the chapter's page images, and the identity
// units are deduplicated on.
type UnitMetadata struct {
	ExternalID string
	Title      string
	Order      float64
}

// Catalog fetches a work's metadata and unit list from one external source.
type Catalog interface {
	FetchWork(ctx context.Context, slug string) (*WorkMetadata, error)
}

// Importer pulls works from registered catalogs into the local store.
type Importer struct {
	catalogs  map[string]Catalog
	stories   repository.StoryRepository
	chapters  repository.ChapterRepository
	progress  *progress.Store
	batchSize int
	logger    *slog.Logger
}

func New(stories repository.StoryRepository, chapters repository.ChapterRepository, progressStore *progress.Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		catalogs:  make(map[string]Catalog),
		stories:   stories,
		chapters:  chapters,
		progress:  progressStore,
		batchSize: DefaultBatchSize,
		logger:    logger,
	}
}

// RegisterCatalog wires a source name to its catalog client.
func (imp *Importer) RegisterCatalog(source string, catalog Catalog) {
	imp.catalogs[source] = catalog
}

// SetBatchSize overrides the chapter-creation batch size.
func (imp *Importer) SetBatchSize(n int) {
	if n > 0 {
		imp.batchSize = n
	}
}

var markupPattern = regexp.MustCompile(`<[^>]*>`)

func stripMarkup(s string) string {
	return strings.TrimSpace(markupPattern.ReplaceAllString(s, ""))
}

// ImportWork materializes a local story for ref. If a story with the same
// (source, slug) already exists it is returned unchanged and created is
// false; use RefreshUnits to pick up new chapters. A fresh import fetches
// catalog metadata, validates the required fields and creates the story;
// either the complete story exists afterwards or nothing does.
func (imp *Importer) ImportWork(ctx context.Context, ref SourceRef) (story *models.Story, created bool, err error) {
	catalog, ok := imp.catalogs[ref.Source]
	if !ok {
		return nil, false, &ImportError{Source: ref.Source, Slug: ref.Slug, Reason: "unknown catalog source"}
	}

	existing, err := imp.stories.FindBySourceRef(ctx, ref.Source, ref.Slug)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup %s/%s: %w", ref.Source, ref.Slug, err)
	}

	meta, err := catalog.FetchWork(ctx, ref.Slug)
	if err != nil {
		return nil, false, &ImportError{Source: ref.Source, Slug: ref.Slug, Reason: "catalog fetch failed", Err: err}
	}
	if meta.Title == "" || meta.Author == "" || meta.CoverURL == "" || meta.ExternalID == "" {
		return nil, false, &ImportError{Source: ref.Source, Slug: ref.Slug, Reason: "catalog response missing required fields"}
	}

	status := models.StoryStatusOngoing
	if meta.Completed {
		status = models.StoryStatusCompleted
	}

	source := ref.Source
	externalID := meta.ExternalID
	slug := ref.Slug
	story = &models.Story{
		Title:       meta.Title,
		Author:      meta.Author,
		Status:      status,
		Type:        models.StoryTypeComic,
		Description: stripMarkup(meta.Description),
		CoverURL:    meta.CoverURL,
		Source:      &source,
		ExternalID:  &externalID,
		Slug:        &slug,
	}
	if err := imp.stories.Create(ctx, story); err != nil {
		return nil, false, fmt.Errorf("create story %s/%s: %w", ref.Source, ref.Slug, err)
	}

	imp.logger.Info("work_imported",
		"source", ref.Source,
		"slug", ref.Slug,
		"story_id", story.ID,
		"title", story.Title,
	)
	return story, true, nil
}

// RefreshUnits fetches the current chapter list from the story's catalog and
// creates only the chapters not already present, keyed by external ID. It
// returns the number of chapters created. An empty catalog listing is not an
// error; existing chapters are never touched.
func (imp *Importer) RefreshUnits(ctx context.Context, story *models.Story) (int, error) {
	if !story.Imported() || story.Slug == nil {
		return 0, fmt.Errorf("story %d has no catalog source", story.ID)
	}
	catalog, ok := imp.catalogs[*story.Source]
	if !ok {
		return 0, &ImportError{Source: *story.Source, Slug: *story.Slug, Reason: "unknown catalog source"}
	}

	meta, err := catalog.FetchWork(ctx, *story.Slug)
	if err != nil {
		return 0, &ImportError{Source: *story.Source, Slug: *story.Slug, Reason: "catalog fetch failed", Err: err}
	}
	if len(meta.Units) == 0 {
		return 0, nil
	}

	existing, err := imp.chapters.ExternalIDsByStory(ctx, story.ID)
	if err != nil {
		return 0, fmt.Errorf("list existing chapters for story %d: %w", story.ID, err)
	}

	// Set difference in catalog order, guarding against duplicate listings.
	seen := make(map[string]struct{}, len(meta.Units))
	var missing []UnitMetadata
	for _, unit := range meta.Units {
		if unit.ExternalID == "" {
			continue
		}
		if _, ok := existing[unit.ExternalID]; ok {
			continue
		}
		if _, ok := seen[unit.ExternalID]; ok {
			continue
		}
		seen[unit.ExternalID] = struct{}{}
		missing = append(missing, unit)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	var createdCount atomic.Int64
	for _, batch := range chunks(missing, imp.batchSize) {
		g, gctx := errgroup.WithContext(ctx)
		for _, unit := range batch {
			g.Go(func() error {
				externalID := unit.ExternalID
				chapter := &models.Chapter{
					StoryID:    story.ID,
					Title:      unit.Title,
					Order:      unit.Order,
					Content:    "",
					ExternalID: &externalID,
					Source:     story.Source,
				}
				if err := imp.chapters.Create(gctx, chapter); err != nil {
					return fmt.Errorf("create chapter %s: %w", externalID, err)
				}
				createdCount.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// Chapters created so far stay; a later refresh fills the rest.
			return int(createdCount.Load()), err
		}
	}

	now := time.Now()
	story.SyncedAt = &now
	if meta.Completed && story.Status != models.StoryStatusCompleted {
		story.Status = models.StoryStatusCompleted
	}
	if err := imp.stories.Update(ctx, story); err != nil {
		imp.logger.Warn("story_sync_stamp_failed", "story_id", story.ID, "error", err)
	}

	imp.logger.Info("units_refreshed",
		"story_id", story.ID,
		"created", createdCount.Load(),
		"catalog_total", len(meta.Units),
	)
	return int(createdCount.Load()), nil
}

// OpenResult is what "tap once to save and start reading" produces.
// RefreshErr carries a chapter-refresh failure that did not prevent the
// story itself from being imported; Start is nil when there is nothing to
// open yet.
type OpenResult struct {
	Story      *models.Story
	Created    bool
	NewUnits   int
	Start      *models.Chapter
	RefreshErr error
}

// ImportAndOpenFirst composes ImportWork, RefreshUnits and the progress
// store's start resolution. Metadata import failures abort; a unit-refresh
// failure is surfaced in the result but keeps the imported story, since a
// later manual refresh can recover.
func (imp *Importer) ImportAndOpenFirst(ctx context.Context, reader progress.Reader, ref SourceRef) (*OpenResult, error) {
	story, created, err := imp.ImportWork(ctx, ref)
	if err != nil {
		return nil, err
	}

	result := &OpenResult{Story: story, Created: created}
	result.NewUnits, result.RefreshErr = imp.RefreshUnits(ctx, story)
	if result.RefreshErr != nil {
		imp.logger.Warn("refresh_after_import_failed",
			"story_id", story.ID,
			"error", result.RefreshErr,
		)
	}

	start, err := imp.progress.ResolveStart(ctx, reader, story)
	if err != nil && !errors.Is(err, progress.ErrNoUnits) {
		return result, err
	}
	result.Start = start
	return result, nil
}
