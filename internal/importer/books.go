package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"storyhub/internal/ingestion/gutendex"
	"storyhub/internal/models"
)

// SourceGutendex tags prose works imported from the Gutendex book catalog.
const SourceGutendex = "gutendex"

// BookCatalog is the prose-book counterpart of Catalog. Books carry no unit
// list; each import creates a single chapter pointing at the source text.
type BookCatalog interface {
	PopularBooks(ctx context.Context, language string) ([]gutendex.Book, error)
}

// ImportPopularBooks pulls up to limit popular books for a language into the
// local store as completed text works, skipping books without a cover and
// books already imported. Returns how many works were created.
func (imp *Importer) ImportPopularBooks(ctx context.Context, catalog BookCatalog, language string, limit int) (int, error) {
	books, err := catalog.PopularBooks(ctx, language)
	if err != nil {
		return 0, &ImportError{Source: SourceGutendex, Reason: "catalog fetch failed", Err: err}
	}

	created := 0
	for _, book := range books {
		if created >= limit {
			break
		}
		if book.CoverURL() == "" || book.Title == "" {
			continue
		}

		slug := strconv.Itoa(book.ID)
		_, err := imp.stories.FindBySourceRef(ctx, SourceGutendex, slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("lookup %s/%s: %w", SourceGutendex, slug, err)
		}

		author := "Unknown"
		if len(book.Authors) > 0 {
			// Gutendex lists authors as "Last, First".
			author = strings.ReplaceAll(book.Authors[0].Name, ", ", " ")
		}

		source := SourceGutendex
		externalID := slug
		storySlug := slug
		story := &models.Story{
			Title:       book.Title,
			Author:      author,
			Status:      models.StoryStatusCompleted,
			Type:        models.StoryTypeText,
			Description: fmt.Sprintf("A classic imported from Project Gutenberg. Downloads: %d.", book.DownloadCount),
			CoverURL:    book.CoverURL(),
			Source:      &source,
			ExternalID:  &externalID,
			Slug:        &storySlug,
		}
		if err := imp.stories.Create(ctx, story); err != nil {
			return created, fmt.Errorf("create story %s/%s: %w", SourceGutendex, slug, err)
		}

		content := "The full text of this work is not mirrored locally."
		if textURL := book.TextURL(); textURL != "" {
			content = fmt.Sprintf("A classic work from Project Gutenberg.\n\nRead the full text at: %s", textURL)
		}
		chapter := &models.Chapter{
			StoryID: story.ID,
			Title:   "Chapter 1",
			Order:   1,
			Content: content,
		}
		if err := imp.chapters.Create(ctx, chapter); err != nil {
			return created, fmt.Errorf("create chapter for story %d: %w", story.ID, err)
		}
		created++
	}

	imp.logger.Info("books_imported", "language", language, "created", created)
	return created, nil
}
