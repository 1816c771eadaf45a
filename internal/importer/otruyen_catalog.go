package importer

import (
	"context"
	"fmt"
	"strconv"

	"storyhub/internal/ingestion/otruyen"
)

// SourceOTruyen is the source tag stamped on works imported from the otruyen
// comic catalog.
const SourceOTruyen = "otruyen"

// OTruyenCatalog adapts the otruyen client to the Catalog interface.
type OTruyenCatalog struct {
	client *otruyen.Client
}

func NewOTruyenCatalog(client *otruyen.Client) *OTruyenCatalog {
	return &OTruyenCatalog{client: client}
}

func (c *OTruyenCatalog) FetchWork(ctx context.Context, slug string) (*WorkMetadata, error) {
	detail, err := c.client.GetComic(ctx, slug)
	if err != nil {
		return nil, err
	}

	meta := &WorkMetadata{
		ExternalID:  detail.ID,
		Slug:        detail.Slug,
		Title:       detail.Name,
		Description: detail.Content,
		CoverURL:    c.client.CoverURL(detail.ThumbURL),
		Completed:   detail.Status == "completed",
	}
	if len(detail.Author) > 0 && detail.Author[0] != "" {
		meta.Author = detail.Author[0]
	} else {
		meta.Author = "Unknown"
	}

	// The first server's listing is canonical; page images are fetched from
	// ChapterAPIData at read time, never stored locally.
	if len(detail.Chapters) > 0 {
		serverData := detail.Chapters[0].ServerData
		meta.Units = make([]UnitMetadata, 0, len(serverData))
		for i, chap := range serverData {
			order, err := strconv.ParseFloat(chap.ChapterName, 64)
			if err != nil {
				order = float64(i + 1)
			}
			title := fmt.Sprintf("Chapter %s", chap.ChapterName)
			if chap.ChapterTitle != "" {
				title += ": " + chap.ChapterTitle
			}
			meta.Units = append(meta.Units, UnitMetadata{
				ExternalID: chap.ChapterAPIData,
				Title:      title,
				Order:      order,
			})
		}
	}
	return meta, nil
}
