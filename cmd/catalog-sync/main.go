package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storyhub/internal/config"
	"storyhub/internal/database"
	"storyhub/internal/importer"
	"storyhub/internal/ingestion/gutendex"
	"storyhub/internal/ingestion/otruyen"
	"storyhub/internal/progress"
	"storyhub/internal/repository"
)

func main() {
	slug := flag.String("slug", "", "import one comic by catalog slug and refresh its chapters")
	latest := flag.Int("latest", 0, "import up to N comics from the latest-updated listing")
	books := flag.Int("books", 0, "import up to N popular public-domain books")
	language := flag.String("language", "en", "book language for -books")
	refreshAll := flag.Bool("refresh-all", false, "refresh chapters for every imported comic")
	flag.Parse()

	log.Println("[CatalogSync] Starting...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Fatal] Failed to load config: %v", err)
	}

	logger := slog.Default()
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("[Fatal] Failed to connect to database: %v", err)
	}
	log.Println("[Database] Connected")

	storyRepo := repository.NewStoryRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// The one-shot sync never reads progress, so the in-process cache is fine.
	cache := progress.NewMemoryCache(progress.DefaultCacheCapacity)
	store := progress.NewStore(cache, progressRepo, chapterRepo, logger)

	comicClient := otruyen.NewClient(cfg.OTruyenAPIURL)
	imp := importer.New(storyRepo, chapterRepo, store, logger)
	imp.RegisterCatalog(importer.SourceOTruyen, importer.NewOTruyenCatalog(comicClient))
	imp.SetBatchSize(cfg.ImportBatchSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[Shutdown] Received signal, stopping...")
		cancel()
	}()

	ran := false

	if *slug != "" {
		ran = true
		importComic(ctx, imp, *slug)
	}

	if *latest > 0 {
		ran = true
		importLatest(ctx, imp, comicClient, *latest)
	}

	if *books > 0 {
		ran = true
		bookClient := gutendex.NewClient(cfg.GutendexAPIURL)
		created, err := imp.ImportPopularBooks(ctx, bookClient, *language, *books)
		if err != nil {
			log.Printf("[Books] Error after %d imports: %v", created, err)
		} else {
			log.Printf("[Books] Imported %d books", created)
		}
	}

	if *refreshAll {
		ran = true
		refreshImported(ctx, imp, storyRepo)
	}

	if !ran {
		flag.Usage()
		os.Exit(2)
	}
	log.Println("[CatalogSync] Done")
}

func importComic(ctx context.Context, imp *importer.Importer, slug string) {
	ref := importer.SourceRef{Source: importer.SourceOTruyen, Slug: slug}
	story, created, err := imp.ImportWork(ctx, ref)
	if err != nil {
		log.Printf("[Import] %s failed: %v", slug, err)
		return
	}
	newUnits, err := imp.RefreshUnits(ctx, story)
	if err != nil {
		log.Printf("[Refresh] %s failed after %d chapters: %v", slug, newUnits, err)
		return
	}
	log.Printf("[Import] %s: story_id=%d created=%v new_chapters=%d", slug, story.ID, created, newUnits)
}

func importLatest(ctx context.Context, imp *importer.Importer, client *otruyen.Client, limit int) {
	items, err := client.Latest(ctx)
	if err != nil {
		log.Printf("[Latest] Listing failed: %v", err)
		return
	}
	if len(items) > limit {
		items = items[:limit]
	}
	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		importComic(ctx, imp, item.Slug)
	}
}

func refreshImported(ctx context.Context, imp *importer.Importer, stories repository.StoryRepository) {
	page := 1
	for {
		if ctx.Err() != nil {
			return
		}
		batch, _, err := stories.List(ctx, page, 100)
		if err != nil {
			log.Printf("[RefreshAll] Listing page %d failed: %v", page, err)
			return
		}
		if len(batch) == 0 {
			return
		}
		for i := range batch {
			story := &batch[i]
			if !story.Imported() {
				continue
			}
			newUnits, err := imp.RefreshUnits(ctx, story)
			if err != nil {
				log.Printf("[RefreshAll] story_id=%d failed: %v", story.ID, err)
				continue
			}
			if newUnits > 0 {
				log.Printf("[RefreshAll] story_id=%d new_chapters=%d", story.ID, newUnits)
			}
		}
		page++
	}
}
