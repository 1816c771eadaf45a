package otruyen

// ComicListResponse wraps list endpoints (search, latest).
type ComicListResponse struct {
	Status string `json:"status"`
	Data   struct {
		Items []ComicSummary `json:"items"`
	} `json:"data"`
}

type ComicSummary struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Status   string `json:"status"`
	ThumbURL string `json:"thumb_url"`
}

// ComicDetailResponse wraps the per-slug detail endpoint.
type ComicDetailResponse struct {
	Status string `json:"status"`
	Data   struct {
		Item ComicDetail `json:"item"`
	} `json:"data"`
}

type ComicDetail struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Author   []string   `json:"author"`
	Content  string     `json:"content"` // HTML description
	Status   string     `json:"status"`  // "ongoing" or "completed"
	ThumbURL string     `json:"thumb_url"`
	Category []Category `json:"category"`
	Chapters []Server   `json:"chapters"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Server groups a comic's chapters by hosting server. The first server's
// data is the canonical chapter list.
type Server struct {
	ServerName string        `json:"server_name"`
	ServerData []ChapterData `json:"server_data"`
}

type ChapterData struct {
	ChapterName  string `json:"chapter_name"`  // numeric string, e.g. "12.5"
	ChapterTitle string `json:"chapter_title"` // optional subtitle
	Filename     string `json:"filename"`
	// ChapterAPIData is the absolute URL of the page-image endpoint for this
	// chapter. It doubles as the chapter's external identity.
	ChapterAPIData string `json:"chapter_api_data"`
}

// ChapterPagesResponse is returned by the URL in ChapterAPIData.
type ChapterPagesResponse struct {
	Status string `json:"status"`
	Data   struct {
		DomainCDN string      `json:"domain_cdn"`
		Item      ChapterItem `json:"item"`
	} `json:"data"`
}

type ChapterItem struct {
	ChapterName  string `json:"chapter_name"`
	ChapterPath  string `json:"chapter_path"`
	ChapterImage []struct {
		ImagePage int    `json:"image_page"`
		ImageFile string `json:"image_file"`
	} `json:"chapter_image"`
}

// Page is one resolved comic page image.
type Page struct {
	Page int    `json:"page"`
	URL  string `json:"url"`
}
