package gutendex

// BookListResponse is the paginated listing from gutendex.com/books.
type BookListResponse struct {
	Count   int    `json:"count"`
	Next    string `json:"next"`
	Results []Book `json:"results"`
}

type Book struct {
	ID            int               `json:"id"`
	Title         string            `json:"title"`
	Authors       []Author          `json:"authors"`
	Languages     []string          `json:"languages"`
	DownloadCount int               `json:"download_count"`
	Formats       map[string]string `json:"formats"` // media type -> URL
}

type Author struct {
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year"`
	DeathYear *int   `json:"death_year"`
}

// CoverURL returns the JPEG cover if the book has one.
func (b Book) CoverURL() string {
	return b.Formats["image/jpeg"]
}

// TextURL returns the plain-text content URL if available.
func (b Book) TextURL() string {
	if u, ok := b.Formats["text/plain; charset=utf-8"]; ok {
		return u
	}
	return b.Formats["text/plain"]
}
