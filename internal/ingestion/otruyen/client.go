package otruyen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://otruyenapi.com/v1/api"
	defaultImageCDN = "https://otruyenapi.com/uploads/comics"

	// Be polite to the public catalog.
	rateLimit = 5
	rateBurst = 10

	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 16 * time.Second
)

// Client talks to the otruyen comic catalog with rate limiting and retry
// logic, following the same request discipline as the book catalog client.
type Client struct {
	baseURL     string
	imageCDN    string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		imageCDN:    defaultImageCDN,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search finds comics by keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]ComicSummary, error) {
	endpoint := "/tim-kiem?keyword=" + url.QueryEscape(keyword)

	var response ComicListResponse
	if err := c.doRequest(ctx, c.baseURL+endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to search comics: %w", err)
	}
	return response.Data.Items, nil
}

// Latest lists the most recently updated comics.
func (c *Client) Latest(ctx context.Context) ([]ComicSummary, error) {
	var response ComicListResponse
	if err := c.doRequest(ctx, c.baseURL+"/danh-sach/truyen-moi", &response); err != nil {
		return nil, fmt.Errorf("failed to fetch latest comics: %w", err)
	}
	return response.Data.Items, nil
}

// GetComic fetches full metadata plus the chapter listing for one comic.
func (c *Client) GetComic(ctx context.Context, slug string) (*ComicDetail, error) {
	endpoint := fmt.Sprintf("%s/truyen-tranh/%s", c.baseURL, url.PathEscape(slug))

	var response ComicDetailResponse
	if err := c.doRequest(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch comic %q: %w", slug, err)
	}
	return &response.Data.Item, nil
}

// GetChapterPages resolves a chapter's page-image list from the absolute URL
// carried in ChapterData.ChapterAPIData. Pages come back in reading order.
func (c *Client) GetChapterPages(ctx context.Context, apiURL string) ([]Page, error) {
	var response ChapterPagesResponse
	if err := c.doRequest(ctx, apiURL, &response); err != nil {
		return nil, fmt.Errorf("failed to fetch chapter pages: %w", err)
	}

	data := response.Data
	pages := make([]Page, 0, len(data.Item.ChapterImage))
	for _, img := range data.Item.ChapterImage {
		pages = append(pages, Page{
			Page: img.ImagePage,
			URL:  fmt.Sprintf("%s/%s/%s", data.DomainCDN, data.Item.ChapterPath, img.ImageFile),
		})
	}
	return pages, nil
}

// CoverURL builds the CDN URL for a catalog thumbnail reference.
func (c *Client) CoverURL(thumb string) string {
	return fmt.Sprintf("%s/%s", c.imageCDN, thumb)
}

// doRequest performs a GET with rate limiting and capped exponential retry.
func (c *Client) doRequest(ctx context.Context, fullURL string, result interface{}) error {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "StoryHub/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				log.Printf("[OTruyen] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, maxRetries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))

				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if retryDuration, perr := time.ParseDuration(retryAfter + "s"); perr == nil {
						delay = retryDuration
					}
				}

				log.Printf("[OTruyen] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, maxRetries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
