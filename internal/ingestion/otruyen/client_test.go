package otruyen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetComic_DecodesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/truyen-tranh/wind-breaker", r.URL.Path)
		w.Write([]byte(`{
			"status": "success",
			"data": {"item": {
				"_id": "ext-123",
				"name": "Wind Breaker",
				"slug": "wind-breaker",
				"author": ["Jo Yongseok"],
				"content": "<p>Cycling drama.</p>",
				"status": "ongoing",
				"thumb_url": "wind-breaker.jpg",
				"chapters": [{"server_name": "S1", "server_data": [
					{"chapter_name": "1", "chapter_title": "", "chapter_api_data": "https://api.example.com/ch/1"}
				]}]
			}}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	detail, err := client.GetComic(context.Background(), "wind-breaker")
	require.NoError(t, err)
	assert.Equal(t, "ext-123", detail.ID)
	require.Len(t, detail.Chapters, 1)
	require.Len(t, detail.Chapters[0].ServerData, 1)
	assert.Equal(t, "https://api.example.com/ch/1", detail.Chapters[0].ServerData[0].ChapterAPIData)
}

func TestGetChapterPages_BuildsCDNURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "success",
			"data": {
				"domain_cdn": "https://cdn.example.com",
				"item": {
					"chapter_name": "1",
					"chapter_path": "uploads/comics/wind-breaker/ch-1",
					"chapter_image": [
						{"image_page": 1, "image_file": "p1.jpg"},
						{"image_page": 2, "image_file": "p2.jpg"}
					]
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	pages, err := client.GetChapterPages(context.Background(), server.URL+"/ch/1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "https://cdn.example.com/uploads/comics/wind-breaker/ch-1/p1.jpg", pages[0].URL)
	assert.Equal(t, 2, pages[1].Page)
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status": "success", "data": {"items": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Latest(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDoRequest_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetComic(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
