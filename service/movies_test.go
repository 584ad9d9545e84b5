package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL
	client.maxAttempts = 1

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL
	client.maxAttempts = 3
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/bad-request", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestGetNowPlaying_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/now-playing" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("region") != "US" || r.URL.Query().Get("page") != "1" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "page": 1,
  "results": [
    {
      "id": "m1",
      "title": "Starling",
      "vote_average": 8.7,
      "runtime": "2h 31m",
      "genres": "Sci-Fi",
      "original_language": "en",
      "poster_path": "/posters/starling.jpg",
      "release_date": "2026-08-21",
      "overview": "First contact from the trench.",
      "cast": "Keiko Tanaka, Ibrahim Diallo , ",
      "director": "A. Petrov",
      "trailer_url": "https://video.example.com/t/starling"
    }
  ]
}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL

	movies, err := client.GetNowPlaying(context.Background(), "US", 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}

	movie := movies[0]
	if movie.Id != "m1" || movie.Title != "Starling" || movie.Rating != 8.7 {
		t.Fatalf("unexpected movie: %+v", movie)
	}
	if len(movie.Cast) != 2 || movie.Cast[0] != "Keiko Tanaka" || movie.Cast[1] != "Ibrahim Diallo" {
		t.Fatalf("cast not split and trimmed: %v", movie.Cast)
	}
}

func TestGetNowPlaying_RegionRequired(t *testing.T) {
	client := NewClient(nil)
	if _, err := client.GetNowPlaying(context.Background(), "  ", 1); err == nil {
		t.Fatal("expected error for blank region")
	}
}

func TestGetNowPlaying_EmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page": 1, "results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL

	_, err := client.GetNowPlaying(context.Background(), "US", 1)
	if err == nil || err.Error() != "no movies found" {
		t.Fatalf("expected no movies found, got %v", err)
	}
}

func TestIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nothing here"))
	}))
	defer server.Close()

	client := NewClient(server.Client())
	client.movieURL = server.URL

	_, err := client.GetNowPlaying(context.Background(), "US", 1)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if IsNotFound(context.Canceled) {
		t.Fatal("plain errors must not report as not found")
	}
}
