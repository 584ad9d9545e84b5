package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cineseat-cli/model"
)

func setTestCacheDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CACHE_HOME", root)
	return root
}

func TestMovieCache_RoundTrip(t *testing.T) {
	setTestCacheDir(t)

	movies, fresh, err := LoadMovieCache("US")
	if err != nil {
		t.Fatalf("unexpected error on empty cache: %v", err)
	}
	if fresh || len(movies) != 0 {
		t.Fatalf("expected empty stale cache, got fresh=%v movies=%d", fresh, len(movies))
	}

	saved := []model.Movie{
		{Id: "m1", Title: "Starling", Rating: 8.1},
		{Id: "m2", Title: "Midnight Run", Rating: 7.4},
	}
	if err := SaveMovieCache("US", saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	movies, fresh, err = LoadMovieCache("US")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !fresh {
		t.Fatal("just-saved cache should be fresh")
	}
	if len(movies) != 2 || movies[0].Title != "Starling" {
		t.Fatalf("unexpected cache contents: %+v", movies)
	}
}

func TestMovieCache_RegionsAreIndependent(t *testing.T) {
	setTestCacheDir(t)

	if err := SaveMovieCache("US", []model.Movie{{Id: "m1", Title: "Starling"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	movies, fresh, err := LoadMovieCache("BR")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if fresh || len(movies) != 0 {
		t.Fatalf("BR cache should be empty, got fresh=%v movies=%d", fresh, len(movies))
	}
}

func TestMovieCache_ExpiredEntryIsStale(t *testing.T) {
	setTestCacheDir(t)

	path, err := cachePath("movies_US.json")
	if err != nil {
		t.Fatalf("cachePath failed: %v", err)
	}
	stale := cacheEnvelope[[]model.Movie]{
		UpdatedAt: time.Now().Add(-time.Hour),
		Data:      []model.Movie{{Id: "m1", Title: "Starling"}},
	}
	payload, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	movies, fresh, err := LoadMovieCache("US")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if fresh {
		t.Fatal("hour-old movie cache should be stale")
	}
	if len(movies) != 1 {
		t.Fatalf("stale data should still be returned, got %d movies", len(movies))
	}
}

func TestTheaterCache_RoundTrip(t *testing.T) {
	setTestCacheDir(t)

	saved := []model.Theater{
		{Id: "t1", Name: "Grand Orpheum", Distance: "2.4 km"},
	}
	if err := SaveTheaterCache(40.7128, -74.0060, saved); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	theaters, fresh, err := LoadTheaterCache(40.7128, -74.0060)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !fresh || len(theaters) != 1 || theaters[0].Name != "Grand Orpheum" {
		t.Fatalf("unexpected cache contents: fresh=%v %+v", fresh, theaters)
	}
}

func TestTheaterCache_NearbyCoordinatesShareCell(t *testing.T) {
	setTestCacheDir(t)

	if err := SaveTheaterCache(40.71, -74.01, []model.Theater{{Id: "t1", Name: "Grand Orpheum"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// rounds to the same tenth-of-a-degree cell
	theaters, fresh, err := LoadTheaterCache(40.74, -74.04)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !fresh || len(theaters) != 1 {
		t.Fatalf("nearby lookup should hit the same cell, got fresh=%v theaters=%d", fresh, len(theaters))
	}
}

func TestLoadCache_CorruptFile(t *testing.T) {
	setTestCacheDir(t)

	path, err := cachePath("movies_US.json")
	if err != nil {
		t.Fatalf("cachePath failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, _, err := LoadMovieCache("US"); err == nil {
		t.Fatal("expected error for corrupt cache file")
	}
}
