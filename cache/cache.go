package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cineseat-cli/model"
)

const (
	movieCacheTTL   = 30 * time.Minute
	theaterCacheTTL = 6 * time.Hour
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// LoadMovieCache returns the cached movie catalog for a region and
// whether it is still fresh.
func LoadMovieCache(region string) ([]model.Movie, bool, error) {
	path, err := cachePath(fmt.Sprintf("movies_%s.json", region))
	if err != nil {
		return nil, false, err
	}
	cached, err := loadCache[[]model.Movie](path)
	if err != nil {
		return nil, false, err
	}
	return cached.Data, time.Since(cached.UpdatedAt) <= movieCacheTTL, nil
}

func SaveMovieCache(region string, movies []model.Movie) error {
	path, err := cachePath(fmt.Sprintf("movies_%s.json", region))
	if err != nil {
		return err
	}
	return saveCache(path, movies)
}

// Theater caches are keyed by a coarse coordinate cell so nearby
// lookups share an entry.
func LoadTheaterCache(lat float64, lng float64) ([]model.Theater, bool, error) {
	path, err := cachePath(theaterCacheName(lat, lng))
	if err != nil {
		return nil, false, err
	}
	cached, err := loadCache[[]model.Theater](path)
	if err != nil {
		return nil, false, err
	}
	return cached.Data, time.Since(cached.UpdatedAt) <= theaterCacheTTL, nil
}

func SaveTheaterCache(lat float64, lng float64, theaters []model.Theater) error {
	path, err := cachePath(theaterCacheName(lat, lng))
	if err != nil {
		return err
	}
	return saveCache(path, theaters)
}

func theaterCacheName(lat float64, lng float64) string {
	return fmt.Sprintf("theaters_%.1f_%.1f.json", lat, lng)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cached cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cached, nil
		}
		return cached, err
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		return cached, err
	}
	return cached, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cached := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cineseat-cli", name), nil
}
