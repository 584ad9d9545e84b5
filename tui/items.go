package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"cineseat-cli/model"
)

type movieItem struct {
	movie model.Movie
}

func (m movieItem) Title() string {
	if m.movie.Rating > 0 {
		return fmt.Sprintf("%s • %.1f", m.movie.Title, m.movie.Rating)
	}
	return m.movie.Title
}

func (m movieItem) Description() string {
	parts := []string{}
	if m.movie.Genre != "" {
		parts = append(parts, m.movie.Genre)
	}
	if m.movie.Duration != "" {
		parts = append(parts, m.movie.Duration)
	}
	if m.movie.ReleaseDate != "" {
		parts = append(parts, m.movie.ReleaseDate)
	}
	return strings.Join(parts, " • ")
}

func (m movieItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{m.movie.Title, m.movie.Genre, m.movie.Director}, " "))
}

func buildMovieItems(movies []model.Movie) []list.Item {
	items := make([]list.Item, 0, len(movies))
	for _, movie := range movies {
		items = append(items, movieItem{movie: movie})
	}
	sort.Slice(items, func(i, j int) bool {
		left := items[i].(movieItem).movie
		right := items[j].(movieItem).movie
		if left.Rating != right.Rating {
			return left.Rating > right.Rating
		}
		return strings.ToLower(left.Title) < strings.ToLower(right.Title)
	})
	return items
}

type theaterItem struct {
	theater model.Theater
}

func (t theaterItem) Title() string {
	if t.theater.Distance != "" {
		return fmt.Sprintf("%s • %s", t.theater.Name, t.theater.Distance)
	}
	return t.theater.Name
}

func (t theaterItem) Description() string {
	parts := []string{}
	if t.theater.Location != "" {
		parts = append(parts, t.theater.Location)
	}
	if len(t.theater.Amenities) > 0 {
		parts = append(parts, strings.Join(t.theater.Amenities, ", "))
	}
	parts = append(parts, fmt.Sprintf("%d showtimes", len(t.theater.Showtimes)))
	return strings.Join(parts, " • ")
}

func (t theaterItem) FilterValue() string {
	return strings.ToLower(strings.Join([]string{t.theater.Name, t.theater.Location}, " "))
}

func buildTheaterItems(theaters []model.Theater) []list.Item {
	items := make([]list.Item, 0, len(theaters))
	for _, theater := range theaters {
		items = append(items, theaterItem{theater: theater})
	}
	sort.Slice(items, func(i, j int) bool {
		left := items[i].(theaterItem).theater.Name
		right := items[j].(theaterItem).theater.Name
		return strings.ToLower(left) < strings.ToLower(right)
	})
	return items
}

type showtimeItem struct {
	showtime model.Showtime
}

func (s showtimeItem) Title() string {
	return fmt.Sprintf("%s • %s", s.showtime.Time, s.showtime.Format)
}

func (s showtimeItem) Description() string {
	return fmt.Sprintf("From %d • %d seats left", s.showtime.Price, s.showtime.AvailableSeats)
}

func (s showtimeItem) FilterValue() string {
	return strings.ToLower(s.showtime.Time + " " + s.showtime.Format)
}

func buildShowtimeItems(showtimes []model.Showtime) []list.Item {
	items := make([]list.Item, 0, len(showtimes))
	for _, showtime := range showtimes {
		items = append(items, showtimeItem{showtime: showtime})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].(showtimeItem).showtime.Time < items[j].(showtimeItem).showtime.Time
	})
	return items
}
