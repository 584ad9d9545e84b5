package service

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"cineseat-cli/model"
)

// Fallback data masks remote failures: the storefront degrades to a
// bundled catalog instead of surfacing a hard error.

var fallbackMovies = []model.Movie{
	{
		Id:          "fb-1",
		Title:       "Midnight Circuit",
		Rating:      8.1,
		Duration:    "2h 14m",
		Genre:       "Action, Thriller",
		Language:    "en",
		PosterPath:  "/posters/midnight-circuit.jpg",
		ReleaseDate: "2026-07-17",
		Overview:    "A getaway driver takes one last job the night the city's grid goes dark.",
		Cast:        []string{"Dana Reyes", "Omar Blake", "June Okafor"},
		Director:    "L. Marchetti",
		TrailerUrl:  "https://video.cineseat.app/t/midnight-circuit",
	},
	{
		Id:          "fb-2",
		Title:       "The Cartographer's Daughter",
		Rating:      7.6,
		Duration:    "1h 58m",
		Genre:       "Drama",
		Language:    "en",
		PosterPath:  "/posters/cartographers-daughter.jpg",
		ReleaseDate: "2026-06-05",
		Overview:    "An estranged daughter retraces her father's unfinished map of a vanishing coastline.",
		Cast:        []string{"Mira Chandran", "Paul Esposito"},
		Director:    "H. Lindqvist",
		TrailerUrl:  "https://video.cineseat.app/t/cartographers-daughter",
	},
	{
		Id:          "fb-3",
		Title:       "Starling",
		Rating:      8.7,
		Duration:    "2h 31m",
		Genre:       "Sci-Fi",
		Language:    "en",
		PosterPath:  "/posters/starling.jpg",
		ReleaseDate: "2026-08-21",
		Overview:    "First contact arrives not from the sky but from the bottom of the Mariana Trench.",
		Cast:        []string{"Keiko Tanaka", "Ibrahim Diallo", "Sofia Marin"},
		Director:    "A. Petrov",
		TrailerUrl:  "https://video.cineseat.app/t/starling",
	},
	{
		Id:          "fb-4",
		Title:       "Second Service",
		Rating:      6.9,
		Duration:    "1h 43m",
		Genre:       "Comedy, Sport",
		Language:    "en",
		PosterPath:  "/posters/second-service.jpg",
		ReleaseDate: "2026-05-29",
		Overview:    "A washed-up tennis pro coaches his rival's kid through the junior open.",
		Cast:        []string{"Gordo Milan", "Tess Whitfield"},
		Director:    "R. Campos",
		TrailerUrl:  "https://video.cineseat.app/t/second-service",
	},
	{
		Id:          "fb-5",
		Title:       "Hollow Crown",
		Rating:      7.9,
		Duration:    "2h 6m",
		Genre:       "Mystery",
		Language:    "en",
		PosterPath:  "/posters/hollow-crown.jpg",
		ReleaseDate: "2026-07-03",
		Overview:    "A chess prodigy investigates the disappearance of her grandmaster mentor mid-tournament.",
		Cast:        []string{"Anya Kovacs", "Dev Mehta", "Claire Fontaine"},
		Director:    "M. Osei",
		TrailerUrl:  "https://video.cineseat.app/t/hollow-crown",
	},
}

// FallbackMovies returns the bundled movie catalog.
func FallbackMovies() []model.Movie {
	movies := make([]model.Movie, len(fallbackMovies))
	copy(movies, fallbackMovies)
	return movies
}

var fallbackTheaterNames = []string{
	"Grand Orpheum",
	"CineSeat Plaza",
	"Riverside Multiplex",
	"Stellar Screens",
	"The Marquee House",
}

var fallbackAmenities = [][]string{
	{"IMAX", "Dolby Atmos", "Parking"},
	{"Recliners", "Snack Bar"},
	{"4K Laser", "Parking", "Wheelchair Access"},
	{"Dolby Atmos", "Lounge"},
	{"Snack Bar", "Wheelchair Access"},
}

var fallbackShowtimeSlots = []string{"10:30", "13:15", "16:00", "18:45", "21:30"}

func fallbackShowtimeFormat(slot int) string {
	if slot%2 == 1 {
		return "IMAX"
	}
	return "2D"
}

func fallbackShowtimePrice(format string) int64 {
	if format == "IMAX" {
		return 260
	}
	return 200
}

// FallbackTheaters synthesizes theaters scattered around the given
// coordinates from a fixed name list. A seeded source reproduces the
// exact distances and availability.
func FallbackTheaters(lat float64, lng float64, rng *rand.Rand) []model.Theater {
	theaters := make([]model.Theater, 0, len(fallbackTheaterNames))
	for i, name := range fallbackTheaterNames {
		offsetKM := 0.8 + rng.Float64()*9.2

		showtimes := make([]model.Showtime, 0, len(fallbackShowtimeSlots))
		for slot, at := range fallbackShowtimeSlots {
			format := fallbackShowtimeFormat(slot)
			showtimes = append(showtimes, model.Showtime{
				Id:             uuid.NewString(),
				Time:           at,
				Format:         format,
				Price:          fallbackShowtimePrice(format),
				AvailableSeats: 40 + rng.Intn(41),
			})
		}

		theaters = append(theaters, model.Theater{
			Id:        uuid.NewString(),
			Name:      name,
			Location:  fmt.Sprintf("near %.2f, %.2f", lat, lng),
			Distance:  fmt.Sprintf("%.1f km", offsetKM),
			Amenities: fallbackAmenities[i%len(fallbackAmenities)],
			Showtimes: showtimes,
		})
	}
	return theaters
}
