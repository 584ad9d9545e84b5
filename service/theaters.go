package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cineseat-cli/model"
)

type showtimeRecord struct {
	Id             string `json:"id"`
	Time           string `json:"time"`
	Format         string `json:"format"`
	Price          int64  `json:"price"`
	AvailableSeats int    `json:"available_seats"`
}

type theaterRecord struct {
	Id        string           `json:"id"`
	Name      string           `json:"name"`
	Location  string           `json:"location"`
	Distance  string           `json:"distance"`
	Amenities []string         `json:"amenities"`
	Showtimes []showtimeRecord `json:"showtimes"`
}

type theatersResponse struct {
	Theaters []theaterRecord `json:"theaters"`
}

// GetTheaters fetches theaters with nested showtimes near a coordinate.
// Movie id and date are optional filters.
func (c *Client) GetTheaters(ctx context.Context, lat float64, lng float64, movieID string, date time.Time) ([]model.Theater, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%.4f", lat))
	query.Set("lng", fmt.Sprintf("%.4f", lng))
	if strings.TrimSpace(movieID) != "" {
		query.Set("movie", movieID)
	}
	if !date.IsZero() {
		query.Set("date", date.Format(time.DateOnly))
	}
	endpoint := fmt.Sprintf("%s/theaters?%s", c.theaterURL, query.Encode())

	var payload theatersResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.Theaters) == 0 {
		return nil, errors.New("no theaters found")
	}

	theaters := make([]model.Theater, 0, len(payload.Theaters))
	for _, record := range payload.Theaters {
		showtimes := make([]model.Showtime, 0, len(record.Showtimes))
		for _, st := range record.Showtimes {
			showtimes = append(showtimes, model.Showtime{
				Id:             st.Id,
				Time:           st.Time,
				Format:         st.Format,
				Price:          st.Price,
				AvailableSeats: st.AvailableSeats,
			})
		}
		theaters = append(theaters, model.Theater{
			Id:        record.Id,
			Name:      record.Name,
			Location:  record.Location,
			Distance:  record.Distance,
			Amenities: record.Amenities,
			Showtimes: showtimes,
		})
	}
	return theaters, nil
}
