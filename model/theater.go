package model

type Theater struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Distance  string     `json:"distance"`
	Amenities []string   `json:"amenities"`
	Showtimes []Showtime `json:"showtimes"`
}

type Showtime struct {
	Id             string `json:"id"`
	Time           string `json:"time"`
	Format         string `json:"format"`
	Price          int64  `json:"price"`
	AvailableSeats int    `json:"availableSeats"`
}
