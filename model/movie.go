package model

type Movie struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Rating      float64  `json:"rating"`
	Duration    string   `json:"duration"`
	Genre       string   `json:"genre"`
	Language    string   `json:"language"`
	PosterPath  string   `json:"posterPath"`
	ReleaseDate string   `json:"releaseDate"`
	Overview    string   `json:"overview"`
	Cast        []string `json:"cast"`
	Director    string   `json:"director"`
	TrailerUrl  string   `json:"trailerUrl"`
}
