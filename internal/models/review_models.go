package models

// Review is one user review row as delivered by the dataset loader.
type Review struct {
	MovieID      string `json:"movie_id"`
	ReviewTitle  string `json:"review_title"`
	ReviewText   string `json:"review_text"`
	ReviewRating int    `json:"review_rating"`
}

// Movie is catalog metadata for a title. It is passed through to the presentation
// layer untouched.
type Movie struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Rating    float64 `json:"rating"`
	Genre     string  `json:"genre"`
	Year      int     `json:"year"`
	PosterURL string  `json:"poster_url,omitempty"`
}
