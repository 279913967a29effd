package models

import "time"

// RecItem is a recommended movie expanded for display.
type RecItem struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title,omitempty"`
	IMDb    string `json:"imdb,omitempty"`
}

// Recommendation is the API envelope around an ordered id list.
type Recommendation struct {
	Recommender string    `json:"recommender"`
	Subject     string    `json:"subject"`
	MovieIDs    []int     `json:"movieIds"`
	Items       []RecItem `json:"items,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}
