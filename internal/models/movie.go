package models

import "fmt"

// TagRelevance is one entry of a movie's tag vector.
type TagRelevance struct {
	TagID     int     `json:"tid" bson:"tid"`
	Relevance float64 `json:"relevance" bson:"relevance"`
}

// Movie is a document of the `movie` collection.
type Movie struct {
	MovieID   int            `json:"mid" bson:"mid"`
	IMDbID    int            `json:"imdbid" bson:"imdbid"`
	Title     string         `json:"title" bson:"title"`
	TitleFull string         `json:"titleFull,omitempty" bson:"title_full,omitempty"`
	Genres    []string       `json:"genres" bson:"genres"`
	Actors    []string       `json:"actors,omitempty" bson:"actors,omitempty"`
	Tags      []TagRelevance `json:"tags,omitempty" bson:"tags,omitempty"`
	// nil when IMDb reports N/A
	IMDbRating *float64 `json:"imdbRating,omitempty" bson:"imdb_rating,omitempty"`
	IMDbVotes  *int     `json:"imdbVotes,omitempty" bson:"imdb_votes,omitempty"`

	// memoized by the tag-overlap recommender and the batch precompute
	SimilarMovies []int `json:"similarMovies,omitempty" bson:"similar_movies,omitempty"`
}

// HasTags reports whether the movie carries a tag vector.
func (m *Movie) HasTags() bool { return len(m.Tags) > 0 }

// TagIDs returns the ids of the movie's tags.
func (m *Movie) TagIDs() []int {
	ids := make([]int, len(m.Tags))
	for i, t := range m.Tags {
		ids[i] = t.TagID
	}
	return ids
}

// DisplayTitle prefers the full title when ingestion provided one.
func (m *Movie) DisplayTitle() string {
	if m.TitleFull != "" {
		return m.TitleFull
	}
	return m.Title
}

// IMDbCode renders the numeric imdb id the way imdb.com does (tt0114709).
func (m *Movie) IMDbCode() string {
	return fmt.Sprintf("tt%07d", m.IMDbID)
}
