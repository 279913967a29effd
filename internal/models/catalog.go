package models

// MovieRelevance links a tag to one of its movies.
type MovieRelevance struct {
	MovieID   int     `json:"mid" bson:"mid"`
	Relevance float64 `json:"relevance" bson:"relevance"`
}

// Tag is a document of the `tag` collection. Popular is the number of movies
// referencing the tag (its document frequency).
type Tag struct {
	TagID         int              `json:"tid" bson:"tid"`
	Content       string           `json:"content" bson:"content"`
	Popular       int              `json:"popular" bson:"popular"`
	RelevantMovie []MovieRelevance `json:"relevantMovie" bson:"relevant_movie"`
}

// MovieRef is the movie summary stored on genre and actor documents.
type MovieRef struct {
	MovieID    int      `json:"mid" bson:"mid"`
	IMDbRating *float64 `json:"imdbRating,omitempty" bson:"imdb_rating,omitempty"`
	IMDbVotes  *int     `json:"imdbVotes,omitempty" bson:"imdb_votes,omitempty"`
}

// Genre is a document of the `genres_list` collection.
type Genre struct {
	Name          string     `json:"genre" bson:"genre"`
	Popular       int        `json:"popular" bson:"popular"`
	RelevantMovie []MovieRef `json:"relevantMovie" bson:"relevant_movie"`
}

// Actor is a document of the `actors_list` collection.
type Actor struct {
	Name          string     `json:"actor" bson:"actor"`
	Popular       int        `json:"popular" bson:"popular"`
	RelevantMovie []MovieRef `json:"relevantMovie" bson:"relevant_movie"`
}
