package models

import "time"

// Ranking is a precomputed ordered list stored in the `rankings` collection.
type Ranking struct {
	Name      string    `json:"name" bson:"name"`
	MovieIDs  []int     `json:"movieIds,omitempty" bson:"movie_ids,omitempty"`
	Actors    []string  `json:"actors,omitempty" bson:"actors,omitempty"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
