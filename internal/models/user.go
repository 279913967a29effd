package models

// LikedThreshold is the minimum rating counted as a positive signal.
const LikedThreshold = 3.5

// Rating is one (movie, rating) pair of a user's history.
type Rating struct {
	MovieID int     `json:"mid" bson:"mid"`
	Rating  float64 `json:"rating" bson:"rating"`
}

// User is a document of the `user_rate` collection.
type User struct {
	UserID  int      `json:"uid" bson:"uid"`
	Ratings []Rating `json:"ratings" bson:"ratings"`

	// memoized by the collaborative recommender
	SimilarUsers []int `json:"similarUsers,omitempty" bson:"similar_users,omitempty"`
}

// Liked returns the ids of the movies rated at or above LikedThreshold.
func (u *User) Liked() []int {
	var ids []int
	for _, r := range u.Ratings {
		if r.Rating >= LikedThreshold {
			ids = append(ids, r.MovieID)
		}
	}
	return ids
}

// History returns the ids of every movie the user rated.
func (u *User) History() []int {
	ids := make([]int, len(u.Ratings))
	for i, r := range u.Ratings {
		ids[i] = r.MovieID
	}
	return ids
}
