package models

// Mention is an account referenced by a social profile, resolved to a
// display name by the extraction service.
type Mention struct {
	Source string `json:"source" bson:"source"`
	Name   string `json:"name" bson:"name"`
}

// Profile is the footprint extracted from a social handle, stored in
// `user_profiles`.
type Profile struct {
	Handle   string    `json:"screenName" bson:"screen_name"`
	Mentions []Mention `json:"extractedUsers" bson:"extracted_users"`
	Hashtags []string  `json:"extractedTags" bson:"extracted_tags"`
}
