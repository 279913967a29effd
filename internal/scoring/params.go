package scoring

// Params holds the corpus sizes and logarithm bases of one dataset snapshot.
// They are configuration, not derived from the live store.
type Params struct {
	TaggedMovies int     // movies carrying at least one tag
	GenreMovies  int     // movies considered for genre weighting
	Actors       int     // distinct actors
	TagBase      float64 // log base for tag IDF
	GenreBase    float64 // log base for genre IDF
	ActorBase    float64 // log base for actor IDF
	MentionBase  float64 // log base of the mention-frequency boost
}

// DefaultParams matches the MovieLens/IMDb snapshot the store was built from.
func DefaultParams() Params {
	return Params{
		TaggedMovies: 9734,
		GenreMovies:  34208,
		Actors:       55741,
		TagBase:      2,
		GenreBase:    2,
		ActorBase:    10,
		MentionBase:  5,
	}
}

// Tag weighs a movie's relevance to a tag with popularity df.
func (p Params) Tag(relevance float64, df int) (float64, error) {
	return Weight(relevance, df, p.TaggedMovies, p.TagBase)
}

// MentionedTag weighs a tag that a profile mentioned `mentions` times.
func (p Params) MentionedTag(relevance float64, mentions, df int) (float64, error) {
	return Weight(relevance*MentionBoost(mentions, p.MentionBase), df, p.TaggedMovies, p.TagBase)
}

// Genre weighs membership in a genre with popularity df.
func (p Params) Genre(df int) (float64, error) {
	return Weight(1, df, p.GenreMovies, p.GenreBase)
}

// MentionedActor weighs an actor that a profile mentioned `mentions` times.
func (p Params) MentionedActor(mentions, df int) (float64, error) {
	return Weight(MentionBoost(mentions, p.MentionBase), df, p.Actors, p.ActorBase)
}
