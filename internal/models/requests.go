package models

// HistoryRequest describes an anonymous viewer by the titles they watched.
type HistoryRequest struct {
	Titles []string `json:"titles" validate:"required,min=1,max=500,dive,required"`
}

// TagsRequest asks for movies matching tag contents.
type TagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1,max=100,dive,required"`
}

// GenresRequest asks for movies matching genres.
type GenresRequest struct {
	Genres []string `json:"genres" validate:"required,min=1,max=30,dive,required"`
}

// FusionRequest carries already extracted profile evidence: mention counts
// keyed by actor name and by tag content.
type FusionRequest struct {
	Actors map[string]int `json:"actors" validate:"omitempty,dive,keys,required,endkeys,gt=0"`
	Tags   map[string]int `json:"tags" validate:"omitempty,dive,keys,required,endkeys,gt=0"`
}

// BatchRequest triggers a similar-movies precompute run.
type BatchRequest struct {
	Shard       int  `json:"shard" validate:"gte=0"`
	Shards      int  `json:"shards" validate:"gte=0"`
	Parallelism int  `json:"parallelism" validate:"gte=0,lte=64"`
	Refresh     bool `json:"refresh"`
}

// RebuildRankingsResult reports a rankings rebuild.
type RebuildRankingsResult struct {
	Lists int `json:"lists"`
}
