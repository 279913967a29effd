// Package scoring implements the TF-IDF weighting used by the content and
// profile recommenders.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadDocumentFrequency means a tag, genre or actor reached scoring with
	// a popularity below 1. Ingestion must never produce such a record.
	ErrBadDocumentFrequency = errors.New("scoring: document frequency must be >= 1")

	// ErrBadCorpusSize means the configured corpus is smaller than a term's
	// document frequency.
	ErrBadCorpusSize = errors.New("scoring: corpus size must be >= document frequency")

	// ErrBadBase means the logarithm base is not usable.
	ErrBadBase = errors.New("scoring: logarithm base must be positive and != 1")
)

// Weight returns tf · log_base(numDocs / df).
func Weight(tf float64, df, numDocs int, base float64) (float64, error) {
	if df < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrBadDocumentFrequency, df)
	}
	if numDocs < df {
		return 0, fmt.Errorf("%w: corpus %d, df %d", ErrBadCorpusSize, numDocs, df)
	}
	if base <= 0 || base == 1 {
		return 0, fmt.Errorf("%w: got %v", ErrBadBase, base)
	}
	return tf * math.Log(float64(numDocs)/float64(df)) / math.Log(base), nil
}

// MentionBoost returns 1 + log_base(mentions). A term mentioned once weighs 1;
// mentions below 1 are treated as a single mention.
func MentionBoost(mentions int, base float64) float64 {
	if mentions <= 1 {
		return 1
	}
	return 1 + math.Log(float64(mentions))/math.Log(base)
}
