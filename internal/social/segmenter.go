package social

import (
	"context"
	"strings"
	"unicode"
)

// DictionarySegmenter splits hashtags over a fixed vocabulary (normally the
// tag contents of the store) without calling out to a service. Multi-word
// entries such as "star wars" match "#StarWars". A hashtag that cannot be
// covered by vocabulary words is split on case and digit boundaries instead.
type DictionarySegmenter struct {
	words  map[string]string // folded form -> vocabulary entry
	maxLen int
}

func NewDictionarySegmenter(vocab []string) *DictionarySegmenter {
	s := &DictionarySegmenter{words: make(map[string]string, len(vocab))}
	for _, w := range vocab {
		key := fold(w)
		if key == "" {
			continue
		}
		if _, ok := s.words[key]; !ok {
			s.words[key] = w
		}
		if n := len([]rune(key)); n > s.maxLen {
			s.maxLen = n
		}
	}
	return s
}

// Len reports the vocabulary size.
func (s *DictionarySegmenter) Len() int { return len(s.words) }

func (s *DictionarySegmenter) Segment(_ context.Context, hashtag string) ([]string, error) {
	text := []rune(fold(hashtag))
	if len(text) == 0 {
		return nil, nil
	}
	if words := s.breakWords(text); words != nil {
		return words, nil
	}
	return splitCase(hashtag), nil
}

// breakWords covers text with the fewest vocabulary words, or returns nil.
func (s *DictionarySegmenter) breakWords(text []rune) []string {
	n := len(text)
	// best[i] is the fewest words covering text[:i]; prev[i] the split point.
	best := make([]int, n+1)
	prev := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = -1
	}

	for i := 1; i <= n; i++ {
		for j := max(0, i-s.maxLen); j < i; j++ {
			if best[j] < 0 {
				continue
			}
			if _, ok := s.words[string(text[j:i])]; !ok {
				continue
			}
			if best[i] < 0 || best[j]+1 < best[i] {
				best[i] = best[j] + 1
				prev[i] = j
			}
		}
	}
	if best[n] < 0 {
		return nil
	}

	words := make([]string, best[n])
	for i, k := n, best[n]-1; i > 0; i, k = prev[i], k-1 {
		words[k] = s.words[string(text[prev[i]:i])]
	}
	return words
}

// fold lower-cases and keeps letters and digits only.
func fold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// splitCase splits "StarWars2Fan" into "star", "wars", "2", "fan".
func splitCase(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	var last rune
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case len(cur) > 0 && unicode.IsUpper(r) && !unicode.IsUpper(last):
			flush()
			cur = append(cur, r)
		case len(cur) > 0 && unicode.IsDigit(r) != unicode.IsDigit(last):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		last = r
	}
	flush()
	return words
}
