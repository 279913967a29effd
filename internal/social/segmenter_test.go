package social

import (
	"context"
	"reflect"
	"testing"
)

func TestDictionarySegmenter(t *testing.T) {
	seg := NewDictionarySegmenter([]string{"star wars", "star", "wars", "sci-fi", "fan", "comedy", "dark"})

	tests := []struct {
		name    string
		hashtag string
		want    []string
	}{
		{"prefers fewer words", "#StarWars", []string{"star wars"}},
		{"multiple words", "StarWarsFan", []string{"star wars", "fan"}},
		{"punctuation folded", "scifi", []string{"sci-fi"}},
		{"lower case", "darkcomedy", []string{"dark", "comedy"}},
		{"unknown falls back to case split", "BestMovieEver", []string{"best", "movie", "ever"}},
		{"digits split", "Top10Films", []string{"top", "10", "films"}},
		{"empty", "#", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seg.Segment(context.Background(), tt.hashtag)
			if err != nil {
				t.Fatalf("Segment(%q) error: %v", tt.hashtag, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment(%q) = %q, want %q", tt.hashtag, got, tt.want)
			}
		})
	}
}

func TestDictionarySegmenter_Len(t *testing.T) {
	seg := NewDictionarySegmenter([]string{"Drama", "drama", "", "  "})
	if seg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", seg.Len())
	}
}

func TestSplitCase(t *testing.T) {
	tests := map[string][]string{
		"HelloWorld":  {"hello", "world"},
		"hello_world": {"hello", "world"},
		"NASA":        {"nasa"},
		"":            nil,
	}
	for in, want := range tests {
		if got := splitCase(in); !reflect.DeepEqual(got, want) {
			t.Errorf("splitCase(%q) = %q, want %q", in, got, want)
		}
	}
}
