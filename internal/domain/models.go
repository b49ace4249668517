package domain

import (
	"context"
	"fmt"
)

// Tag category names as Danbooru segments them in post objects.
// API categories: 0=general, 1=artist, 3=copyright, 4=character, 5=meta.
const (
	CategoryGeneral   = "general"
	CategoryCopyright = "copyright"
	CategoryCharacter = "character"
	CategoryMeta      = "meta"
	CategoryArtist    = "artist"
)

// ArtistPrefix namespaces artist tags before they enter the combined pool.
// Danbooru tags are whitespace-delimited tokens and can never contain a
// space, so a prefixed artist tag cannot collide with a general tag.
const ArtistPrefix = "artist: "

// Post is the slice of a Danbooru post object the pipeline cares about.
// A missing field decodes to its zero value; that is expected, not an error.
type Post struct {
	ID            int    `json:"id"`
	TagsGeneral   string `json:"tag_string_general"`
	TagsCopyright string `json:"tag_string_copyright"`
	TagsCharacter string `json:"tag_string_character"`
	TagsMeta      string `json:"tag_string_meta"`
	TagsArtist    string `json:"tag_string_artist"`
}

// PostURL formats the canonical provenance URL for a post ID.
func PostURL(base string, id int) string {
	return fmt.Sprintf("%s/posts/%d", base, id)
}

// FetchStatus classifies how an aggregation run ended. Transport failures
// are ordinary Go errors and never produce a FetchResult at all.
type FetchStatus int

const (
	// StatusOK means the sample holds exactly the requested number of tags.
	StatusOK FetchStatus = iota
	// StatusShortfall means the pool came up short and the sample is the
	// whole pool in randomized order. Degraded success, not a failure.
	StatusShortfall
)

// FetchResult is the snapshot an aggregation run hands to the caller.
// It is never mutated after being returned; the UI and the export writers
// may transform copies freely.
type FetchResult struct {
	RunID      string         // short correlation id for logs and the report
	Tags       []string       // sampled tags, presentation order
	SourceURLs []string       // unique post URLs observed during aggregation
	Pool       []string       // full deduplicated candidate pool
	Counts     map[string]int // occurrences per pool entry across posts
	Categories map[string]int // occurrences per tag category
	Status     FetchStatus
	Message    string // human-readable status line
	Requests   int    // API requests spent
	Posts      int    // posts observed
}

// Shortfall reports whether the run returned fewer tags than requested.
func (r *FetchResult) Shortfall() bool { return r.Status == StatusShortfall }

// Collector defines the interface for fetching pages of random posts.
type Collector interface {
	RandomPosts(ctx context.Context, limit int) ([]Post, error)
}
