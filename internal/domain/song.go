// Path: internal/domain/song.go
package domain

import "strings"

// Song is a single record of the song collection.
// It includes struct tags for JSON serialization and BSON mapping for MongoDB.
type Song struct {
	ID     int    `json:"id" bson:"_id"`
	Title  string `json:"title" bson:"title"`
	Artist string `json:"artist" bson:"artist"`
	Album  string `json:"album" bson:"album"`
	Year   int    `json:"year" bson:"year"`
	Genre  string `json:"genre" bson:"genre"`
}

// NewSong is the payload used to create a song. Pointer fields distinguish
// a missing field from its zero value.
type NewSong struct {
	Title  *string `json:"title"`
	Artist *string `json:"artist"`
	Album  *string `json:"album"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
}

// Complete reports whether every field required to create a song is present.
func (n NewSong) Complete() bool {
	return n.Title != nil && n.Artist != nil && n.Album != nil && n.Year != nil && n.Genre != nil
}

// SongPatch holds the fields of a partial update. Nil fields are left untouched.
type SongPatch struct {
	Title  *string `json:"title"`
	Artist *string `json:"artist"`
	Album  *string `json:"album"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre"`
}

// Apply returns a copy of s with the patch fields merged in. The ID never changes.
func (p SongPatch) Apply(s Song) Song {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Artist != nil {
		s.Artist = *p.Artist
	}
	if p.Album != nil {
		s.Album = *p.Album
	}
	if p.Year != nil {
		s.Year = *p.Year
	}
	if p.Genre != nil {
		s.Genre = *p.Genre
	}
	return s
}

// SongFilter selects songs for listing. Text fields match case-insensitive
// substrings, Year matches exactly. Empty/nil fields match everything.
type SongFilter struct {
	Title  string
	Artist string
	Album  string
	Year   *int
	Genre  string
}

// Matches reports whether s satisfies every filter that is set.
func (f SongFilter) Matches(s Song) bool {
	if !containsFold(s.Title, f.Title) ||
		!containsFold(s.Artist, f.Artist) ||
		!containsFold(s.Album, f.Album) ||
		!containsFold(s.Genre, f.Genre) {
		return false
	}
	if f.Year != nil && s.Year != *f.Year {
		return false
	}
	return true
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

// --- API envelopes ---

// Envelope is the JSON shape of every song API response.
type Envelope struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// RouteError is returned for paths under the API prefix that match no route.
type RouteError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
