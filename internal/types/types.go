// Package types holds the data model shared by the extraction engine and
// its downstream consumers (formatting, archiving).
package types

import "time"

// Author identifies the account that wrote a post. Re-extracted every time
// a post is parsed; never mutated afterwards.
type Author struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// MediaKind classifies an embedded media item.
type MediaKind string

const (
	MediaImage         MediaKind = "image"
	MediaVideo         MediaKind = "video"
	MediaAnimatedImage MediaKind = "animated_image"
)

// MediaRef points at one embedded media item. Order within a Record is
// extraction order, not necessarily presentation order.
type MediaRef struct {
	Kind       MediaKind `json:"kind"`
	URL        string    `json:"url"`
	PreviewURL string    `json:"preview_url,omitempty"`
	AltText    string    `json:"alt_text,omitempty"`
}

// Metrics holds engagement counts. Unparsable counters extract as 0.
type Metrics struct {
	Likes   int `json:"likes"`
	Reposts int `json:"reposts"`
	Replies int `json:"replies"`
}

// QuotedPost is the reduced record embedded when a post quotes another post.
type QuotedPost struct {
	ID        string     `json:"id"`
	Author    Author     `json:"author"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp,omitempty"`
	Media     []MediaRef `json:"media,omitempty"`
	SourceURL string     `json:"source_url,omitempty"`
}

// Record is one normalized post. A Record only exists if its ID, author
// handle, author display name, and content were all resolvable; partial
// records are never produced.
type Record struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Metrics   Metrics   `json:"metrics"`

	Media []MediaRef `json:"media,omitempty"`

	// Thread signals. ThreadPosition and ThreadTotal are 0 when the post
	// declares no explicit "n/m" numbering. ThreadGroupID is set when the
	// post was extracted from a conversation permalink page.
	IsThreadCandidate bool   `json:"is_thread_candidate"`
	ThreadPosition    int    `json:"thread_position,omitempty"`
	ThreadTotal       int    `json:"thread_total,omitempty"`
	ThreadGroupID     string `json:"thread_group_id,omitempty"`

	SourceURL string      `json:"source_url"`
	Quoted    *QuotedPost `json:"quoted,omitempty"`
}

// HasPosition reports whether the post carries explicit positional numbering.
func (r Record) HasPosition() bool {
	return r.ThreadPosition > 0
}

// ThreadData is an ordered, completeness-assessed group of Records believed
// to form one authored sequence.
type ThreadData struct {
	GroupID       string    `json:"group_id"`
	Records       []Record  `json:"records"`
	DeclaredCount int       `json:"declared_count"`
	Author        Author    `json:"author"`
	StartedAt     time.Time `json:"started_at"`
	IsComplete    bool      `json:"is_complete"`
}
