package types

// SearchResult is the normalized form of one external API response:
// the header metadata plus the ordered list of result items.
type SearchResult struct {
	Kind           string       `json:"kind"`
	Etag           string       `json:"etag"`
	NextPageToken  string       `json:"next_page_token,omitempty"`
	RegionCode     string       `json:"region_code,omitempty"`
	TotalResults   int64        `json:"total_results"`
	ResultsPerPage int64        `json:"results_per_page"`
	Items          []*VideoItem `json:"items"`
}

// VideoItem represents a single video entry of a search result
type VideoItem struct {
	VideoID      string               `json:"video_id"`
	PublishedAt  string               `json:"published_at,omitempty"` // RFC 3339 as returned by the API
	ChannelID    string               `json:"channel_id,omitempty"`
	ChannelTitle string               `json:"channel_title,omitempty"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	Thumbnails   map[string]Thumbnail `json:"thumbnails,omitempty"` // keyed by size (default, medium, high, ...)
}

// Thumbnail holds one thumbnail variant of a video
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width,omitempty"`
	Height int64  `json:"height,omitempty"`
}
