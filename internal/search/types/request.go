package types

// Search defaults matching the YouTube Data API usage this service was
// built around: snippet part, video results, 25 items per call.
const (
	DefaultPart       = "snippet"
	DefaultResultType = "video"
	DefaultMaxResults = 25
)

// SearchRequest represents one metadata search invocation
type SearchRequest struct {
	Subject    string `json:"subject" validate:"required,min=1,max=255"`
	Part       string `json:"part,omitempty"`
	ResultType string `json:"result_type,omitempty"`
	MaxResults int64  `json:"max_results,omitempty" validate:"omitempty,min=1,max=50"`
	PageToken  string `json:"page_token,omitempty"`
	Order      string `json:"order,omitempty"` // date, rating, relevance, title, viewCount
	RegionCode string `json:"region_code,omitempty"`
}

// Normalize fills in the default request parameters
func (r *SearchRequest) Normalize() {
	if r.Part == "" {
		r.Part = DefaultPart
	}
	if r.ResultType == "" {
		r.ResultType = DefaultResultType
	}
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
}

// Validate validates the search request
func (r *SearchRequest) Validate() error {
	if r.Subject == "" {
		return ErrEmptySubject
	}
	if r.MaxResults < 0 || r.MaxResults > 50 {
		return ErrInvalidMaxResults
	}
	return nil
}
