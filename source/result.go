package source

// Meta labels a result for display.
type Meta struct {
	Title       string `json:"title"`
	SourceLabel string `json:"sourceLabel"`
	// SourceID always equals the Info().ID of the source that produced the result.
	SourceID string `json:"sourceId"`
}

// Result is one playable stream. URL is absolute.
type Result struct {
	URL  string `json:"url"`
	Meta Meta   `json:"meta"`
}

// NewResult labels url with the identity of info.
func NewResult(info Info, url, title string) *Result {
	return &Result{
		URL: url,
		Meta: Meta{
			Title:       title,
			SourceLabel: info.Label,
			SourceID:    info.ID,
		},
	}
}

// String returns the title, or the URL when untitled.
func (r *Result) String() string {
	if r.Meta.Title != "" {
		return r.Meta.Title
	}
	return r.URL
}
