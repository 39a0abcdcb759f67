package article

// Article is the content pulled from a news URL.
type Article struct {
	Text        string   `json:"text"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	PublishDate string   `json:"publish_date"`
	TopImage    string   `json:"top_image"`
	URL         string   `json:"url"`
	// Placeholder is true when no retrieval actually happened.
	Placeholder bool `json:"placeholder"`
}
