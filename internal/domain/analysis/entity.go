package analysis

import (
	"strings"
	"time"
)

// ResultID identifier type
type ResultID string

// ContentType enum
type ContentType string

const (
	ContentURL  ContentType = "url"
	ContentText ContentType = "text"
)

// ParseContentType validates the raw type sent by a client.
func ParseContentType(raw string) (ContentType, error) {
	switch ContentType(strings.ToLower(strings.TrimSpace(raw))) {
	case ContentURL:
		return ContentURL, nil
	case ContentText:
		return ContentText, nil
	default:
		return "", ErrInvalidContentType
	}
}

// Bucket is the discrete credibility class that drives every fixed output.
type Bucket string

const (
	BucketLow   Bucket = "LOW"
	BucketHigh  Bucket = "HIGH"
	BucketMixed Bucket = "MIXED"
)

// Verdict enum, 1:1 with Bucket
type Verdict string

const (
	VerdictFake       Verdict = "Likely Fake News"
	VerdictCredible   Verdict = "Likely Credible"
	VerdictMisleading Verdict = "Potentially Misleading"
)

// CategoryScore value object
type CategoryScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Source value object
type Source struct {
	URL         string  `json:"url"`
	Credibility string  `json:"credibility"`
	Match       float64 `json:"match"`
}

// Result is the full credibility assessment returned to callers.
// It is never modified after Analyze builds it.
type Result struct {
	ID          ResultID        `json:"id"`
	Score       float64         `json:"score"`
	Verdict     Verdict         `json:"verdict"`
	Confidence  float64         `json:"confidence"`
	Categories  []CategoryScore `json:"categories"`
	Explanation string          `json:"explanation"`
	Sources     []Source        `json:"sources"`
	Suggestions []string        `json:"suggestions"`
	Timestamp   time.Time       `json:"timestamp"`
	Title       string          `json:"title"`
	URL         *string         `json:"url"`
	TextSnippet *string         `json:"text_snippet"`
}
