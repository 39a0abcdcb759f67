package analysis

import (
	"strings"
	"time"
)

const (
	titleWords    = 7
	snippetLength = 150
	ellipsis      = "..."
)

// Classify picks the bucket for content. Alarming keywords always win over
// credible ones.
func Classify(content string) Bucket {
	lower := strings.ToLower(content)
	switch {
	case containsAny(lower, alarmingKeywords):
		return BucketLow
	case containsAny(lower, credibleKeywords):
		return BucketHigh
	default:
		return BucketMixed
	}
}

// Analyze builds the assessment for content. It is pure: the same content,
// type, id and time always give the same Result.
func Analyze(content string, ct ContentType, id ResultID, now time.Time) *Result {
	p := profiles[Classify(content)]

	categories := make([]CategoryScore, len(categoryNames))
	for i, name := range categoryNames {
		categories[i] = CategoryScore{Name: name, Score: p.categories[i]}
	}

	r := &Result{
		ID:          id,
		Score:       p.score,
		Verdict:     p.verdict,
		Confidence:  Confidence,
		Categories:  categories,
		Explanation: p.explanation,
		Sources:     append([]Source(nil), p.sources[:]...),
		Suggestions: append([]string(nil), p.suggestions[:]...),
		Timestamp:   now,
		Title:       Title(content),
	}

	switch ct {
	case ContentURL:
		u := content
		r.URL = &u
	case ContentText:
		s := Snippet(content)
		r.TextSnippet = &s
	}
	return r
}

// Title joins the first seven whitespace-separated words and appends an ellipsis.
func Title(content string) string {
	words := strings.Fields(content)
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	return strings.Join(words, " ") + ellipsis
}

// Snippet keeps the first 150 characters. The ellipsis is appended even when
// nothing was cut.
func Snippet(content string) string {
	runes := []rune(content)
	if len(runes) > snippetLength {
		runes = runes[:snippetLength]
	}
	return string(runes) + ellipsis
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
