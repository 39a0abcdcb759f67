package history

import "strings"

// Credibility bands used by the history filter.
const (
	CredibilityAll    = "all"
	CredibilityHigh   = "high"
	CredibilityMedium = "medium"
	CredibilityLow    = "low"

	highThreshold = 0.66
	lowThreshold  = 0.33
)

// Filter narrows a history listing. The zero value matches everything.
type Filter struct {
	Query       string
	Credibility string
}

func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && (f.Credibility == "" || f.Credibility == CredibilityAll)
}

// Match reports whether r passes both the text query and the credibility band.
func (f Filter) Match(r *Record) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(r.Title), q) &&
			!containsPtr(r.URL, q) &&
			!containsPtr(r.TextSnippet, q) {
			return false
		}
	}
	switch strings.ToLower(f.Credibility) {
	case CredibilityHigh:
		return r.Score >= highThreshold
	case CredibilityMedium:
		return r.Score >= lowThreshold && r.Score < highThreshold
	case CredibilityLow:
		return r.Score < lowThreshold
	}
	return true
}

// Apply keeps the matching records, preserving order.
func (f Filter) Apply(records []*Record) []*Record {
	if f.IsZero() {
		return records
	}
	out := make([]*Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsPtr(s *string, q string) bool {
	return s != nil && strings.Contains(strings.ToLower(*s), q)
}
