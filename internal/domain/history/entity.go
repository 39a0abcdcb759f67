package history

import (
	"time"

	"github.com/bryanwahyu/credcheck/internal/domain/analysis"
)

// DefaultRecentLimit is how many records the recent listing returns.
const DefaultRecentLimit = 3

// Record is the summary of a past analysis kept for the listing endpoints.
type Record struct {
	ID          analysis.ResultID `json:"id"`
	Title       string            `json:"title"`
	Date        time.Time         `json:"date"`
	Score       float64           `json:"score"`
	URL         *string           `json:"url"`
	TextSnippet *string           `json:"textSnippet"`
	FullResult  *analysis.Result  `json:"fullResult"`
}

// NewRecord projects a result into a history record.
func NewRecord(r *analysis.Result) *Record {
	return &Record{
		ID:          r.ID,
		Title:       r.Title,
		Date:        r.Timestamp,
		Score:       r.Score,
		URL:         r.URL,
		TextSnippet: r.TextSnippet,
		FullResult:  r,
	}
}
