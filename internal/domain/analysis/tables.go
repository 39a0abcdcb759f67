package analysis

// Keyword sets are matched as substrings of the lower-cased content.
var (
	alarmingKeywords = []string{"fake", "miracle", "shocking", "unbelievable"}
	credibleKeywords = []string{"study", "research", "science", "report"}
)

// Category names in the order they are always reported.
const (
	CategoryClickbait = "Clickbait Language"
	CategorySource    = "Source Credibility"
	CategoryFactual   = "Factual Content"
	CategoryEmotional = "Emotional Manipulation"
	CategoryBias      = "Bias"
)

// Confidence is fixed until a real classifier exists.
const Confidence = 0.85

type profile struct {
	score       float64
	verdict     Verdict
	categories  [5]float64
	explanation string
	sources     [2]Source
	suggestions [4]string
}

var categoryNames = [5]string{
	CategoryClickbait,
	CategorySource,
	CategoryFactual,
	CategoryEmotional,
	CategoryBias,
}

// MIXED shares HIGH's category values: the scores only split below 0.4.
var profiles = map[Bucket]profile{
	BucketLow: {
		score:      0.25,
		verdict:    VerdictFake,
		categories: [5]float64{0.8, 0.3, 0.4, 0.75, 0.6},
		explanation: "This article contains several characteristics of potential misinformation, " +
			"including exaggerated claims, emotional language, and limited credible sources.",
		sources: [2]Source{
			{URL: "https://example.com/article1", Credibility: "low", Match: 0.85},
			{URL: "https://example.com/article2", Credibility: "medium", Match: 0.65},
		},
		suggestions: [4]string{
			"Verify this information with more established news sources",
			"Look for articles that cite specific studies or experts",
			"Check if other reputable outlets are reporting the same information",
			"Be cautious of claims that seem too dramatic or emotional",
		},
	},
	BucketHigh: {
		score:      0.85,
		verdict:    VerdictCredible,
		categories: [5]float64{0.2, 0.85, 0.9, 0.15, 0.4},
		explanation: "This article appears to be credible based on our analysis. It cites reputable " +
			"sources, presents balanced information, and avoids sensationalist language.",
		sources: [2]Source{
			{URL: "https://example.com/credible1", Credibility: "high", Match: 0.92},
			{URL: "https://example.com/credible2", Credibility: "high", Match: 0.88},
		},
		suggestions: [4]string{
			"Always cross-reference information with multiple sources",
			"Continue to evaluate the credibility of sources",
			"Consider the context and timing of the information",
			"Be aware that even credible sources can contain biases",
		},
	},
	BucketMixed: {
		score:      0.55,
		verdict:    VerdictMisleading,
		categories: [5]float64{0.2, 0.85, 0.9, 0.15, 0.4},
		explanation: "This article contains a mix of credible and questionable elements. While some " +
			"information appears accurate, there are instances of misleading presentation.",
		sources: [2]Source{
			{URL: "https://example.com/mixed1", Credibility: "medium", Match: 0.75},
			{URL: "https://example.com/mixed2", Credibility: "high", Match: 0.45},
		},
		suggestions: [4]string{
			"Look for more comprehensive coverage of this topic",
			"Pay attention to potential biases in presentation",
			"Consider whether important context might be missing",
			"Check if the article distinguishes clearly between facts and opinions",
		},
	},
}
