package extract

// ParsedResult is the structured view shared by every analysis category: the
// verbatim analysis text plus the concern and recommendation lists pulled out
// of it. Analysis is always set, even when nothing could be parsed.
type ParsedResult struct {
	Analysis        string   `json:"analysis"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

var concernHeaders = []string{
	"concerns",
	"potential concerns",
	"issues",
	"potential issues",
}

var recommendationHeaders = []string{
	"recommendations",
	"suggested actions",
	"advice",
	"suggestions",
}

// Parse extracts the generic concern/recommendation lists from free-form
// analysis text. It is total: text without recognizable sections yields the
// identity fallback (the untouched text and two empty lists), never an error.
func Parse(text string) ParsedResult {
	return ParsedResult{
		Analysis:        text,
		Concerns:        dedupe(sectionItems(text, concernHeaders)),
		Recommendations: dedupe(sectionItems(text, recommendationHeaders)),
	}
}
