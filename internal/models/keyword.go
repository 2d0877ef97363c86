package models

import "encoding/json"

// MaxSuggestedKeywords caps the suggestions returned per query.
const MaxSuggestedKeywords = 20

// KeywordQuery is the body of POST /fetch-keywords. Competitor identifiers
// are comma-joined outbound, so none may contain a comma.
type KeywordQuery struct {
	AppID       string   `json:"app_id"`
	Country     string   `json:"country"`
	Competitors []string `json:"competitors" binding:"required"`
}

// KeywordSuggestions holds upstream entries verbatim, in upstream order.
type KeywordSuggestions struct {
	SuggestedKeywords []json.RawMessage `json:"suggested_keywords"`
}
