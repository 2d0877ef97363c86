package models

import "encoding/json"

// CompetitorQuery is the body of POST /suggest-competitors.
type CompetitorQuery struct {
	AppID   string `json:"app_id"`
	Country string `json:"country"`
}

// Competitor is one application AppTweak considers a competitor. ID and
// Name are passed through as upstream sent them, null included.
type Competitor struct {
	ID   json.RawMessage `json:"id"`
	Name json.RawMessage `json:"name"`
}

type CompetitorList struct {
	Competitors []Competitor `json:"competitors"`
}
