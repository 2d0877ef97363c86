package models

const (
	StoreApple  = "apple"
	StoreGoogle = "google"
)

// AppLookup is the body of POST /analyze. Empty values are answered by the
// lookup, not rejected at binding.
type AppLookup struct {
	AppID    string `json:"app_id"`
	AppStore string `json:"app_store"`
}

// AppSummary is the simplified store listing. The optional fields are only
// filled from iTunes and are omitted when iTunes does not send them.
type AppSummary struct {
	AppID       string   `json:"app_id"`
	AppStore    string   `json:"app_store"`
	Title       string   `json:"title"`
	Developer   *string  `json:"developer,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Description *string  `json:"description,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Status      string   `json:"status"`
}
