package upstream

import (
	"net/http"
	"net/url"
)

// Authenticator attaches a provider's credential to an outbound request.
// query is the request's query, encoded after Authenticate returns.
type Authenticator interface {
	Authenticate(req *http.Request, query url.Values)
}

// NoAuth sends requests unauthenticated.
type NoAuth struct{}

func (NoAuth) Authenticate(*http.Request, url.Values) {}

// BearerToken sends "Authorization: Bearer <Token>".
type BearerToken struct {
	Token string
}

func (b BearerToken) Authenticate(req *http.Request, _ url.Values) {
	req.Header.Set("Authorization", "Bearer "+b.Token)
}

// QueryToken sends the credential as the query parameter Param.
type QueryToken struct {
	Param string
	Token string
}

func (q QueryToken) Authenticate(_ *http.Request, query url.Values) {
	query.Set(q.Param, q.Token)
}
