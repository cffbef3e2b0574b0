package ports

import (
	"context"
	"net/http"
	"net/url"
)

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

// Gateway is the single path to the marketplace backend. out may be nil, a typed
// response contract, or *map[string]any.
type Gateway interface {
	Do(ctx context.Context, req Request, out any) error
}

type SessionStore interface {
	SignIn(token, userType string)
	SignOut()
}

type Notifier interface {
	Notify(msg string)
}
