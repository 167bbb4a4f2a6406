// Package common contains constants and helpers shared by the client layers.
package common

// Keys of the persisted session inside the local metadata store.
const (
	TokenStorageKey = "openmarket_token"
	UserStorageKey  = "openmarket_user"
)

// HTTP header names used by the API gateway.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)
