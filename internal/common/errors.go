// Package common holds sentinel errors shared across layers. Handlers map
// them onto HTTP statuses; services and repositories classify with errors.Is.
package common

import "errors"

var (

	// repository / storage specific errors
	ErrorNotFound = errors.New("not found")

	// auth specific errors
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorInvalidToken = errors.New("invalid token")

	// request validation
	ErrorBadRequest = errors.New("bad request")

	// identity / rule-store backend unreachable
	ErrorUpstreamUnavailable = errors.New("upstream unavailable")

	ErrorInternal = errors.New("internal error")
)
