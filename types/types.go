// Package types holds the values shared by every generated client package.
package types

import "net/http"

// Response is the full outcome of one request: status, raw body, headers
// and the payload parsed for the status code, if the status was expected.
type Response[T any] struct {
	StatusCode int
	Content    []byte
	Headers    http.Header
	Parsed     T
}

// Ptr returns a pointer to v, for optional parameters and fields.
func Ptr[T any](v T) *T { return &v }
