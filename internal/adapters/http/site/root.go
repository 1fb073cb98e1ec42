// Package site serves the embedded browser front end: a roster upload form,
// a team builder and an export preview, all driven by the JSON API.
package site

import (
	"context"
	"net/http"
)

// Register attaches the front end to mux. API routes registered on the same
// mux take precedence because their patterns are more specific.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /", http.FileServer(FS()))
}
