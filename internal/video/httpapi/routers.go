package httpapi

import "net/http"

// NewRouter wires the public routes. Everything under /api requires a
// session; /health stays open for probes.
func NewRouter(h *Handler, authMw func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)

	// GET /api/signature
	mux.Handle("/api/signature", authMw(http.HandlerFunc(h.GetSignature)))

	// POST /api/videos, GET /api/videos
	mux.Handle("/api/videos", authMw(http.HandlerFunc(h.Videos)))

	// GET /api/videos/{id} — trailing slash so public ids with slashes
	// resolve too
	mux.Handle("/api/videos/", authMw(http.HandlerFunc(h.GetVideo)))

	return mux
}
