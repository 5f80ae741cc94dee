package api

import "net/http"

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("/api/health", h.Health)

	router.HandleFunc("GET /api/portal", h.GetPortal)
	router.HandleFunc("POST /api/favorites/toggle", h.ToggleFavorite)

	handler := use(router, mw.Recover, mw.Cors, mw.WithIdentity, mw.Log)

	return handler
}

func use(handler http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}

	return handler
}
