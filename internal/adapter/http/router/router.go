package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

// New assembles the ServeMux from the controllers. The auth middleware wraps
// every controller route; outer middleware (request id) wraps the whole mux
// including the health probe.
func New(
	authMiddleware func(http.Handler) http.Handler,
	outerMiddleware func(http.Handler) http.Handler,
	controllers ...RouteRegistrar,
) http.Handler {
	mux := http.NewServeMux()
	registerHealthRoutes(mux)

	for _, controller := range controllers {
		if controller != nil {
			controller.RegisterRoutes(mux, authMiddleware)
		}
	}

	if outerMiddleware != nil {
		return outerMiddleware(mux)
	}
	return mux
}

func registerHealthRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
