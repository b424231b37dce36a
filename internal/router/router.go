package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/nanashi-dev/nanashi/internal/middleware"
	"github.com/nanashi-dev/nanashi/internal/middleware/metrics"
	"github.com/nanashi-dev/nanashi/internal/setup"
)

// New creates and configures a new mux router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	// Enable gzip compression for all responses
	r.Use(handlers.CompressHandler)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	))

	// JSON API only, no scripts/styles needed
	r.Use(mw.SecurityHeadersWithCSP(false, "default-src 'none'; frame-ancestors 'none'"))
	r.Use(metrics.Middleware)

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Listing reads
	v1.HandleFunc("/boards", h.GetBoards).Methods("GET")
	v1.HandleFunc("/boards/{slug}", h.GetBoard).Methods("GET")
	v1.HandleFunc("/threads/{thread}", h.GetThread).Methods("GET")

	// Anonymous posting. Per-visitor cooldowns are enforced inside the
	// services, keyed by thread/board plus address hash, not per endpoint.
	v1.HandleFunc("/threads", h.CreateThread).Methods("POST")
	v1.HandleFunc("/posts", h.CreatePost).Methods("POST")

	// Admin/seed routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(mw.AdminKey(deps.Config.Private.AdminKey))
	admin.HandleFunc("/boards", h.CreateBoard).Methods("POST")

	return r
}
