// Package httpapi exposes the diet calculators over HTTP.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Options configures the middleware around the routes.
type Options struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// NewRouter wires routes, body limit, logging, request ids and CORS.
func NewRouter(h *Handler, opts Options) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/calculate-normal-metabolic-diet", h.calculateGeneral).Methods("POST")
	r.HandleFunc("/calculate/dietitian", h.calculateGeneral).Methods("POST")
	r.HandleFunc("/calculate/normal_user", h.calculateNormalUser).Methods("POST")
	r.HandleFunc("/calculate-renal-diet", h.calculateRenal).Methods("POST")
	r.HandleFunc("/calculate-normal-metabolic-diet/export", h.exportGeneral).Methods("POST")
	r.HandleFunc("/calculate-renal-diet/export", h.exportRenal).Methods("POST")
	r.HandleFunc("/reference", h.reference).Methods("GET")
	r.HandleFunc("/health", h.health).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader, "Content-Disposition"},
	})

	var handler http.Handler = r
	if opts.MaxBodyBytes > 0 {
		handler = limitBody(opts.MaxBodyBytes, handler)
	}
	return c.Handler(requestIDMiddleware(loggingMiddleware(h.logger, handler)))
}
