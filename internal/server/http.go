package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	healthEndpoint  = "/healthz"
	metricsEndpoint = "/metrics"
)

// newRouter builds the HTTP handler shared by the SSE and streamable-http
// transports. mount registers the transport's MCP endpoints.
func (s *Server) newRouter(mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get(healthEndpoint, s.handleHealth)
	if s.collector != nil {
		r.Handle(metricsEndpoint, s.collector.Handler())
	}

	r.Group(func(r chi.Router) {
		if s.collector != nil {
			r.Use(s.collector.Middleware)
		}
		mount(r)
	})

	return r
}

type healthResponse struct {
	Status       string `json:"status"`
	Transport    string `json:"transport"`
	Capabilities int    `json:"capabilities"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:       "ok",
		Transport:    s.config.Transport,
		Capabilities: s.dispatcher.Registry().Len(),
	})
}
