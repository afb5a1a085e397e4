package network

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const UrlPathPrefixMetric = "/metrics"

// Server is the http front of the audit API: a gorilla router with the
// middlewares applied to every route.
type Server struct {
	bind   string
	router *mux.Router
	server *http.Server
}

func NewServer(bind string) *Server {
	router := mux.NewRouter()

	return &Server{
		bind:   bind,
		router: router,
		server: &http.Server{
			Addr:         bind,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	return s.router.HandleFunc(pattern, handler)
}

func (s *Server) AddMiddleware(middlewares ...mux.MiddlewareFunc) {
	for _, m := range middlewares {
		s.router.Use(m)
	}
}

// SetHandler replaces the outermost handler; used to wrap the router
// with handlers that are not mux middlewares, like CORS and request
// logging.
func (s *Server) SetHandler(handler http.Handler) {
	s.server.Handler = handler
}

func (s *Server) Start() error {
	log.Info("starting http server", "bind", s.bind)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
