// Package manage provides HTTP handlers for previewing and regenerating the portfolio.
package manage

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/alerego/portfolio/pkg/portfolio"
	"github.com/alerego/portfolio/pkg/showcase"
	"k8s.io/klog/v2"
)

// Server serves a portfolio site root.
type Server struct {
	c *portfolio.Config

	// mu serializes regeneration
	mu sync.Mutex
}

// New creates a new server.
func New(c *portfolio.Config) *Server {
	return &Server{c: c}
}

// Handler routes the static site and the management endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.c.Root)))
	mux.HandleFunc("/_/regenerate", s.RegenerateHandler())
	mux.HandleFunc("/_/showcase", s.ShowcaseHandler())
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Errorf("encode: %v", err)
	}
}

// Regenerate rebuilds every manifest, one caller at a time.
func (s *Server) Regenerate() ([]portfolio.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return portfolio.Generate(s.c)
}

// RegenerateHandler rebuilds every manifest.
func (s *Server) RegenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rs, err := s.Regenerate()
		if err != nil {
			klog.Errorf("regenerate: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		klog.Infof("regenerated %d categories", len(rs))
		writeJSON(w, http.StatusOK, rs)
	}
}

// ShowcaseHandler returns the home page tiles for the local tree.
func (s *Server) ShowcaseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		src := &showcase.DirSource{ImagesDir: s.c.ImagesDir()}
		writeJSON(w, http.StatusOK, showcase.Load(r.Context(), src, s.c.SiteURL, s.c.ShowcaseLimit))
	}
}
