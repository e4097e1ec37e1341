package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/cleva-eval/internal/config"
	"github.com/stellarlinkco/cleva-eval/internal/manifest"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

// Server exposes the dataset cache over HTTP: task listing, built
// instances, prompt settings, and fetch history.
type Server struct {
	router   *gin.Engine
	loader   *scenario.Loader
	manifest *manifest.Store
	config   *config.Config
}

func NewServer(cfg *config.Config, loader *scenario.Loader, mf *manifest.Store) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("api: nil config")
	}
	if loader == nil {
		return nil, errors.New("api: nil loader")
	}

	r := gin.New()
	s := &Server{
		router:   r,
		loader:   loader,
		manifest: mf,
		config:   cfg,
	}
	s.registerMiddleware()
	if err := s.registerRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Run(addr string) error {
	if s == nil || s.router == nil {
		return errors.New("api: nil server")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}
