package api

import (
	"errors"
	"os"
	"strings"
)

func (s *Server) registerRoutes() error {
	if s == nil || s.router == nil {
		return nil
	}

	api := s.router.Group("/api")
	apiKey := strings.TrimSpace(os.Getenv("CLEVA_API_KEY"))
	if apiKey != "" {
		api.Use(apiKeyAuthMiddleware(apiKey))
	} else if strings.EqualFold(strings.TrimSpace(os.Getenv("CLEVA_DISABLE_AUTH")), "true") {
		// Explicitly allow unauthenticated access.
	} else {
		return errors.New("api: missing auth configuration: set CLEVA_API_KEY or set CLEVA_DISABLE_AUTH=true")
	}

	api.GET("/health", s.handleHealth)
	api.GET("/tasks", s.handleListTasks)
	api.GET("/instances", s.handleGetInstances)
	api.GET("/prompt-setting", s.handleGetPromptSetting)
	api.GET("/fetches", s.handleListFetches)

	return nil
}
