package api

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/cleva-eval/internal/manifest"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

type taskInfo struct {
	Name   string   `json:"name"`
	Splits []string `json:"splits"`
}

type instancesResponse struct {
	Version   string              `json:"version"`
	Task      string              `json:"task"`
	Subtask   string              `json:"subtask,omitempty"`
	Total     int                 `json:"total"`
	Instances []scenario.Instance `json:"instances"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks := scenario.Tasks()
	out := make([]taskInfo, 0, len(tasks))
	for _, t := range tasks {
		splits := t.Splits()
		names := make([]string, 0, len(splits))
		for _, sp := range splits {
			names = append(names, string(sp))
		}
		out = append(out, taskInfo{Name: string(t), Splits: names})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetInstances(c *gin.Context) {
	task, version, subtask, ok := s.scenarioParams(c)
	if !ok {
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, errors.New("api: limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	sc := &scenario.Scenario{
		Version: version,
		Task:    task,
		Subtask: subtask,
		Loader:  s.loader,
	}
	instances, err := sc.Instances(c.Request.Context())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	total := len(instances)
	if limit > 0 && limit < total {
		instances = instances[:limit]
	}

	c.JSON(http.StatusOK, instancesResponse{
		Version:   version,
		Task:      string(task),
		Subtask:   subtask,
		Total:     total,
		Instances: instances,
	})
}

func (s *Server) handleGetPromptSetting(c *gin.Context) {
	task, version, subtask, ok := s.scenarioParams(c)
	if !ok {
		return
	}

	setting, err := s.loader.LoadPromptSetting(version, task, subtask)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (s *Server) handleListFetches(c *gin.Context) {
	if s.manifest == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("api: manifest store not configured"))
		return
	}

	fetches, err := s.manifest.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if fetches == nil {
		fetches = []manifest.Fetch{}
	}
	c.JSON(http.StatusOK, fetches)
}

// scenarioParams validates the task/version/subtask query parameters
// shared by the instances and prompt-setting endpoints.
func (s *Server) scenarioParams(c *gin.Context) (scenario.Task, string, string, bool) {
	task := scenario.Task(strings.TrimSpace(c.Query("task")))
	if task == "" {
		respondError(c, http.StatusBadRequest, errors.New("api: missing task parameter"))
		return "", "", "", false
	}
	if !task.Valid() {
		respondError(c, http.StatusBadRequest, errors.New("api: unknown task "+strconv.Quote(string(task))))
		return "", "", "", false
	}

	version := strings.TrimSpace(c.Query("version"))
	if version == "" {
		version = s.config.Data.Version
	}

	return task, version, strings.TrimSpace(c.Query("subtask")), true
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
