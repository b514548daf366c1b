package handlers

import (
	"context"
	"net/http"
	"sync"

	"bootfeed/internal/feed"
	"bootfeed/internal/importer"
	"bootfeed/internal/logger"

	"github.com/gin-gonic/gin"
)

type ImportRequest struct {
	Path     string `json:"path" binding:"required"`
	Batch    int    `json:"batch"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	LogEvery int    `json:"log_every"`
	DryRun   bool   `json:"dry_run"`
}

// ImportHandler triggers feed imports over HTTP. Only one import runs at a
// time: the upsert pattern assumes a single writer.
type ImportHandler struct {
	pipeline *importer.Pipeline
	logger   *logger.Logger

	mu      sync.Mutex
	running bool
}

func NewImportHandler(pipeline *importer.Pipeline, logger *logger.Logger) *ImportHandler {
	return &ImportHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

func (h *ImportHandler) Trigger(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "An import is already running"})
		return
	}
	h.running = true
	h.mu.Unlock()

	reader, err := feed.Open(req.Path)
	if err != nil {
		h.done()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	go func() {
		defer h.done()
		defer reader.Close()

		stats, err := h.pipeline.Run(context.Background(), reader, importer.Options{
			BatchSize: req.Batch,
			Limit:     req.Limit,
			Offset:    req.Offset,
			LogEvery:  req.LogEvery,
			DryRun:    req.DryRun,
		})
		if err != nil {
			h.logger.Error("import %s failed: %v", req.Path, err)
			return
		}
		h.logger.Info("import %s finished: %+v", req.Path, *stats)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "started", "path": req.Path})
}

func (h *ImportHandler) done() {
	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
}
