package handlers

import (
	"errors"
	"net/http"
	"path/filepath"

	"go-mindfit/db"
	"go-mindfit/survey"
	"go-mindfit/types"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetLatestAnalysis returns the cached analysis.
func (h *Handler) GetLatestAnalysis(c *gin.Context) {
	a, ok := h.latest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a)
}

// UploadAnalysis runs the pipeline on a CSV sent as the multipart field "file".
func (h *Handler) UploadAnalysis(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing survey file",
			"details": err.Error(),
		})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "cannot open survey file",
			"details": err.Error(),
		})
		return
	}
	defer f.Close()

	table, err := survey.ReadCSV(f, filepath.Base(fh.Filename))
	if err != nil {
		h.analysisError(c, err)
		return
	}

	a, err := h.runner.Analyze(c.Request.Context(), table)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// RefreshAnalysis re-reads the configured survey export.
func (h *Handler) RefreshAnalysis(c *gin.Context) {
	a, err := h.runner.Refresh(c.Request.Context())
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// GetStoredAnalysis looks a snapshot up by id.
func (h *Handler) GetStoredAnalysis(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "analysis store disabled"})
		return
	}

	id := c.Param("id")
	doc, err := h.store.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrAnalysisNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found", "id": id})
			return
		}
		logrus.WithError(err).WithField("analysisId", id).Error("Failed to load analysis snapshot")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load analysis",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ListStoredAnalyses returns the most recent snapshots.
func (h *Handler) ListStoredAnalyses(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "analysis store disabled"})
		return
	}
	docs, err := h.store.ListAnalyses(c.Request.Context(), 20)
	if err != nil {
		logrus.WithError(err).Error("Failed to list analysis snapshots")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to list analyses",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": docs, "count": len(docs)})
}

func (h *Handler) analysisError(c *gin.Context, err error) {
	if errors.Is(err, types.ErrDataUnavailable) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "analysis unavailable",
			"details": err.Error(),
		})
		return
	}
	logrus.WithError(err).Error("Pipeline run failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "pipeline failed",
		"details": err.Error(),
	})
}
