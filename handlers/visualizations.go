package handlers

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// AssetsRoute is where the assets directory is mounted.
const AssetsRoute = "/assets"

// Visualization is a prerendered chart shipped in the assets directory.
type Visualization struct {
	Title     string `json:"title"`
	File      string `json:"file"`
	URL       string `json:"url,omitempty"`
	Available bool   `json:"available"`
}

// visualizationFiles keeps the dashboard's display order.
var visualizationFiles = []Visualization{
	{Title: "Mental Health Groups Distribution", File: "mental health groups distribution.png"},
	{Title: "Elbow Method", File: "elbow method.png"},
	{Title: "Gender Distribution", File: "gender distribution.png"},
	{Title: "Role Distribution", File: "Role distribution withi clusters.png"},
	{Title: "Age Distribution", File: "Age Distribution with clusters.png"},
	{Title: "Key Questions", File: "questions that classified the most.png"},
}

// Visualizations reports which charts exist under dir.
func Visualizations(dir string) []Visualization {
	out := make([]Visualization, len(visualizationFiles))
	for i, v := range visualizationFiles {
		if _, err := os.Stat(filepath.Join(dir, v.File)); err == nil {
			v.Available = true
			v.URL = AssetsRoute + "/" + url.PathEscape(v.File)
		}
		out[i] = v
	}
	return out
}

// GetVisualizations lists the charts; missing ones are reported, not dropped.
func (h *Handler) GetVisualizations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visualizations": Visualizations(h.assetsDir),
	})
}
