package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// PageController serves the admin single-page app from a directory on disk.
type PageController struct {
	dir string
}

func NewPageController(dir string) *PageController {
	return &PageController{dir: dir}
}

// ServeAdmin falls back to index.html for any path that is not a file.
func (pc *PageController) ServeAdmin(c *gin.Context) {
	if pc.dir == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	name := filepath.Join(pc.dir, filepath.Clean("/"+c.Param("path")))
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		c.File(name)
		return
	}

	index := filepath.Join(pc.dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.File(index)
}
