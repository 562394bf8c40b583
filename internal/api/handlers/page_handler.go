package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/careerly/internal/utils"
)

// PageHandler serves the built frontend from a directory. Unknown paths
// get index.html so client-side routing works.
type PageHandler struct {
	dir string
}

func NewPageHandler(dir string) *PageHandler {
	return &PageHandler{dir: dir}
}

func (h *PageHandler) Serve(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		writeError(c, utils.E(utils.CodeNotFound, "PageHandler.Serve", "route not found", nil))
		return
	}
	if h.dir == "" {
		c.String(http.StatusOK, "careerly")
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	rel := path.Clean("/" + c.Request.URL.Path)
	full := filepath.Join(h.dir, filepath.FromSlash(rel))
	if st, err := os.Stat(full); err == nil && !st.IsDir() {
		c.File(full)
		return
	}
	c.File(filepath.Join(h.dir, "index.html"))
}
