package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed public
var publicFS embed.FS

// Page returns a handler serving one embedded HTML page.
func Page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		content, err := fs.ReadFile(publicFS, "public/"+name)
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	}
}

// StaticHandler serves the embedded assets below prefix.
func StaticHandler(prefix string) gin.HandlerFunc {
	staticFS, err := fs.Sub(publicFS, "public/static")
	if err != nil {
		panic("web: embedded static filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(staticFS))

	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, prefix)
		if path == "" || path == "/" {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.Request.URL.Path = path
		c.Header("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
