package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

// Gzip compresses responses when the client accepts it.
// Exports and listings shrink well; PDFs are already compressed and are
// skipped by content type.
func Gzip() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gw := &gzipWriter{ResponseWriter: c.Writer}
		c.Writer = gw
		defer gw.close()

		c.Next()
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	zw      *gzip.Writer
	skipped bool
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	if g.zw == nil && !g.skipped {
		g.start()
	}
	if g.skipped {
		return g.ResponseWriter.Write(data)
	}
	return g.zw.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

// start decides once, at the first body write, whether to compress.
func (g *gzipWriter) start() {
	contentType := g.Header().Get("Content-Type")
	if strings.HasPrefix(contentType, "application/pdf") {
		g.skipped = true
		return
	}

	g.Header().Set("Content-Encoding", "gzip")
	g.Header().Add("Vary", "Accept-Encoding")
	g.Header().Del("Content-Length")
	g.zw = gzip.NewWriter(g.ResponseWriter)
}

func (g *gzipWriter) close() {
	if g.zw != nil {
		_ = g.zw.Close()
	}
}
