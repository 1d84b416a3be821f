package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"yatube/internal/cache"

	"github.com/gin-gonic/gin"
)

// CacheHeader marks responses served from the page cache.
const CacheHeader = "X-Cache"

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves successful GET responses from store for ttl. Entries are
// keyed by viewer and full request URI so logged-in pages never leak.
func PageCache(store cache.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		var viewerID uint
		if user := CurrentUser(c); user != nil {
			viewerID = user.ID
		}
		key := fmt.Sprintf("page:%d:%s", viewerID, c.Request.URL.RequestURI())

		if entry, ok := store.Get(c.Request.Context(), key); ok {
			PageCacheRequests.WithLabelValues("hit").Inc()
			c.Header(CacheHeader, "HIT")
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}
		PageCacheRequests.WithLabelValues("miss").Inc()

		w := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Header(CacheHeader, "MISS")
		c.Next()

		if c.Writer.Status() == http.StatusOK && len(c.Errors) == 0 {
			store.Set(c.Request.Context(), key, &cache.Entry{
				Status:      http.StatusOK,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        w.body.Bytes(),
			}, ttl)
		}
	}
}
