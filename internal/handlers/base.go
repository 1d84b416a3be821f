package handlers

import (
	"log/slog"
	"net/http"

	"yatube/internal/errs"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
		if count, ok := c.Get(middleware.UnreadCountKey); ok {
			obj["UnreadCount"] = int(count.(int64))
		} else {
			obj["UnreadCount"] = 0
		}
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the error page with the requested path.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Title": http.StatusText(code),
		"Code":  code,
		"Error": message,
		"Path":  c.Request.URL.Path,
	})
}

// handleError maps a service error onto an error page.
func handleError(c *gin.Context, err error) {
	switch errs.ErrorCode(err) {
	case errs.ENOTFOUND:
		RenderError(c, http.StatusNotFound, errs.ErrorMessage(err))
	case errs.EUNAUTHORIZED:
		RenderError(c, http.StatusForbidden, errs.ErrorMessage(err))
	case errs.EINVALID:
		RenderError(c, http.StatusBadRequest, errs.ErrorMessage(err))
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err))
		RenderError(c, http.StatusInternalServerError, "Something went wrong on our side.")
	}
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found.")
}

// Recovery renders the 500 page when a handler panics.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered))
		RenderError(c, http.StatusInternalServerError, "Something went wrong on our side.")
		c.Abort()
	})
}

// safeNext keeps redirects on this site.
func safeNext(next, fallback string) string {
	if len(next) > 0 && next[0] == '/' && (len(next) == 1 || (next[1] != '/' && next[1] != '\\')) {
		return next
	}
	return fallback
}
