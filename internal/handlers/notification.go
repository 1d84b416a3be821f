package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *services.Services
}

func NewNotificationHandler(svc *services.Services) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	notifications, err := h.svc.Notifications.List(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "notification/list.html", gin.H{
		"Title":         "Notifications",
		"Notifications": notifications,
	})
}

// ReadAll marks every notification as read.
func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.svc.Notifications.MarkAllRead(c.Request.Context(), user); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/notifications/")
}
