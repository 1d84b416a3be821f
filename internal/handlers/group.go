package handlers

import (
	"net/http"

	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc *services.Services
}

func NewGroupHandler(svc *services.Services) *GroupHandler {
	return &GroupHandler{svc: svc}
}

// ListGroups 展示所有分组
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/groups.html", gin.H{
		"Title":  "Groups",
		"Groups": groups,
	})
}
