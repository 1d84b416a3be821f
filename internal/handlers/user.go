package handlers

import (
	"net/http"

	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *services.Services
}

func NewUserHandler(svc *services.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile 用户主页
func (h *UserHandler) Profile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	profile, err := h.svc.Feeds.ByAuthor(c.Request.Context(), c.Param("username"), viewer, services.ParsePageNumber(c.Query("page")))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":   profile.Author.DisplayName(),
		"Profile": profile,
		"IsSelf":  viewer != nil && viewer.ID == profile.Author.ID,
	})
}

// Follow subscribes the current user to the author and returns to the profile.
func (h *UserHandler) Follow(c *gin.Context) {
	user := middleware.CurrentUser(c)
	author, err := h.svc.Users.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}
	if err := h.svc.Follows.Follow(c.Request.Context(), user, author); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	user := middleware.CurrentUser(c)
	author, err := h.svc.Users.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		handleError(c, err)
		return
	}
	if err := h.svc.Follows.Unfollow(c.Request.Context(), user, author); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/"+author.Username+"/")
}
