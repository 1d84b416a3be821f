package handlers

import (
	"log/slog"
	"net/http"

	"yatube/internal/errs"
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrator pages; routes are guarded by
// middleware.AdminRequired.
type AdminHandler struct {
	svc *services.Services
}

func NewAdminHandler(svc *services.Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) ShowGroups(c *gin.Context) {
	h.renderGroups(c, gin.H{"Form": services.GroupInput{}})
}

// CreateGroup adds a group to the catalog.
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	in := services.GroupInput{
		Title:       c.PostForm("title"),
		Slug:        c.PostForm("slug"),
		Description: c.PostForm("description"),
	}

	group, err := h.svc.Groups.Create(c.Request.Context(), in)
	if errs.ErrorCode(err) == errs.EINVALID {
		h.renderGroups(c, gin.H{
			"Form":      in,
			"Errors":    errs.FieldErrors(err),
			"FormError": errs.ErrorMessage(err),
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	admin := middleware.CurrentUser(c)
	slog.InfoContext(c.Request.Context(), "group created",
		slog.String("slug", group.Slug),
		slog.String("admin", admin.Username))

	h.renderGroups(c, gin.H{
		"Form":    services.GroupInput{},
		"Success": "Group " + group.Title + " created.",
	})
}

func (h *AdminHandler) renderGroups(c *gin.Context, data gin.H) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	data["Title"] = "Manage groups"
	data["Groups"] = groups
	Render(c, http.StatusOK, "admin/group_form.html", data)
}
