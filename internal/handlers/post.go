package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"yatube/internal/errs"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// postForm is what the create/edit form shows back to the user.
type postForm struct {
	Text    string
	GroupID uint
}

type PostHandler struct {
	svc *services.Services
}

func NewPostHandler(svc *services.Services) *PostHandler {
	return &PostHandler{svc: svc}
}

// Index is the global feed.
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.svc.Feeds.Global(c.Request.Context(), services.ParsePageNumber(c.Query("page")))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title": "Latest posts",
		"Page":  page,
	})
}

// GroupPosts lists the posts of one group.
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, page, err := h.svc.Feeds.ByGroup(c.Request.Context(), c.Param("slug"), services.ParsePageNumber(c.Query("page")))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/group.html", gin.H{
		"Title": group.Title,
		"Group": group,
		"Page":  page,
	})
}

// FollowIndex lists posts by the authors the current user follows.
func (h *PostHandler) FollowIndex(c *gin.Context) {
	user := middleware.CurrentUser(c)
	page, err := h.svc.Feeds.Following(c.Request.Context(), user, services.ParsePageNumber(c.Query("page")))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title": "Following",
		"Page":  page,
	})
}

// PostView shows a single post with its comments.
func (h *PostHandler) PostView(c *gin.Context) {
	postID, ok := utils.StringToUint(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	view, err := h.svc.Feeds.PostDetail(c.Request.Context(), c.Param("username"), postID)
	if err != nil {
		handleError(c, err)
		return
	}
	h.renderPost(c, view, "", nil)
}

func (h *PostHandler) renderPost(c *gin.Context, view *services.PostView, commentText string, commentErrors map[string][]string) {
	user := middleware.CurrentUser(c)
	Render(c, http.StatusOK, "posts/post.html", gin.H{
		"Title":         fmt.Sprintf("Post by %s", view.Post.Author.Username),
		"View":          view,
		"CanEdit":       user != nil && user.ID == view.Post.AuthorID,
		"CommentText":   commentText,
		"CommentErrors": commentErrors,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, gin.H{
		"Title":  "New post",
		"Action": "/new/",
		"Form":   postForm{},
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	in, form, err := h.bindPost(c)
	if err != nil {
		handleError(c, err)
		return
	}

	_, err = h.svc.Posts.Create(c.Request.Context(), user, in)
	if errs.ErrorCode(err) == errs.EINVALID {
		h.renderForm(c, gin.H{
			"Title":     "New post",
			"Action":    "/new/",
			"Form":      form,
			"Errors":    errs.FieldErrors(err),
			"FormError": errs.ErrorMessage(err),
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// loadOwnPost loads the post addressed by the URL. It renders a 404 when the
// post does not exist under that username and redirects non-authors to the
// post page; ok is false in both cases.
func (h *PostHandler) loadOwnPost(c *gin.Context) (*models.Post, bool) {
	username := c.Param("username")
	postID, ok := utils.StringToUint(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.svc.Posts.ByID(c.Request.Context(), postID)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	if post.Author.Username != username {
		NotFound(c)
		return nil, false
	}

	user := middleware.CurrentUser(c)
	if user == nil || user.ID != post.AuthorID {
		c.Redirect(http.StatusFound, postURL(post))
		return nil, false
	}
	return post, true
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}
	form := postForm{Text: post.Text}
	if post.GroupID != nil {
		form.GroupID = *post.GroupID
	}
	h.renderForm(c, gin.H{
		"Title":  "Edit post",
		"IsEdit": true,
		"Action": postURL(post) + "edit/",
		"Post":   post,
		"Form":   form,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.loadOwnPost(c)
	if !ok {
		return
	}

	in, form, err := h.bindPost(c)
	if err != nil {
		handleError(c, err)
		return
	}
	in.ClearImage = c.PostForm("image-clear") != ""

	updated, err := h.svc.Posts.Update(c.Request.Context(), middleware.CurrentUser(c), post.ID, in)
	if errs.ErrorCode(err) == errs.EINVALID {
		h.renderForm(c, gin.H{
			"Title":     "Edit post",
			"IsEdit":    true,
			"Action":    postURL(post) + "edit/",
			"Post":      post,
			"Form":      form,
			"Errors":    errs.FieldErrors(err),
			"FormError": errs.ErrorMessage(err),
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postURL(updated))
}

// AddComment stores a comment and returns to the post page.
func (h *PostHandler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID, ok := utils.StringToUint(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	ctx := c.Request.Context()

	view, err := h.svc.Feeds.PostDetail(ctx, c.Param("username"), postID)
	if err != nil {
		handleError(c, err)
		return
	}

	text := c.PostForm("text")
	_, err = h.svc.Comments.Create(ctx, user, postID, text)
	if errs.ErrorCode(err) == errs.EINVALID {
		h.renderPost(c, view, text, errs.FieldErrors(err))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, postURL(view.Post))
}

func (h *PostHandler) renderForm(c *gin.Context, data gin.H) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	data["Groups"] = groups
	Render(c, http.StatusOK, "posts/post_form.html", data)
}

// bindPost reads the multipart post form.
func (h *PostHandler) bindPost(c *gin.Context) (services.PostInput, postForm, error) {
	in := services.PostInput{Text: c.PostForm("text")}
	form := postForm{Text: in.Text}

	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		// An unparsable id becomes 0, which the group check rejects.
		id, _ := utils.StringToUint(raw)
		in.GroupID = &id
		form.GroupID = id
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, form, nil
	}
	if err != nil {
		return in, form, errs.Errorf(errs.EINVALID, "The submitted data was not a file.")
	}

	file, err := header.Open()
	if err != nil {
		return in, form, err
	}
	defer file.Close()

	// Read one byte past the limit so oversize uploads still fail validation.
	content, err := io.ReadAll(io.LimitReader(file, h.svc.Images.MaxUploadSize()+1))
	if err != nil {
		return in, form, err
	}
	in.Image = &services.ImageUpload{Filename: header.Filename, Content: content}
	return in, form, nil
}

func postURL(post *models.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}
