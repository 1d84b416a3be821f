package templates

import (
	"net/http/httptest"
	"testing"
	"time"

	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RegistersEveryView(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)
	for name := range Views {
		assert.NotNil(t, r.Instance(name, gin.H{}), name)
	}
}

func TestRender_Index(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	group := &models.Group{ID: 1, Title: "Cats", Slug: "cats"}
	groupID := group.ID
	page := services.Paginate([]models.Post{{
		ID:        7,
		Text:      "тестовое сообщение поста",
		Image:     "posts/a.gif",
		CreatedAt: time.Now(),
		Author:    models.User{ID: 1, Username: "leo"},
		GroupID:   &groupID,
		Group:     group,
	}}, 1, services.PostsPerPage)

	w := httptest.NewRecorder()
	err = r.Instance("posts/index.html", gin.H{
		"Title":       "Latest posts",
		"Page":        page,
		"CurrentPath": "/",
	}).Render(w)
	require.NoError(t, err)

	body := w.Body.String()
	assert.Contains(t, body, "тестовое сообщение поста")
	assert.Contains(t, body, `<img class="card-img" src="/media/posts/a.gif"`)
	assert.Contains(t, body, `href="/group/cats/"`)
	assert.Contains(t, body, `href="/leo/7/"`)
	assert.Contains(t, body, "Log in")
}

func TestRender_FormWithoutErrors(t *testing.T) {
	r, err := Load()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = r.Instance("posts/post_form.html", gin.H{
		"Form":        gin.H{"Text": "", "GroupID": uint(0)},
		"Action":      "/new/",
		"CurrentPath": "/new/",
		"CurrentUser": &models.User{ID: 1, Username: "leo"},
		"UnreadCount": 0,
	}).Render(w)
	require.NoError(t, err)
	assert.Contains(t, w.Body.String(), `name="image"`)
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "just now", timeAgo(time.Now()))
	assert.Equal(t, "1 hour ago", timeAgo(time.Now().Add(-61*time.Minute)))
	assert.Equal(t, "3 days ago", timeAgo(time.Now().Add(-73*time.Hour)))
}
