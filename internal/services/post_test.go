package services

import (
	"os"
	"path/filepath"
	"testing"

	"yatube/internal/errs"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost_Create(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	group := f.group(t, "cats")

	post, err := f.svc.Posts.Create(f.ctx, author, PostInput{
		Text:    "тестовое сообщение поста",
		GroupID: &group.ID,
		Image:   &ImageUpload{Filename: "small.gif", Content: gifBytes(t)},
	})
	require.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "leo", post.Author.Username)
	require.True(t, post.HasGroup())
	assert.Equal(t, "cats", post.Group.Slug)
	assert.Regexp(t, `^posts/[0-9a-f-]+\.gif$`, post.Image)

	_, err = os.Stat(filepath.Join(f.svc.Images.MediaRoot(), filepath.FromSlash(post.Image)))
	assert.NoError(t, err)
}

func TestPost_CreateValidation(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	missing := uint(999)

	_, err := f.svc.Posts.Create(f.ctx, author, PostInput{
		Text:    "   ",
		GroupID: &missing,
		Image:   &ImageUpload{Filename: "notes.txt", Content: []byte("plain text")},
	})
	require.Error(t, err)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	fields := errs.FieldErrors(err)
	assert.Contains(t, fields, "text")
	assert.Contains(t, fields, "group")
	assert.Equal(t, []string{InvalidImageMessage}, fields["image"])

	var count int64
	f.db.Model(&models.Post{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPost_UpdateKeepsAuthor(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	group := f.group(t, "cats")
	post := f.post(t, author, "old text", group)

	updated, err := f.svc.Posts.Update(f.ctx, author, post.ID, PostInput{Text: "новое сообщение тестового поста"})
	require.NoError(t, err)
	assert.Equal(t, "новое сообщение тестового поста", updated.Text)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.Nil(t, updated.GroupID)
	assert.True(t, post.CreatedAt.Equal(updated.CreatedAt))

	var count int64
	f.db.Model(&models.Post{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPost_UpdateByOtherUser(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	other := f.user(t, "anna")
	post := f.post(t, author, "mine", nil)

	_, err := f.svc.Posts.Update(f.ctx, other, post.ID, PostInput{Text: "hijacked"})
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))

	reloaded, err := f.svc.Posts.ByID(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", reloaded.Text)

	_, err = f.svc.Posts.Update(f.ctx, author, 4242, PostInput{Text: "x"})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestPost_UpdateImage(t *testing.T) {
	f := setup(t)
	author := f.user(t, "leo")
	post, err := f.svc.Posts.Create(f.ctx, author, PostInput{
		Text:  "with image",
		Image: &ImageUpload{Filename: "a.png", Content: pngBytes(t)},
	})
	require.NoError(t, err)
	original := post.Image

	// No upload keeps the image.
	kept, err := f.svc.Posts.Update(f.ctx, author, post.ID, PostInput{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, original, kept.Image)

	replaced, err := f.svc.Posts.Update(f.ctx, author, post.ID, PostInput{
		Text:  "edited",
		Image: &ImageUpload{Filename: "b.gif", Content: gifBytes(t)},
	})
	require.NoError(t, err)
	assert.NotEqual(t, original, replaced.Image)
	_, err = os.Stat(filepath.Join(f.svc.Images.MediaRoot(), filepath.FromSlash(original)))
	assert.True(t, os.IsNotExist(err))

	cleared, err := f.svc.Posts.Update(f.ctx, author, post.ID, PostInput{Text: "edited", ClearImage: true})
	require.NoError(t, err)
	assert.Empty(t, cleared.Image)
}
