package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"yatube/internal/db"
	"yatube/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	ctx context.Context
	db  *gorm.DB
	svc *Services
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &fixture{
		ctx: context.Background(),
		db:  conn,
		svc: New(conn, t.TempDir(), DefaultMaxUploadSize),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.svc.Users.Register(f.ctx, SignupInput{Username: username, Password: "1235678abc"})
	require.NoError(t, err)
	return user
}

func (f *fixture) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	group, err := f.svc.Groups.Create(f.ctx, GroupInput{Title: "Group " + slug, Slug: slug})
	require.NoError(t, err)
	return group
}

func (f *fixture) post(t *testing.T, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	in := PostInput{Text: text}
	if group != nil {
		in.GroupID = &group.ID
	}
	post, err := f.svc.Posts.Create(f.ctx, author, in)
	require.NoError(t, err)
	return post
}

func tinyImage() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	img.SetColorIndex(1, 1, 1)
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, tinyImage()))
	return buf.Bytes()
}

func gifBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, tinyImage(), nil))
	return buf.Bytes()
}
