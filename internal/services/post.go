package services

import (
	"context"
	"errors"
	"strings"

	"yatube/internal/errs"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// PostInput is the create/edit form. A nil Image keeps the current one.
type PostInput struct {
	Text       string
	GroupID    *uint
	Image      *ImageUpload
	ClearImage bool
}

// PostService creates and edits posts.
type PostService struct {
	db     *gorm.DB
	images *ImageService
}

func NewPostService(conn *gorm.DB, images *ImageService) *PostService {
	return &PostService{db: conn, images: images}
}

// A postValFn checks one aspect of a PostInput and records field messages.
type postValFn = func(ctx context.Context, in *PostInput, fields map[string][]string) error

// runPostValFns runs every check and returns EINVALID when any field failed.
func runPostValFns(ctx context.Context, in *PostInput, fns ...postValFn) error {
	fields := map[string][]string{}
	for _, fn := range fns {
		if err := fn(ctx, in, fields); err != nil {
			return err
		}
	}
	if len(fields) > 0 {
		return errs.Invalid(fields)
	}
	return nil
}

func (s *PostService) textRequired(_ context.Context, in *PostInput, fields map[string][]string) error {
	if strings.TrimSpace(in.Text) == "" {
		fields["text"] = append(fields["text"], "This field is required.")
	}
	return nil
}

func (s *PostService) groupExists(ctx context.Context, in *PostInput, fields map[string][]string) error {
	if in.GroupID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *in.GroupID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		fields["group"] = append(fields["group"], "Select a valid choice. That choice is not one of the available choices.")
	}
	return nil
}

func (s *PostService) imageValid(_ context.Context, in *PostInput, fields map[string][]string) error {
	if in.Image == nil {
		return nil
	}
	if _, err := s.images.Validate(in.Image); err != nil {
		if errs.ErrorCode(err) != errs.EINVALID {
			return err
		}
		fields["image"] = append(fields["image"], errs.ErrorMessage(err))
	}
	return nil
}

// Create validates the form and stores a post authored by author.
func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	if err := runPostValFns(ctx, &in, s.textRequired, s.groupExists, s.imageValid); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: author.ID,
		GroupID:  in.GroupID,
	}
	if in.Image != nil {
		rel, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = rel
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		s.images.Remove(post.Image)
		return nil, err
	}
	return s.ByID(ctx, post.ID)
}

// Update edits text, group and image of a post. Only its author may edit;
// the author and creation time never change.
func (s *PostService) Update(ctx context.Context, editor *models.User, postID uint, in PostInput) (*models.Post, error) {
	post, err := s.ByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if editor == nil || post.AuthorID != editor.ID {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Only the author can edit this post.")
	}
	if err := runPostValFns(ctx, &in, s.textRequired, s.groupExists, s.imageValid); err != nil {
		return post, err
	}

	oldImage := post.Image
	newImage := oldImage
	switch {
	case in.Image != nil:
		rel, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		newImage = rel
	case in.ClearImage:
		newImage = ""
	}

	err = s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     in.Text,
			"group_id": in.GroupID,
			"image":    newImage,
		}).Error
	if err != nil {
		if newImage != oldImage {
			s.images.Remove(newImage)
		}
		return nil, err
	}
	if newImage != oldImage {
		s.images.Remove(oldImage)
	}
	return s.ByID(ctx, post.ID)
}

// ByID loads a post with its author and group.
func (s *PostService) ByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "Post not found.")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
