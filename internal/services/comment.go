package services

import (
	"context"
	"strings"

	"yatube/internal/errs"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// CommentService adds comments to posts.
type CommentService struct {
	db            *gorm.DB
	posts         *PostService
	notifications *NotificationService
}

func NewCommentService(conn *gorm.DB, posts *PostService, notifications *NotificationService) *CommentService {
	return &CommentService{db: conn, posts: posts, notifications: notifications}
}

// Create appends a comment by author to the post and notifies the post author.
func (s *CommentService) Create(ctx context.Context, author *models.User, postID uint, text string) (*models.Comment, error) {
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Invalid(map[string][]string{"text": {"This field is required."}})
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	comment.Author = *author

	if s.notifications != nil {
		s.notifications.notify(ctx, post.AuthorID, author.ID, models.NotificationTypeCommentPost, &post.ID)
	}
	return comment, nil
}

// ForPost lists the comments of a post, oldest first.
func (s *CommentService) ForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
