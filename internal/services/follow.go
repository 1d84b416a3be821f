package services

import (
	"context"

	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowService maintains the follower graph.
type FollowService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewFollowService(conn *gorm.DB, notifications *NotificationService) *FollowService {
	return &FollowService{db: conn, notifications: notifications}
}

// IsFollowing reports whether viewer follows author. Anonymous viewers follow nobody.
func (s *FollowService) IsFollowing(ctx context.Context, viewer, author *models.User) (bool, error) {
	if viewer == nil || author == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", viewer.ID, author.ID).
		Count(&count).Error
	return count > 0, err
}

// Follow subscribes user to author. Following oneself and following twice are no-ops.
func (s *FollowService) Follow(ctx context.Context, user, author *models.User) error {
	if user.ID == author.ID {
		return nil
	}
	follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 && s.notifications != nil {
		s.notifications.notify(ctx, author.ID, user.ID, models.NotificationTypeNewFollower, nil)
	}
	return nil
}

// Unfollow removes the edge if present.
func (s *FollowService) Unfollow(ctx context.Context, user, author *models.User) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", user.ID, author.ID).
		Delete(&models.Follow{}).Error
}

// FollowerCount is how many users follow author.
func (s *FollowService) FollowerCount(ctx context.Context, author *models.User) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&count).Error
	return count, err
}

// FollowingCount is how many authors user follows.
func (s *FollowService) FollowingCount(ctx context.Context, user *models.User) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", user.ID).Count(&count).Error
	return count, err
}
