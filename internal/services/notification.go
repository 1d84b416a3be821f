package services

import (
	"context"
	"log/slog"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// NotificationService records comment and follower events for their receivers.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(conn *gorm.DB) *NotificationService {
	return &NotificationService{db: conn}
}

// List returns the latest notifications of user, newest first.
func (s *NotificationService) List(ctx context.Context, user *models.User) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Preload("Actor").Preload("Post").Preload("Post.Author").
		Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Limit(50).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(ctx context.Context, user *models.User) int64 {
	var count int64
	s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&count)
	return count
}

// MarkAllRead flags every unread notification of user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true).Error
}

// notify stores an event for receiverID. Self-notifications are skipped and
// failures are logged only: the triggering action has already succeeded.
func (s *NotificationService) notify(ctx context.Context, receiverID, actorID uint, kind models.NotificationType, postID *uint) {
	if receiverID == actorID {
		return
	}
	n := models.Notification{
		UserID:  receiverID,
		ActorID: actorID,
		Type:    kind,
		PostID:  postID,
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		slog.Error("failed to create notification",
			slog.String("type", string(kind)),
			slog.Uint64("receiver_id", uint64(receiverID)),
			slog.Any("error", err))
	}
}
