package services

import (
	"gorm.io/gorm"
)

// Services bundles every domain service over one database handle.
type Services struct {
	Users         *UserService
	Groups        *GroupService
	Posts         *PostService
	Comments      *CommentService
	Follows       *FollowService
	Feeds         *FeedService
	Notifications *NotificationService
	Images        *ImageService
}

// New wires the services. mediaRoot and maxUploadSize configure image storage.
func New(conn *gorm.DB, mediaRoot string, maxUploadSize int64) *Services {
	notifications := NewNotificationService(conn)
	images := NewImageService(mediaRoot, maxUploadSize)
	users := NewUserService(conn)
	groups := NewGroupService(conn)
	posts := NewPostService(conn, images)
	comments := NewCommentService(conn, posts, notifications)
	follows := NewFollowService(conn, notifications)

	return &Services{
		Users:         users,
		Groups:        groups,
		Posts:         posts,
		Comments:      comments,
		Follows:       follows,
		Feeds:         NewFeedService(conn, users, groups, follows, comments),
		Notifications: notifications,
		Images:        images,
	}
}
