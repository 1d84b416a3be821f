package services

import (
	"context"
	"errors"

	"yatube/internal/errs"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// Profile is an author page: the author, their counters and a page of posts.
type Profile struct {
	Author         *models.User
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
	Following      bool
	Page           *Page[models.Post]
}

// PostView is a single post with its comments.
type PostView struct {
	Post            *models.Post
	AuthorPostCount int64
	Comments        []models.Comment
}

// FeedService builds the paginated post listings.
type FeedService struct {
	db       *gorm.DB
	users    *UserService
	groups   *GroupService
	follows  *FollowService
	comments *CommentService
}

func NewFeedService(conn *gorm.DB, users *UserService, groups *GroupService, follows *FollowService, comments *CommentService) *FeedService {
	return &FeedService{db: conn, users: users, groups: groups, follows: follows, comments: comments}
}

// Global lists every post, newest first.
func (s *FeedService) Global(ctx context.Context, number int) (*Page[models.Post], error) {
	return s.page(ctx, func(q *gorm.DB) *gorm.DB { return q }, number)
}

// ByGroup lists the posts tagged to the group with slug.
func (s *FeedService) ByGroup(ctx context.Context, slug string, number int) (*models.Group, *Page[models.Post], error) {
	group, err := s.groups.BySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.page(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("group_id = ?", group.ID)
	}, number)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ByAuthor builds the profile of username as seen by viewer (nil when anonymous).
func (s *FeedService) ByAuthor(ctx context.Context, username string, viewer *models.User, number int) (*Profile, error) {
	author, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	page, err := s.page(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id = ?", author.ID)
	}, number)
	if err != nil {
		return nil, err
	}
	profile := &Profile{Author: author, PostCount: page.Count, Page: page}
	if profile.FollowerCount, err = s.follows.FollowerCount(ctx, author); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.follows.FollowingCount(ctx, author); err != nil {
		return nil, err
	}
	if profile.Following, err = s.follows.IsFollowing(ctx, viewer, author); err != nil {
		return nil, err
	}
	return profile, nil
}

// Following lists posts of the authors viewer follows.
func (s *FeedService) Following(ctx context.Context, viewer *models.User, number int) (*Page[models.Post], error) {
	if viewer == nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Login required.")
	}
	followed := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", viewer.ID)
	return s.page(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("author_id IN (?)", followed)
	}, number)
}

// PostDetail loads post postID of username with its comments. A post that
// exists but belongs to someone else is reported as not found.
func (s *FeedService) PostDetail(ctx context.Context, username string, postID uint) (*PostView, error) {
	author, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	var post models.Post
	err = s.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Where("id = ? AND author_id = ?", postID, author.ID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "Post not found.")
	}
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	comments, err := s.comments.ForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.CommentCount = len(comments)
	return &PostView{Post: &post, AuthorPostCount: count, Comments: comments}, nil
}

// page counts the filtered posts, clamps number and loads that window.
func (s *FeedService) page(ctx context.Context, filter func(*gorm.DB) *gorm.DB, number int) (*Page[models.Post], error) {
	var count int64
	if err := filter(s.db.WithContext(ctx).Model(&models.Post{})).Count(&count).Error; err != nil {
		return nil, err
	}
	numPages := NumPages(count, PostsPerPage)
	number = ClampPage(number, numPages)

	var posts []models.Post
	err := filter(s.db.WithContext(ctx)).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset((number - 1) * PostsPerPage).
		Limit(PostsPerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	s.fillCommentCounts(ctx, posts)

	return &Page[models.Post]{
		Items:    posts,
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PerPage:  PostsPerPage,
	}, nil
}

// fillCommentCounts 批量填充帖子的评论数量
func (s *FeedService) fillCommentCounts(ctx context.Context, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}
