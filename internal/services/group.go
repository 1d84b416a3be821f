package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"yatube/internal/db"
	"yatube/internal/errs"
	"yatube/internal/models"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupInput is the admin group form.
type GroupInput struct {
	Title       string
	Slug        string
	Description string
}

// GroupService manages the group catalog.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(conn *gorm.DB) *GroupService {
	return &GroupService{db: conn}
}

// List returns all groups ordered by title.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).Order("title ASC, id ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupService) BySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "Group %s not found.", slug)
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Create validates and stores a new group.
func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)

	fields := map[string][]string{}
	if in.Title == "" {
		fields["title"] = []string{"This field is required."}
	}
	switch {
	case in.Slug == "":
		fields["slug"] = []string{"This field is required."}
	case !slugPattern.MatchString(in.Slug):
		fields["slug"] = []string{"Enter a valid slug consisting of letters, numbers, underscores or hyphens."}
	default:
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", in.Slug).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			fields["slug"] = []string{"Group with this slug already exists."}
		}
	}
	if len(fields) > 0 {
		return nil, errs.Invalid(fields)
	}

	group := &models.Group{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// Seed fills an empty catalog with slug/title pairs.
func (s *GroupService) Seed(ctx context.Context, pairs [][2]string) error {
	return db.SeedGroups(ctx, s.db, pairs)
}
