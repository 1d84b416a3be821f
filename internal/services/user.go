package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"yatube/internal/errs"
	"yatube/internal/models"
	"yatube/internal/utils"

	"gorm.io/gorm"
)

const (
	MaxUsernameLength = 150
	MinPasswordLength = 8
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// reservedUsernames collide with top-level routes.
var reservedUsernames = map[string]bool{
	"new":           true,
	"follow":        true,
	"group":         true,
	"groups":        true,
	"auth":          true,
	"media":         true,
	"static":        true,
	"metrics":       true,
	"notifications": true,
	"admin":         true,
}

// SignupInput is the registration form.
type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService manages accounts.
type UserService struct {
	db *gorm.DB
}

func NewUserService(conn *gorm.DB) *UserService {
	return &UserService{db: conn}
}

// Register validates the form and creates the account with a bcrypt hash.
func (s *UserService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	fields := map[string][]string{}
	switch {
	case in.Username == "":
		fields["username"] = append(fields["username"], "This field is required.")
	case utf8.RuneCountInString(in.Username) > MaxUsernameLength:
		fields["username"] = append(fields["username"], "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(in.Username):
		fields["username"] = append(fields["username"], "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	case reservedUsernames[strings.ToLower(in.Username)]:
		fields["username"] = append(fields["username"], "This username is reserved.")
	default:
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			fields["username"] = append(fields["username"], "A user with that username already exists.")
		}
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		fields["password"] = append(fields["password"], "This password is too short. It must contain at least 8 characters.")
	}
	if len(fields) > 0 {
		return nil, errs.Invalid(fields)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose credentials match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(password, user.Password) {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Please enter a correct username and password.")
	}
	return &user, nil
}

func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "User %s not found.", username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.Errorf(errs.ENOTFOUND, "User not found.")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRole changes the account role, used to promote administrators.
func (s *UserService) SetRole(ctx context.Context, user *models.User, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return errs.Errorf(errs.EINVALID, "Unknown role %s.", role)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("role", role).Error; err != nil {
		return err
	}
	user.Role = role
	return nil
}
