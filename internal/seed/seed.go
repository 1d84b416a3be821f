// Package seed fills a development database with demo users, posts,
// comments and follows. It goes through the services so every record
// passes the same validation as user input.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password of every generated account.
const DemoPassword = "demo-password"

// Options sizes the generated data set.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	// Seed makes the output reproducible when non-zero.
	Seed int64
}

// Result counts what was created.
type Result struct {
	Users    int
	Posts    int
	Comments int
	Follows  int
}

// DefaultOptions is a small but paginated data set.
func DefaultOptions() Options {
	return Options{Users: 5, PostsPerUser: 4, CommentsPerPost: 2}
}

// Demo creates the data set described by opts.
func Demo(ctx context.Context, svc *services.Services, opts Options) (*Result, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)

	groups, err := svc.Groups.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := svc.Users.Register(ctx, services.SignupInput{
			Username:  username(i),
			Email:     gofakeit.Email(),
			Password:  DemoPassword,
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
		})
		if err != nil {
			return res, fmt.Errorf("create demo user: %w", err)
		}
		users = append(users, user)
		res.Users++
	}

	var posts []*models.Post
	for _, user := range users {
		for j := 0; j < opts.PostsPerUser; j++ {
			in := services.PostInput{Text: gofakeit.Paragraph(1, 3, 8, " ")}
			if len(groups) > 0 && gofakeit.Number(0, 2) > 0 {
				in.GroupID = &groups[gofakeit.Number(0, len(groups)-1)].ID
			}
			post, err := svc.Posts.Create(ctx, user, in)
			if err != nil {
				return res, fmt.Errorf("create demo post: %w", err)
			}
			posts = append(posts, post)
			res.Posts++
		}
	}

	if len(users) > 0 {
		for _, post := range posts {
			for k := 0; k < opts.CommentsPerPost; k++ {
				author := users[gofakeit.Number(0, len(users)-1)]
				if _, err := svc.Comments.Create(ctx, author, post.ID, gofakeit.Sentence(6)); err != nil {
					return res, fmt.Errorf("create demo comment: %w", err)
				}
				res.Comments++
			}
		}
	}

	// Every user follows the next one, so each follow feed has content.
	if len(users) > 1 {
		for i, user := range users {
			if err := svc.Follows.Follow(ctx, user, users[(i+1)%len(users)]); err != nil {
				return res, fmt.Errorf("create demo follow: %w", err)
			}
			res.Follows++
		}
	}

	slog.Info("demo data created",
		slog.Int("users", res.Users),
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
		slog.Int("follows", res.Follows))
	return res, nil
}

// username builds a valid, unique login from a fake name.
func username(i int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(gofakeit.FirstName()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		b.WriteString("user")
	}
	return fmt.Sprintf("%s_%d", b.String(), i+1)
}
