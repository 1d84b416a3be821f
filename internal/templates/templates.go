// Package templates holds the HTML views and registers them with the
// multitemplate renderer used by gin.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/url"
	"path"
	"time"

	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

//go:embed views
var files embed.FS

// Views maps render names to their view file under views/.
var Views = map[string]string{
	"posts/index.html":       "views/posts/index.html",
	"posts/follow.html":      "views/posts/follow.html",
	"posts/group.html":       "views/posts/group.html",
	"posts/groups.html":      "views/posts/groups.html",
	"posts/profile.html":     "views/posts/profile.html",
	"posts/post.html":        "views/posts/post.html",
	"posts/post_form.html":   "views/posts/post_form.html",
	"auth/login.html":        "views/auth/login.html",
	"auth/signup.html":       "views/auth/signup.html",
	"notification/list.html": "views/notification/list.html",
	"admin/group_form.html":  "views/admin/group_form.html",
	"error.html":             "views/error.html",
}

// FuncMap is shared by every view.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo":   timeAgo,
		"markdown":  utils.RenderMarkdown,
		"urlquery":  url.QueryEscape,
		"errorsFor": errorsFor,
	}
}

// Load parses the layout, includes and every view into a renderer.
// The layout is parsed first so it stays the root of each template set.
func Load() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	funcMap := FuncMap()

	shared, err := sharedSources()
	if err != nil {
		return nil, err
	}

	for name, view := range Views {
		src, err := fs.ReadFile(files, view)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", view, err)
		}
		tmpl := template.New(name).Funcs(funcMap)
		for _, s := range append(shared, string(src)) {
			if tmpl, err = tmpl.Parse(s); err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
		}
		r.Add(name, tmpl)
	}
	return r, nil
}

func sharedSources() ([]string, error) {
	var sources []string
	for _, pattern := range []string{"views/layouts/*.html", "views/includes/*.html"} {
		matches, err := fs.Glob(files, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			src, err := fs.ReadFile(files, m)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path.Base(m), err)
			}
			sources = append(sources, string(src))
		}
	}
	return sources, nil
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// errorsFor returns the messages for field, tolerating a missing map.
func errorsFor(fields interface{}, field string) []string {
	if m, ok := fields.(map[string][]string); ok {
		return m[field]
	}
	return nil
}
