package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	profileFile  = "profile.yaml"
	projectsFile = "projects.yaml"
	resumeFile   = "resume.yaml"
	postsDir     = "posts"
)

var ErrNotFound = errors.New("content not found")

var dateFormats = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

type frontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	Draft   bool     `yaml:"draft"`
}

// Load reads a complete content tree from fsys.
func Load(fsys fs.FS) (*Site, error) {
	site := &Site{}

	if err := readYAML(fsys, profileFile, &site.Profile); err != nil {
		return nil, err
	}
	if err := readYAML(fsys, resumeFile, &site.Resume); err != nil {
		return nil, err
	}

	var projects struct {
		Projects []*Project `yaml:"projects"`
	}
	if err := readYAML(fsys, projectsFile, &projects); err != nil {
		return nil, err
	}
	site.Projects = projects.Projects
	site.projectsBySlug = make(map[string]*Project, len(site.Projects))
	for _, p := range site.Projects {
		if p.Slug == "" {
			return nil, fmt.Errorf("%s: project %q has no slug", projectsFile, p.Title)
		}
		if _, dup := site.projectsBySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%s: duplicate project slug %q", projectsFile, p.Slug)
		}
		html, err := renderMarkdown([]byte(p.Description))
		if err != nil {
			return nil, fmt.Errorf("render project %q: %w", p.Slug, err)
		}
		p.HTML = html
		site.projectsBySlug[p.Slug] = p
	}

	posts, err := loadPosts(fsys)
	if err != nil {
		return nil, err
	}
	site.Posts = posts
	site.postsBySlug = make(map[string]*Post, len(posts))
	for _, p := range posts {
		if _, dup := site.postsBySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		site.postsBySlug[p.Slug] = p
	}

	return site, nil
}

func readYAML(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func loadPosts(fsys fs.FS) ([]*Post, error) {
	entries, err := fs.ReadDir(fsys, postsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", postsDir, err)
	}

	var posts []*Post
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		p, err := parsePost(fsys, path.Join(postsDir, e.Name()))
		if err != nil {
			return nil, err
		}
		if p != nil {
			posts = append(posts, p)
		}
	}

	// Newest first; undated posts sink to the bottom.
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.IsZero() {
			return false
		}
		if posts[j].Date.IsZero() {
			return true
		}
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// parsePost returns nil for drafts.
func parsePost(fsys fs.FS, name string) (*Post, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, fmt.Errorf("front matter %s: %w", name, err)
	}
	if fm.Draft {
		return nil, nil
	}

	html, err := renderMarkdown(body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
	title := fm.Title
	if title == "" {
		title = titleFromSlug(slug)
	}

	var date time.Time
	if fm.Date != "" {
		date, err = parseDate(fm.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return &Post{
		Slug:        slug,
		Title:       title,
		Date:        date,
		Summary:     fm.Summary,
		Tags:        fm.Tags,
		ReadingTime: readingTime(body),
		HTML:        html,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, use YYYY-MM-DD or RFC3339", s)
}

func titleFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(s)
}

// Post looks a post up by slug.
func (s *Site) Post(slug string) (*Post, error) {
	if p, ok := s.postsBySlug[slug]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
}

// Project looks a project up by slug.
func (s *Site) Project(slug string) (*Project, error) {
	if p, ok := s.projectsBySlug[slug]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("project %q: %w", slug, ErrNotFound)
}

// Featured returns the featured projects in file order.
func (s *Site) Featured() []*Project {
	var out []*Project
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Latest returns at most n posts, newest first.
func (s *Site) Latest(n int) []*Post {
	if n > len(s.Posts) {
		n = len(s.Posts)
	}
	return s.Posts[:n]
}
