package content

import (
	"html/template"
	"time"
)

// Post is a blog post parsed from a Markdown file with front matter.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	Summary     string
	Tags        []string
	ReadingTime int // minutes
	HTML        template.HTML
}

// Project is one entry of the project gallery.
type Project struct {
	Slug        string        `yaml:"slug"`
	Title       string        `yaml:"title"`
	Year        int           `yaml:"year"`
	Featured    bool          `yaml:"featured"`
	Summary     string        `yaml:"summary"`
	Repository  string        `yaml:"repository"`
	Live        string        `yaml:"live"`
	Tech        []string      `yaml:"tech"`
	Description string        `yaml:"description"`
	HTML        template.HTML `yaml:"-"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type SkillGroup struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Profile holds the owner's details shown on the home page and in the footer.
type Profile struct {
	Name     string       `yaml:"name"`
	Role     string       `yaml:"role"`
	Location string       `yaml:"location"`
	Email    string       `yaml:"email"`
	Logo     string       `yaml:"logo"`
	CV       string       `yaml:"cv"`
	About    string       `yaml:"about"`
	Links    []Link       `yaml:"links"`
	Skills   []SkillGroup `yaml:"skills"`
}

// Entry is a résumé line item: a job or a degree.
type Entry struct {
	Title   string   `yaml:"title"`
	Company string   `yaml:"company"`
	Degree  string   `yaml:"degree"`
	School  string   `yaml:"institution"`
	Start   string   `yaml:"start"`
	End     string   `yaml:"end"`
	Logo    string   `yaml:"logo"`
	Bullets []string `yaml:"bullets"`
}

type Resume struct {
	Headline  string  `yaml:"headline"`
	Summary   string  `yaml:"summary"`
	Work      []Entry `yaml:"work"`
	Education []Entry `yaml:"education"`
}

// Site is an immutable snapshot of all content.
type Site struct {
	Profile  Profile
	Resume   Resume
	Posts    []*Post    // newest first
	Projects []*Project // file order

	postsBySlug    map[string]*Post
	projectsBySlug map[string]*Project
}
