package server

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

const baseLayout = "base"

// htmlRenderer clones the shared layout and partials once per page so each
// page can define its own "content" block. Names that are not pages are
// looked up as partials, which is how fragments are served.
type htmlRenderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"join": strings.Join,
	"withPage": func(p PageData, item any) map[string]any {
		return map[string]any{"Page": p, "Item": item}
	},
}

func newHTMLRenderer(fsys fs.FS) (*htmlRenderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(fsys,
		"web/templates/layouts/*.html",
		"web/templates/partials/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	files, err := fs.Glob(fsys, "web/templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[path.Base(f)] = clone
	}

	return &htmlRenderer{base: base, pages: pages}, nil
}

func (r *htmlRenderer) Instance(name string, data any) render.Render {
	if page, ok := r.pages[name]; ok {
		return render.HTML{Template: page, Name: baseLayout, Data: data}
	}
	return render.HTML{Template: r.base, Name: name, Data: data}
}
