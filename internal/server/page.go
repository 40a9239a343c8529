package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/i18n"
)

// PageData is what every template receives.
type PageData struct {
	SiteTitle string
	Title     string
	Nav       string
	Lang      string
	Theme     string
	Languages []string
	Path      string
	Year      int
	Site      *content.Site
	Data      any

	tr *i18n.Translator
}

// T translates key into the page language.
func (p PageData) T(key string) string {
	return p.tr.T(p.Lang, key)
}

func (s *Server) page(c *gin.Context, title, nav string, data any) PageData {
	return PageData{
		SiteTitle: s.cfg.SiteTitle,
		Title:     title,
		Nav:       nav,
		Lang:      langOf(c),
		Theme:     themeOf(c),
		Languages: s.tr.Languages(),
		Path:      c.Request.URL.Path,
		Year:      time.Now().Year(),
		Site:      s.store.Site(),
		Data:      data,
		tr:        s.tr,
	}
}
