package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/i18n"
)

const (
	langCookie  = "lang"
	themeCookie = "theme"
	prefMaxAge  = 365 * 24 * 3600

	ctxLang  = "lang"
	ctxTheme = "theme"

	themeDark  = "dark"
	themeLight = "light"
)

// preferences resolves the visitor's language and theme. Language comes from
// ?lang=, then the cookie, then Accept-Language.
func preferences(tr *i18n.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if q := c.Query("lang"); q != "" && tr.Supported(q) {
			lang = q
			c.SetCookie(langCookie, q, prefMaxAge, "/", "", false, true)
		} else if ck, err := c.Cookie(langCookie); err == nil && tr.Supported(ck) {
			lang = ck
		} else {
			lang = tr.Match(c.GetHeader("Accept-Language"))
		}

		theme := themeDark
		if ck, err := c.Cookie(themeCookie); err == nil && ck == themeLight {
			theme = themeLight
		}

		c.Set(ctxLang, lang)
		c.Set(ctxTheme, theme)
		c.Next()
	}
}

func langOf(c *gin.Context) string {
	if v := c.GetString(ctxLang); v != "" {
		return v
	}
	return i18n.Default
}

func themeOf(c *gin.Context) string {
	if v := c.GetString(ctxTheme); v != "" {
		return v
	}
	return themeDark
}

func (s *Server) setLanguage(c *gin.Context) {
	code := c.Param("code")
	if !s.tr.Supported(code) {
		c.String(http.StatusBadRequest, "unsupported language")
		return
	}
	c.SetCookie(langCookie, code, prefMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, backTo(c))
}

func (s *Server) toggleTheme(c *gin.Context) {
	next := themeLight
	if themeOf(c) == themeLight {
		next = themeDark
	}
	c.SetCookie(themeCookie, next, prefMaxAge, "/", "", false, false)
	c.Redirect(http.StatusFound, backTo(c))
}

// backTo returns the local path of the referring page, never another host.
// A lang query parameter is dropped so it cannot undo the new preference.
func backTo(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") ||
		(ref.Host != "" && ref.Host != c.Request.Host) {
		return "/"
	}
	q := ref.Query()
	q.Del("lang")
	if len(q) > 0 {
		return ref.Path + "?" + q.Encode()
	}
	return ref.Path
}
