package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/content"
)

const latestPosts = 3

type homeData struct {
	Featured []*content.Project
	Posts    []*content.Post
}

func (s *Server) home(c *gin.Context) {
	site := s.store.Site()
	c.HTML(http.StatusOK, "home.html", s.page(c, "", "home", homeData{
		Featured: site.Featured(),
		Posts:    site.Latest(latestPosts),
	}))
}

func (s *Server) blog(c *gin.Context) {
	p := s.page(c, "", "blog", s.store.Site().Posts)
	p.Title = p.T("blog.title")
	c.HTML(http.StatusOK, "blog.html", p)
}

func (s *Server) post(c *gin.Context) {
	post, err := s.store.Site().Post(c.Param("slug"))
	if err != nil {
		s.lookupFailed(c, err)
		return
	}
	c.HTML(http.StatusOK, "post.html", s.page(c, post.Title, "blog", post))
}

func (s *Server) projects(c *gin.Context) {
	p := s.page(c, "", "projects", s.store.Site().Projects)
	p.Title = p.T("projects.title")
	c.HTML(http.StatusOK, "projects.html", p)
}

func (s *Server) project(c *gin.Context) {
	project, err := s.store.Site().Project(c.Param("slug"))
	if err != nil {
		s.lookupFailed(c, err)
		return
	}
	c.HTML(http.StatusOK, "project.html", s.page(c, project.Title, "projects", project))
}

func (s *Server) resume(c *gin.Context) {
	p := s.page(c, "", "resume", s.store.Site().Resume)
	p.Title = p.T("resume.title")
	c.HTML(http.StatusOK, "resume.html", p)
}

// Résumé sections are HTML fragments swapped into the page by htmx.
func (s *Server) resumeWork(c *gin.Context) {
	c.HTML(http.StatusOK, "work-content", s.page(c, "", "resume", s.store.Site().Resume.Work))
}

func (s *Server) resumeEducation(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content", s.page(c, "", "resume", s.store.Site().Resume.Education))
}

func (s *Server) lookupFailed(c *gin.Context, err error) {
	if errors.Is(err, content.ErrNotFound) {
		s.notFound(c)
		return
	}
	log.Printf("Error loading %s: %v", c.Request.URL.Path, err)
	s.renderError(c, http.StatusInternalServerError)
}

func (s *Server) notFound(c *gin.Context) {
	s.renderError(c, http.StatusNotFound)
}

func (s *Server) renderError(c *gin.Context, code int) {
	p := s.page(c, "", "", nil)
	titleKey, messageKey := "error.server.title", "error.server.message"
	if code == http.StatusNotFound {
		titleKey, messageKey = "error.notfound.title", "error.notfound.message"
	}
	p.Title = p.T(titleKey)
	p.Data = gin.H{"Code": code, "Message": p.T(messageKey)}
	c.HTML(code, "error.html", p)
}

func (s *Server) recovered(c *gin.Context, rec any) {
	log.Printf("Panic serving %s: %v", c.Request.URL.Path, rec)
	if c.Writer.Written() {
		c.Abort()
		return
	}
	s.renderError(c, http.StatusInternalServerError)
	c.Abort()
}
