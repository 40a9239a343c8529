// Package server wires the gin engine: pages, the contact API, preferences
// and static assets.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/mail"
)

// Relayer forwards a contact submission. *mail.Relay implements it.
type Relayer interface {
	Relay(ctx context.Context, s mail.Submission) (string, error)
}

type Server struct {
	cfg    config.Config
	store  *content.Store
	tr     *i18n.Translator
	relay  Relayer
	render *htmlRenderer
}

func New(cfg config.Config, store *content.Store, tr *i18n.Translator, relay Relayer) (*Server, error) {
	r, err := newHTMLRenderer(webFS)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, store: store, tr: tr, relay: relay, render: r}, nil
}

// Handler builds the routed engine.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(s.recovered))
	r.HTMLRender = s.render

	static := http.FS(staticFS())
	r.StaticFS("/static", static)
	r.GET("/cv.pdf", func(c *gin.Context) {
		c.FileFromFS("/cv.pdf", static)
	})

	site := r.Group("/")
	site.Use(preferences(s.tr))
	{
		site.GET("/", s.home)
		site.GET("/blog", s.blog)
		site.GET("/blog/:slug", s.post)
		site.GET("/projects", s.projects)
		site.GET("/projects/:slug", s.project)
		site.GET("/resume", s.resume)
		site.GET("/resume/work", s.resumeWork)
		site.GET("/resume/education", s.resumeEducation)
		site.GET("/preferences/lang/:code", s.setLanguage)
		site.GET("/preferences/theme", s.toggleTheme)
	}

	api := r.Group("/api")
	api.Use(preferences(s.tr))
	if origins := s.cfg.Origins(); len(origins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
		api.OPTIONS("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	api.POST("/contact", s.contact)

	r.NoRoute(preferences(s.tr), s.notFound)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", srv.Addr, s.cfg.SiteURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
