package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/i18n"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Starts the HTTP server. Content is compiled into the binary unless
--content-dir points at a directory with the same layout; with --watch that
directory is reloaded whenever a file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "port to listen on (overrides PORT)")
	serveCmd.Flags().String("content-dir", "", "serve content from this directory instead of the embedded copy")
	serveCmd.Flags().Bool("watch", false, "reload content when files in --content-dir change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg := appConfig
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	gin.SetMode(cfg.GinMode)
	gin.DefaultWriter = log.Writer()
	gin.DefaultErrorWriter = log.Writer()

	var contentFS fs.FS = content.Embedded()
	if cfg.ContentDir != "" {
		contentFS = os.DirFS(cfg.ContentDir)
		log.Printf("Serving content from %s", cfg.ContentDir)
	}
	store, err := content.NewStore(contentFS)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	if cfg.Watch {
		if cfg.ContentDir == "" {
			log.Println("Warning: --watch has no effect without --content-dir")
		} else if err := content.Watch(ctx, cfg.ContentDir, store); err != nil {
			return fmt.Errorf("watch content: %w", err)
		}
	}

	tr, err := i18n.New()
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Println("Warning: SMTP_USER/SMTP_PASS not set, contact form submissions will fail")
	}
	sender := &mail.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		Timeout:  cfg.SMTPTimeout,
	}
	relay, err := mail.NewRelay(sender, mail.Config{
		From:      cfg.Sender(),
		Owner:     cfg.ToEmail,
		OwnerName: store.Site().Profile.Name,
	}, tr)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, store, tr, relay)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
