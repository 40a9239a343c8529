package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the decoded runtime configuration. Keys mirror the environment
// variables the site has always read (PORT, SMTP_HOST, ...) lower-cased.
type Config struct {
	Port       int    `mapstructure:"port"`
	GinMode    string `mapstructure:"gin_mode"`
	SiteTitle  string `mapstructure:"site_title"`
	SiteURL    string `mapstructure:"site_url"`
	ContentDir string `mapstructure:"content_dir"`
	Watch      bool   `mapstructure:"watch"`

	// Comma separated list; empty disables CORS on the API group.
	CORSOrigins string `mapstructure:"cors_origins"`

	SMTPHost    string        `mapstructure:"smtp_host"`
	SMTPPort    int           `mapstructure:"smtp_port"`
	SMTPUser    string        `mapstructure:"smtp_user"`
	SMTPPass    string        `mapstructure:"smtp_pass"`
	EmailFrom   string        `mapstructure:"email_from"`
	ToEmail     string        `mapstructure:"to_email"`
	SMTPTimeout time.Duration `mapstructure:"smtp_timeout"`
}

// Defaults are applied before the config file and the environment.
var Defaults = map[string]any{
	"port":         8080,
	"gin_mode":     "debug",
	"site_title":   "Zach Kordas-Potter",
	"site_url":     "http://localhost:8080",
	"content_dir":  "",
	"watch":        false,
	"cors_origins": "",
	"smtp_host":    "smtp.gmail.com",
	"smtp_port":    587,
	"smtp_user":    "",
	"smtp_pass":    "",
	"email_from":   "",
	"to_email":     "zachkordaspotter@gmail.com",
	"smtp_timeout": "15s",
}

// Origins splits CORSOrigins into a clean list.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Sender returns the envelope sender, falling back to the SMTP user.
func (c Config) Sender() string {
	if c.EmailFrom != "" {
		return c.EmailFrom
	}
	return c.SMTPUser
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate catches settings that would make the server unusable. Missing SMTP
// credentials are not an error here: the site still serves pages and the
// contact endpoint reports a relay failure.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("invalid smtp port %d", c.SMTPPort)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.GinMode)
	}
	if c.SMTPTimeout < 0 {
		return fmt.Errorf("smtp timeout must not be negative")
	}
	return nil
}
