// Package mail relays contact form submissions through SMTP: a notification
// to the site owner followed by an acknowledgment to the visitor.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"log"
	"text/template"
	"time"

	"github.com/google/uuid"
)

//go:embed templates/*.txt
var templateFS embed.FS

// Translator supplies localized strings such as the acknowledgment subject.
type Translator interface {
	T(lang, key string) string
}

// Submission is one contact form post. Subject and Lang are optional.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
	Lang    string
}

// Config names the addresses the relay sends from and to.
type Config struct {
	From      string // envelope and header sender
	Owner     string // receives notifications
	OwnerName string // signs acknowledgments
}

// Relay turns a contact submission into the owner notification and the acknowledgment.
type Relay struct {
	sender Sender
	cfg    Config
	tr     Translator
	tmpl   *template.Template
	now    func() time.Time
}

// NewRelay parses the embedded mail templates and returns a Relay sending through sender.
func NewRelay(sender Sender, cfg Config, tr Translator) (*Relay, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Relay{sender: sender, cfg: cfg, tr: tr, tmpl: tmpl, now: time.Now}, nil
}

type templateData struct {
	Submission
	Ref   string
	Owner string
}

// Relay sends the owner notification, then the acknowledgment. Both sends
// happen in order and the first failure stops the relay. The returned
// reference is set even on failure so callers can log it.
func (r *Relay) Relay(ctx context.Context, s Submission) (string, error) {
	ref := uuid.NewString()
	data := templateData{Submission: s, Ref: ref, Owner: r.cfg.OwnerName}

	notification, err := r.notification(ref, data)
	if err != nil {
		return ref, err
	}
	if err := r.sender.Send(ctx, notification); err != nil {
		return ref, fmt.Errorf("send notification: %w", err)
	}
	log.Printf("[%s] Notification sent to owner for %s (%s)", ref, clean(s.Name), clean(s.Email))

	ack, err := r.acknowledgment(ref, data)
	if err != nil {
		return ref, err
	}
	if err := r.sender.Send(ctx, ack); err != nil {
		return ref, fmt.Errorf("send acknowledgment (owner notification already delivered): %w", err)
	}
	log.Printf("[%s] Acknowledgment sent to %s", ref, clean(s.Email))

	return ref, nil
}

func (r *Relay) notification(ref string, data templateData) (*Message, error) {
	subject := data.Subject
	if subject == "" {
		subject = data.Name
	}
	body, err := r.render("notification.txt", data)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:      messageID(ref, "notify", r.cfg.From),
		From:    r.cfg.From,
		To:      []string{r.cfg.Owner},
		ReplyTo: data.Email,
		Subject: "Portfolio Contact: " + subject,
		Body:    body,
		Date:    r.now(),
	}, nil
}

func (r *Relay) acknowledgment(ref string, data templateData) (*Message, error) {
	name := "ack." + data.Lang + ".txt"
	if r.tmpl.Lookup(name) == nil {
		name = "ack.en.txt"
	}
	body, err := r.render(name, data)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:      messageID(ref, "ack", r.cfg.From),
		From:    r.cfg.From,
		To:      []string{data.Email},
		ReplyTo: r.cfg.Owner,
		Subject: r.tr.T(data.Lang, "mail.ack.subject"),
		Body:    body,
		Date:    r.now(),
	}, nil
}

func (r *Relay) render(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
