package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeSender struct {
	sent   []*Message
	failAt int // 1-based send that fails; 0 never fails
}

func (f *fakeSender) Send(_ context.Context, msg *Message) error {
	f.sent = append(f.sent, msg)
	if f.failAt == len(f.sent) {
		return errors.New("relay down")
	}
	return nil
}

type fakeTranslator map[string]string

func (f fakeTranslator) T(lang, key string) string {
	if v, ok := f[lang+":"+key]; ok {
		return v
	}
	return key
}

var relayCfg = Config{From: "site@example.com", Owner: "owner@example.com", OwnerName: "Owner"}

func newTestRelay(t *testing.T, sender Sender) *Relay {
	t.Helper()
	r, err := NewRelay(sender, relayCfg, fakeTranslator{
		"en:mail.ack.subject": "Thanks",
		"es:mail.ack.subject": "Gracias",
	})
	if err != nil {
		t.Fatalf("NewRelay: %v", err)
	}
	r.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r
}

func TestRelaySendsNotificationThenAck(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRelay(t, sender)

	ref, err := r.Relay(context.Background(), Submission{
		Name: "Ada", Email: "ada@example.org", Subject: "Hiring", Message: "Hello there", Lang: "en",
	})
	if err != nil {
		t.Fatalf("Relay: %v", err)
	}
	if ref == "" {
		t.Fatalf("expected a reference")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sender.sent))
	}

	notify, ack := sender.sent[0], sender.sent[1]
	if notify.To[0] != "owner@example.com" || notify.ReplyTo != "ada@example.org" {
		t.Fatalf("unexpected notification routing: to=%v reply-to=%q", notify.To, notify.ReplyTo)
	}
	if notify.Subject != "Portfolio Contact: Hiring" {
		t.Fatalf("notification subject = %q", notify.Subject)
	}
	if !strings.Contains(notify.Body, "Hello there") || !strings.Contains(notify.Body, ref) {
		t.Fatalf("notification body missing message or ref: %q", notify.Body)
	}

	if ack.To[0] != "ada@example.org" {
		t.Fatalf("ack sent to %v", ack.To)
	}
	if ack.Subject != "Thanks" {
		t.Fatalf("ack subject = %q", ack.Subject)
	}
	if !strings.HasPrefix(ack.Body, "Hi Ada,") || !strings.Contains(ack.Body, `about "Hiring"`) {
		t.Fatalf("unexpected ack body: %q", ack.Body)
	}
	if !strings.Contains(notify.ID, ref) || !strings.Contains(ack.ID, ref) || notify.ID == ack.ID {
		t.Fatalf("message ids not correlated: %q %q", notify.ID, ack.ID)
	}
}

func TestRelaySubjectFallsBackToName(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRelay(t, sender)
	if _, err := r.Relay(context.Background(), Submission{Name: "Ada", Email: "a@b.c", Message: "m"}); err != nil {
		t.Fatalf("Relay: %v", err)
	}
	if got := sender.sent[0].Subject; got != "Portfolio Contact: Ada" {
		t.Fatalf("subject = %q", got)
	}
	if strings.Contains(sender.sent[1].Body, "about") {
		t.Fatalf("ack should not mention an empty subject: %q", sender.sent[1].Body)
	}
}

func TestRelayLocalizesAck(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRelay(t, sender)
	if _, err := r.Relay(context.Background(), Submission{Name: "Ana", Email: "a@b.c", Message: "m", Lang: "es"}); err != nil {
		t.Fatalf("Relay: %v", err)
	}
	ack := sender.sent[1]
	if ack.Subject != "Gracias" || !strings.HasPrefix(ack.Body, "Hola Ana,") {
		t.Fatalf("ack not localized: %q / %q", ack.Subject, ack.Body)
	}

	sender.sent = nil
	if _, err := r.Relay(context.Background(), Submission{Name: "Jo", Email: "a@b.c", Message: "m", Lang: "fr"}); err != nil {
		t.Fatalf("Relay: %v", err)
	}
	if !strings.HasPrefix(sender.sent[1].Body, "Hi Jo,") {
		t.Fatalf("unknown language should fall back to English: %q", sender.sent[1].Body)
	}
}

func TestRelayStopsOnFirstFailure(t *testing.T) {
	sender := &fakeSender{failAt: 1}
	r := newTestRelay(t, sender)
	_, err := r.Relay(context.Background(), Submission{Name: "A", Email: "a@b.c", Message: "m"})
	if err == nil || !strings.Contains(err.Error(), "send notification") {
		t.Fatalf("expected notification error, got %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("ack must not be attempted after a failed notification, got %d sends", len(sender.sent))
	}
}

func TestRelayAckFailureIsAnError(t *testing.T) {
	sender := &fakeSender{failAt: 2}
	r := newTestRelay(t, sender)
	ref, err := r.Relay(context.Background(), Submission{Name: "A", Email: "a@b.c", Message: "m"})
	if err == nil || !strings.Contains(err.Error(), "acknowledgment") {
		t.Fatalf("expected acknowledgment error, got %v", err)
	}
	if ref == "" {
		t.Fatalf("reference should be returned on failure")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected both sends attempted, got %d", len(sender.sent))
	}
}
