package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zachkp/portfolio/internal/config"
)

func postContact(site *testSite, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return site.do(req)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestContactRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no name", `{"email":"a@b.c","message":"hi"}`},
		{"empty name", `{"name":"","email":"a@b.c","message":"hi"}`},
		{"no email", `{"name":"Ada","message":"hi"}`},
		{"no message", `{"name":"Ada","email":"a@b.c","subject":"s"}`},
		{"empty object", `{}`},
		{"not json", `name=Ada`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t, config.Config{})
			w := postContact(site, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if decode(t, w)["error"] == nil {
				t.Fatalf("expected error message, got %s", w.Body.String())
			}
			if n := len(site.sender.sent); n != 0 {
				t.Fatalf("expected no emails, got %d", n)
			}
		})
	}
}

func TestContactSendsNotificationAndAck(t *testing.T) {
	site := newTestSite(t, config.Config{})
	w := postContact(site, `{"name":"Ada","email":"ada@example.org","subject":"Hello","message":"Nice site"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if decode(t, w)["success"] != true {
		t.Fatalf("expected success flag, got %s", w.Body.String())
	}

	sent := site.sender.sent
	if len(sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sent))
	}
	if sent[0].To[0] != "owner@example.com" || sent[0].ReplyTo != "ada@example.org" {
		t.Fatalf("first email should notify the owner: %+v", sent[0])
	}
	if sent[1].To[0] != "ada@example.org" {
		t.Fatalf("second email should acknowledge the submitter: %+v", sent[1])
	}
}

func TestContactSubjectIsOptional(t *testing.T) {
	site := newTestSite(t, config.Config{})
	w := postContact(site, `{"name":"Ada","email":"ada@example.org","message":"Nice site"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := site.sender.sent[0].Subject; got != "Portfolio Contact: Ada" {
		t.Fatalf("subject = %q", got)
	}
}

func TestContactRelayFailure(t *testing.T) {
	for _, failAt := range []int{1, 2} {
		site := newTestSite(t, config.Config{})
		site.sender.failAt = failAt
		w := postContact(site, `{"name":"Ada","email":"ada@example.org","message":"hi"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("failAt=%d: status = %d, want 500", failAt, w.Code)
		}
		body := decode(t, w)
		if body["error"] != "Failed to send email" {
			t.Fatalf("failAt=%d: expected generic error, got %v", failAt, body)
		}
		if strings.Contains(w.Body.String(), "451") {
			t.Fatalf("relay details leaked to client: %s", w.Body.String())
		}
		if len(site.sender.sent) != failAt {
			t.Fatalf("failAt=%d: %d sends attempted", failAt, len(site.sender.sent))
		}
	}
}

func TestContactAckFollowsVisitorLanguage(t *testing.T) {
	site := newTestSite(t, config.Config{})
	w := postContact(site, `{"name":"Ana","email":"ana@example.org","message":"hola"}`, "Accept-Language", "es-ES,es;q=0.9")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := site.sender.sent[1].Subject; got != "Gracias por escribirme" {
		t.Fatalf("ack subject = %q", got)
	}
}

func TestContactCORS(t *testing.T) {
	site := newTestSite(t, config.Config{CORSOrigins: "https://zach.dev"})

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://zach.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := site.do(req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://zach.dev" {
		t.Fatalf("allow origin = %q", got)
	}

	w = postContact(site, `{"name":"A","email":"a@b.c","message":"m"}`, "Origin", "https://other.example")
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign origin = %d, want 403", w.Code)
	}
	if len(site.sender.sent) != 0 {
		t.Fatalf("blocked request must not send email")
	}
}
