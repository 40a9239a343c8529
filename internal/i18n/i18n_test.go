package i18n

import (
	"testing"
	"testing/fstest"
)

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	tr, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, lang := range tr.Languages() {
		for key := range tr.tables[Default] {
			if _, ok := tr.tables[lang][key]; !ok {
				t.Fatalf("locale %s is missing key %q", lang, key)
			}
		}
	}
}

func TestTFallback(t *testing.T) {
	tr, err := Load(fstest.MapFS{
		"l/en.yaml": {Data: []byte("greet: Hello\nonly.en: English\n")},
		"l/es.yaml": {Data: []byte("greet: Hola\n")},
	}, "l")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		lang, key, want string
	}{
		{"es", "greet", "Hola"},
		{"en", "greet", "Hello"},
		{"es", "only.en", "English"},
		{"fr", "greet", "Hello"},
		{"es", "missing.key", "missing.key"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.lang, tt.key); got != tt.want {
			t.Fatalf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
		}
	}
}

func TestLoadRequiresDefault(t *testing.T) {
	_, err := Load(fstest.MapFS{"l/es.yaml": {Data: []byte("a: b\n")}}, "l")
	if err == nil {
		t.Fatalf("expected error without default locale")
	}
}

func TestMatch(t *testing.T) {
	tr, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		header, want string
	}{
		{"", "en"},
		{"es-MX,es;q=0.9,en;q=0.8", "es"},
		{"en-GB,en;q=0.9", "en"},
		{"de-DE,de;q=0.9", "en"},
		{"de;q=0.9,es;q=0.5", "es"},
	}
	for _, tt := range tests {
		if got := tr.Match(tt.header); got != tt.want {
			t.Fatalf("Match(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
