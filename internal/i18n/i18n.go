// Package i18n provides the site's translated strings and picks a language
// for each request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Default is the fallback language for unknown keys and unmatched requests.
const Default = "en"

//go:embed locales/*.yaml
var locales embed.FS

// Translator holds one flat key/value table per language.
type Translator struct {
	tables  map[string]map[string]string
	codes   []string
	matcher language.Matcher
}

// New loads the embedded locale tables.
func New() (*Translator, error) {
	return Load(locales, "locales")
}

// Load reads every <code>.yaml file in dir. The default language must exist.
func Load(fsys fs.FS, dir string) (*Translator, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	tables := make(map[string]map[string]string, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		code := strings.TrimSuffix(path.Base(f), ".yaml")
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("%s: invalid language code: %w", f, err)
		}
		tables[code] = table
	}
	if _, ok := tables[Default]; !ok {
		return nil, fmt.Errorf("missing %s locale", Default)
	}

	// Default goes first so the matcher falls back to it.
	codes := []string{Default}
	for code := range tables {
		if code != Default {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes[1:])

	tags := make([]language.Tag, len(codes))
	for i, c := range codes {
		tags[i] = language.Make(c)
	}

	return &Translator{tables: tables, codes: codes, matcher: language.NewMatcher(tags)}, nil
}

// T returns the string for key in lang, then in the default language, then
// the key itself.
func (t *Translator) T(lang, key string) string {
	if v, ok := t.tables[lang][key]; ok {
		return v
	}
	if v, ok := t.tables[Default][key]; ok {
		return v
	}
	return key
}

// Supported reports whether lang has a table.
func (t *Translator) Supported(lang string) bool {
	_, ok := t.tables[lang]
	return ok
}

// Languages lists the available codes, default first.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.codes...)
}

// Match picks the best supported language for an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return t.codes[idx]
}
