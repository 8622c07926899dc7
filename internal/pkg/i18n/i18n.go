package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type (
	ctxKey        struct{}
	translatorKey struct{}
)

// Translator resolves message IDs against the embedded locale files.
type Translator struct {
	bundle        *goi18n.Bundle
	matcher       language.Matcher
	supported     []language.Tag
	defaultLocale language.Tag
}

// New loads every embedded locale file. defaultLocale is used when a request
// carries no usable Accept-Language header.
func New(defaultLocale string) (*Translator, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		def = language.English
	}

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", e.Name(), err)
		}
	}

	// The default goes first so the matcher falls back to it.
	tags := []language.Tag{def}
	for _, tag := range bundle.LanguageTags() {
		if tag != def {
			tags = append(tags, tag)
		}
	}

	return &Translator{
		bundle:        bundle,
		matcher:       language.NewMatcher(tags),
		supported:     tags,
		defaultLocale: def,
	}, nil
}

// WithLocale returns a new context carrying the given locale (e.g. "he", "en").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

// LocaleFromContext extracts the locale from the context, or "" if unset.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}

// Match picks the best supported locale for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return baseOf(t.defaultLocale)
	}
	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(t.supported) {
		return baseOf(t.defaultLocale)
	}
	return baseOf(t.supported[idx])
}

func baseOf(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// T translates a message ID using the locale from the context. Unknown IDs
// are returned unchanged.
func (t *Translator) T(ctx context.Context, messageID string, templateData ...map[string]any) string {
	lang := LocaleFromContext(ctx)
	if lang == "" {
		lang = t.defaultLocale.String()
	}
	l := goi18n.NewLocalizer(t.bundle, lang, t.defaultLocale.String())

	cfg := &goi18n.LocalizeConfig{MessageID: messageID}
	if len(templateData) > 0 && templateData[0] != nil {
		cfg.TemplateData = templateData[0]
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}

// Middleware stores the negotiated locale and the translator in the request
// context.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := t.Match(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", locale)
		ctx := context.WithValue(WithLocale(r.Context(), locale), translatorKey{}, t)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Localize translates messageID with the translator attached by Middleware.
// Without one, or for an unknown ID, it returns fallback.
func Localize(ctx context.Context, messageID, fallback string, templateData ...map[string]any) string {
	t, ok := ctx.Value(translatorKey{}).(*Translator)
	if !ok {
		return fallback
	}
	if msg := t.T(ctx, messageID, templateData...); msg != messageID {
		return msg
	}
	return fallback
}
