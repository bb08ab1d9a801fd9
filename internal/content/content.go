// Package content serves the localized static pages and property listings
// pulled from the backend, with a TTL cache in front of it.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/aved-sa/aved-web/internal/api/sanitization"
	"github.com/aved-sa/aved-web/internal/backend"
	"github.com/aved-sa/aved-web/internal/cache"
	"github.com/aved-sa/aved-web/internal/i18n"
	"github.com/aved-sa/aved-web/internal/logging"
	"github.com/aved-sa/aved-web/internal/metrics"
)

// Type discriminates static content documents.
type Type string

const (
	About          Type = "about"
	PrivacyPolicy  Type = "privacyPolicy"
	TermsCondition Type = "termsCondition"
)

// Types lists every static content type the site renders.
var Types = []Type{About, PrivacyPolicy, TermsCondition}

// DefaultAboutImage is shown when the about document has no image.
const DefaultAboutImage = "/images/About/aboutlanding.webp"

// ErrUnknownType is returned for content types the site does not render.
var ErrUnknownType = errors.New("unknown content type")

// ParseType validates a content type coming from a URL or a flag.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case About, PrivacyPolicy, TermsCondition:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Fetcher is the part of the backend client the service needs.
type Fetcher interface {
	StaticContentByType(ctx context.Context, contentType string) (*backend.StaticContent, error)
	ViewProperty(ctx context.Context, id string) (*backend.Property, error)
}

// Page is a static document resolved for one locale.
type Page struct {
	Type     Type           `json:"type"`
	Locale   i18n.Locale    `json:"locale"`
	Dir      i18n.Direction `json:"dir"`
	Title    string         `json:"title"`
	Body     template.HTML  `json:"body"`
	ImageURL string         `json:"imageUrl,omitempty"`
}

// Property is a listing resolved for one locale. NameText keeps both
// variants for the contact form payload.
type Property struct {
	ID          string         `json:"id"`
	Locale      i18n.Locale    `json:"locale"`
	Name        string         `json:"name"`
	NameText    i18n.Bilingual `json:"-"`
	Description template.HTML  `json:"description"`
	ImageURL    string         `json:"imageUrl,omitempty"`
}

// Service resolves content for a locale. It is safe for concurrent use.
type Service struct {
	fetcher Fetcher
	store   cache.Store
	ttl     time.Duration
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewService creates the content service. A zero ttl disables caching.
func NewService(fetcher Fetcher, store cache.Store, ttl time.Duration, m *metrics.Metrics) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		logger:  logging.GetLogger(),
		metrics: m,
	}
}

// Page returns the static document of type t localized for locale.
func (s *Service) Page(ctx context.Context, t Type, locale i18n.Locale) (*Page, error) {
	var doc backend.StaticContent
	err := s.cached(ctx, cache.Key("content", string(t)), &doc, func() (interface{}, error) {
		return s.fetcher.StaticContentByType(ctx, string(t))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s content: %w", t, err)
	}

	page := &Page{
		Type:     t,
		Locale:   locale,
		Dir:      locale.Dir(),
		Title:    i18n.Pick(locale, doc.TitleText()),
		Body:     template.HTML(sanitization.SanitizeHTML(i18n.Pick(locale, doc.DescriptionHTML()))),
		ImageURL: doc.ImageURL,
	}
	if t == About && page.ImageURL == "" {
		page.ImageURL = DefaultAboutImage
	}
	return page, nil
}

// Refresh reloads document t from the backend and replaces the cached copy.
func (s *Service) Refresh(ctx context.Context, t Type) error {
	doc, err := s.fetcher.StaticContentByType(ctx, string(t))
	if err != nil {
		return fmt.Errorf("failed to refresh %s content: %w", t, err)
	}
	if s.store == nil || s.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s content: %w", t, err)
	}
	if err := s.store.Set(ctx, cache.Key("content", string(t)), data, s.ttl); err != nil {
		return fmt.Errorf("failed to cache %s content: %w", t, err)
	}
	return nil
}

// Fallback is the empty page rendered when the backend cannot be reached.
func Fallback(t Type, locale i18n.Locale) *Page {
	page := &Page{Type: t, Locale: locale, Dir: locale.Dir()}
	if t == About {
		page.ImageURL = DefaultAboutImage
	}
	return page
}

// Property returns the listing id localized for locale.
func (s *Service) Property(ctx context.Context, id string, locale i18n.Locale) (*Property, error) {
	var doc backend.Property
	err := s.cached(ctx, cache.Key("property", id), &doc, func() (interface{}, error) {
		return s.fetcher.ViewProperty(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load property %s: %w", id, err)
	}

	return &Property{
		ID:          doc.ID,
		Locale:      locale,
		Name:        i18n.Pick(locale, doc.Name()),
		NameText:    doc.Name(),
		Description: template.HTML(sanitization.SanitizeHTML(i18n.Pick(locale, doc.DescriptionHTML()))),
		ImageURL:    doc.ImageURL,
	}, nil
}

// cached decodes key into out, or calls load and stores its result. Cache
// errors are logged and never fail the lookup.
func (s *Service) cached(ctx context.Context, key string, out interface{}, load func() (interface{}, error)) error {
	if s.store != nil && s.ttl > 0 {
		data, err := s.store.Get(ctx, key)
		switch {
		case err == nil:
			if jsonErr := json.Unmarshal(data, out); jsonErr == nil {
				s.metrics.ObserveCache(true)
				return nil
			}
			s.logger.Warn("Discarding undecodable cache entry %s", key)
		case !errors.Is(err, cache.ErrMiss):
			s.logger.Warn("Content cache read failed for %s: %v", key, err)
		}
		s.metrics.ObserveCache(false)
	}

	value, err := load()
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}

	if s.store != nil && s.ttl > 0 {
		if err := s.store.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("Content cache write failed for %s: %v", key, err)
		}
	}
	return nil
}
