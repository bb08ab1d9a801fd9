package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Catalog holds the flattened translation keys of every supported locale.
type Catalog struct {
	messages map[Locale]map[string]string
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the process-wide embedded catalog.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		catalog, err := LoadFromFS(embeddedLocales)
		if err != nil {
			panic(err)
		}
		defaultCatalog = catalog
	})
	return defaultCatalog
}

// LoadFromFS loads locales/<locale>.yaml files. Nested YAML maps become
// dotted keys, so contactSection: {nameRequired: ...} is looked up as
// "contactSection.nameRequired".
func LoadFromFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	catalog := &Catalog{messages: map[Locale]map[string]string{}}
	for _, p := range paths {
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		locale, ok := Parse(name)
		if !ok || string(locale) != name {
			return nil, fmt.Errorf("catalog %s: unsupported locale %q", p, name)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var tree map[string]interface{}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}

		messages := map[string]string{}
		if err := flatten("", tree, messages); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
		catalog.messages[locale] = messages
	}

	if _, ok := catalog.messages[Default]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", Default)
	}
	return catalog, nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]interface{}:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected string or map, got %T", full, value)
		}
	}
	return nil
}

// Lookup returns the message for key, falling back to the base locale.
func (c *Catalog) Lookup(locale Locale, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	if msg, ok := c.messages[locale][key]; ok {
		return msg, true
	}
	msg, ok := c.messages[Default][key]
	return msg, ok
}

// T translates key for locale. Missing keys render as the key itself.
func (c *Catalog) T(locale Locale, key string, args ...interface{}) string {
	msg, ok := c.Lookup(locale, key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Keys returns the sorted keys defined for locale.
func (c *Catalog) Keys(locale Locale) []string {
	keys := make([]string, 0, len(c.messages[locale]))
	for k := range c.messages[locale] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Localizer binds a catalog to one locale.
func (c *Catalog) Localizer(locale Locale) Localizer {
	return Localizer{catalog: c, locale: locale}
}

// Localizer translates keys for a single locale.
type Localizer struct {
	catalog *Catalog
	locale  Locale
}

func (l Localizer) T(key string, args ...interface{}) string {
	return l.catalog.T(l.locale, key, args...)
}

func (l Localizer) Locale() Locale {
	return l.locale
}

func (l Localizer) Dir() Direction {
	return l.locale.Dir()
}
