package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Catalog holds flattened translations per language.
type Catalog struct {
	messages        map[string]map[string]string
	defaultLanguage string
	logger          *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the language consulted when a key is missing in
// the requested one.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		if n := Normalize(lang); n != "" {
			c.defaultLanguage = n
		}
	}
}

// WithLogger sets the logger used for missing translation reports.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog loads translations from the adapter.
func NewCatalog(ctx context.Context, adapter Adapter, opts ...Option) (*Catalog, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	c := &Catalog{
		messages:        make(map[string]map[string]string),
		defaultLanguage: DefaultLanguage,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	data, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	for lang, tree := range data {
		n := Normalize(lang)
		if n == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
		}
		if c.messages[n] == nil {
			c.messages[n] = make(map[string]string)
		}
		flatten("", tree, c.messages[n])
	}

	c.logger.DebugContext(ctx, "translations loaded",
		slog.Int("languages", len(c.messages)),
		slog.String("default_language", c.defaultLanguage))
	return c, nil
}

// Lookup returns the raw template for key. The requested language is tried
// first, then its base language ("pt" for "pt-BR"), then the default one.
func (c *Catalog) Lookup(lang, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, l := range c.candidates(lang) {
		if tmpl, ok := c.messages[l][key]; ok {
			return tmpl, true
		}
	}
	return "", false
}

// Has reports whether key exists for lang without falling back.
func (c *Catalog) Has(lang, key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.messages[Normalize(lang)][key]
	return ok
}

// Languages returns the loaded languages in sorted order.
func (c *Catalog) Languages() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.messages))
}

// DefaultLanguage returns the language used as the last lookup candidate.
func (c *Catalog) DefaultLanguage() string {
	if c == nil {
		return DefaultLanguage
	}
	return c.defaultLanguage
}

// T translates key and fills the template placeholders. A missing key
// is returned unchanged.
func (c *Catalog) T(lang, key string, args ...any) string {
	tmpl, ok := c.Lookup(lang, key)
	if !ok {
		if c != nil {
			c.logger.Debug("missing translation", slog.String("lang", lang), slog.String("key", key))
		}
		return key
	}
	return Format(tmpl, args...)
}

func (c *Catalog) candidates(lang string) []string {
	out := make([]string, 0, 3)
	if n := Normalize(lang); n != "" {
		out = append(out, n)
		if base, _, ok := strings.Cut(n, "-"); ok {
			out = append(out, base)
		}
	}
	if !slices.Contains(out, c.defaultLanguage) {
		out = append(out, c.defaultLanguage)
	}
	return out
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Format fills placeholders in tmpl. Positional placeholders "{n}" take the
// n-th argument. Named placeholders "%{name}" are taken from a
// map[string]any passed as the last argument. Unknown placeholders are left
// untouched.
func Format(tmpl string, args ...any) string {
	if !strings.ContainsRune(tmpl, '{') {
		return tmpl
	}

	named := namedArgs(args)
	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		ch := tmpl[i]
		isNamed := ch == '%' && i+1 < len(tmpl) && tmpl[i+1] == '{'
		if ch != '{' && !isNamed {
			b.WriteByte(ch)
			continue
		}
		start := i + 1
		if isNamed {
			start = i + 2
		}
		end := strings.IndexByte(tmpl[start:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		name := tmpl[start : start+end]
		if val, ok := placeholder(name, isNamed, args, named); ok {
			b.WriteString(val)
		} else {
			b.WriteString(tmpl[i : start+end+1])
		}
		i = start + end
	}
	return b.String()
}

func placeholder(name string, named bool, args []any, pairs map[string]any) (string, bool) {
	if named {
		v, ok := pairs[name]
		if !ok {
			return "", false
		}
		return fmt.Sprint(v), true
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n >= len(args) {
		return "", false
	}
	return fmt.Sprint(args[n]), true
}

func namedArgs(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m, _ := args[len(args)-1].(map[string]any)
	return m
}
