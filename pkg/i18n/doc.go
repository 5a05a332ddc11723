// Package i18n provides the message catalog used to localize validation
// messages, plus helpers that detect and carry the request locale.
//
// Translations are loaded once through an Adapter. Nested maps are flattened
// into dot-separated keys, so the YAML document
//
//	en:
//	  validator:
//	    NotEmpty: "{0} must not be empty"
//
// exposes the key "validator.NotEmpty" for language "en". Templates accept
// positional placeholders ("{0}") and named placeholders ("%{name}").
//
// # Loading
//
//	catalog, err := i18n.NewCatalog(ctx,
//	    i18n.NewFSAdapter(os.DirFS("translations"), "."),
//	    i18n.WithDefaultLanguage("en"),
//	    i18n.WithLogger(log),
//	)
//
// FSAdapter accepts any fs.FS, including embed.FS. MapAdapter serves in-memory
// translations and is convenient in tests.
//
// # Request locale
//
// Middleware stores the detected language in the request context; GetLocale
// reads it back. DefaultLangExtractor checks, in order: the "lang" cookie, the
// "lang" query parameter and the Accept-Language header.
//
// Catalog is safe for concurrent use after construction.
package i18n
