// Package rule provides value-level validation rules and the engine that turns
// rule verdicts into result fragments.
//
// A Rule couples a Check function with translation-friendly metadata: the rule
// identifier, the message code, positional arguments and a fallback message
// template. Rules are stateless values and can be shared across goroutines.
//
//	rules := []rule.Rule{rule.NotBlank(), rule.Length(3, 32)}
//	e := rule.NewEngine()
//	fragments := e.ValidateField(name, rules, "en")
//
// Message templates use positional placeholders ("{0}", "{1}") filled from the
// rule arguments. When a Localizer is configured, the engine asks it for a
// localized message first and falls back to the template.
//
// # Groups
//
// Rules without groups belong to DefaultGroup. Validating without groups runs
// DefaultGroup only; validating with groups runs the rules whose groups
// intersect them.
package rule
