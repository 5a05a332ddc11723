// Package playground validates structs with go-playground/validator and
// reports the outcome as a result.ValidatedResult tree.
//
// Field names follow json tags, so a failure on User.Address.City is
// reported under the nested elements "address" and "city". Struct-level
// rules registered with RegisterStructRule that report an empty field name
// produce object-level elements.
//
// Types may declare per-group rules by implementing GroupRules. Validating
// with groups runs those tags through Validate.Var instead of the struct
// tags, unless DefaultGroup is among the requested groups.
//
// Struct metadata is cached per type; Precompile warms the cache at startup.
package playground
