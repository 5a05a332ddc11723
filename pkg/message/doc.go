// Package message turns validation error codes into user-facing text.
//
// CodesResolver expands one error code into the ordered list of message keys
// tried for a field, from most to least specific:
//
//	NotEmpty.user.address.city
//	NotEmpty.address.city
//	NotEmpty.city
//	NotEmpty.string
//	NotEmpty
//
// Source looks those keys up in an i18n.Catalog and fills positional
// arguments. LocaleResolver decides which language a request is answered in.
package message
