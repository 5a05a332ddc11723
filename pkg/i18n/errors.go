package i18n

import "errors"

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrFailedToReadDir     = errors.New("failed to read translation directory")
	ErrNoTranslationsFound = errors.New("no translation files found")
	ErrInvalidLanguage     = errors.New("invalid language code")
)
