package validlite

import "github.com/dmitrymomot/validlite/pkg/config"

// Config is read from the environment by LoadConfig.
type Config struct {
	// MessagePrefix namespaces validation message codes in the catalog.
	MessagePrefix string `env:"VALIDLITE_MESSAGE_PREFIX" envDefault:"validator"`
	// DefaultLanguage, when set, is used for every request regardless of
	// the request locale.
	DefaultLanguage    string   `env:"VALIDLITE_DEFAULT_LANGUAGE"`
	FallbackLanguage   string   `env:"VALIDLITE_FALLBACK_LANGUAGE" envDefault:"en"`
	SupportedLanguages []string `env:"VALIDLITE_SUPPORTED_LANGUAGES" envSeparator:","`
	// TranslationsDir holds YAML or JSON catalogs. Empty disables the catalog.
	TranslationsDir string `env:"VALIDLITE_TRANSLATIONS_DIR"`

	Environment string `env:"VALIDLITE_ENV" envDefault:"development"`
	LogLevel    string `env:"VALIDLITE_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"VALIDLITE_LOG_FORMAT" envDefault:"text"`
	Addr        string `env:"VALIDLITE_ADDR" envDefault:":8080"`
}

// LoadConfig loads Config from the environment and the default .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
