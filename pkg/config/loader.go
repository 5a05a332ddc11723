package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry caches one parsed configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache   sync.Map // reflect.Type -> *entry
	dotenv  sync.Once
	envLock sync.Mutex
)

// Load parses environment variables into v using `env` struct tags.
// The default .env file is read once if present. Every configuration type is
// parsed at most once per process; later calls copy the cached value.
//
//	type Config struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenv.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	e := lookup[T]()
	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})
	if e.err != nil {
		return e.err
	}

	cached, ok := e.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cached
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment without
// overriding variables that are already set. Cached configurations are not
// affected; call Reload to pick up new values.
func LoadEnv(paths ...string) error {
	envLock.Lock()
	defer envLock.Unlock()
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reload drops the cached value of T and parses it again.
func Reload[T any](v *T) error {
	cache.Delete(typeOf[T]())
	return Load(v)
}

// ResetCache drops every cached configuration.
func ResetCache() {
	cache.Clear()
}

func lookup[T any]() *entry {
	e, _ := cache.LoadOrStore(typeOf[T](), &entry{})
	return e.(*entry)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
