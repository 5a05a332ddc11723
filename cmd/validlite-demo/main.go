// Command validlite-demo serves a small user API whose handlers declare
// their parameters and receive them validated.
package main

import (
	"context"
	"embed"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/validlite"
	"github.com/dmitrymomot/validlite/binder"
	"github.com/dmitrymomot/validlite/pkg/binding"
	"github.com/dmitrymomot/validlite/pkg/environment"
	"github.com/dmitrymomot/validlite/pkg/httpserver"
	"github.com/dmitrymomot/validlite/pkg/i18n"
	"github.com/dmitrymomot/validlite/pkg/logger"
	"github.com/dmitrymomot/validlite/pkg/request"
	"github.com/dmitrymomot/validlite/pkg/rule"
)

//go:embed translations/*.yaml
var translations embed.FS

type createUser struct {
	Name     string   `json:"name" validate:"required,min=2,max=64"`
	Email    string   `json:"email" validate:"required,email"`
	Age      int      `json:"age" validate:"gte=0,lte=150"`
	Password string   `json:"password" validate:"required,min=8"`
	Confirm  string   `json:"confirm" validate:"eqfield=Password"`
	Address  *address `json:"address"`
}

type address struct {
	City string `json:"city" validate:"required"`
	Zip  string `json:"zip" validate:"required,len=5,numeric"`
}

type listUsers struct {
	Page   int    `query:"page" json:"page" validate:"gte=1"`
	Sort   string `query:"sort" json:"sort"`
	Status string `query:"status" json:"status"`
}

// GroupRules adds rules checked only when the "admin" group is requested.
func (listUsers) GroupRules() map[string]map[string]string {
	return map[string]map[string]string{
		"admin": {"status": "omitempty,oneof=active suspended deleted"},
	}
}

func main() {
	ctx := context.Background()

	cfg, err := validlite.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithEnvironment(environment.Parse(cfg.Environment), "validlite-demo"),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
		logger.WithContextExtractors(request.LoggerExtractor()),
	)
	slog.SetDefault(log)

	var opts []validlite.Option
	if cfg.TranslationsDir == "" {
		catalog, err := i18n.NewCatalog(ctx,
			i18n.NewFSAdapter(translations, "translations"),
			i18n.WithDefaultLanguage(cfg.FallbackLanguage),
			i18n.WithLogger(log),
		)
		if err != nil {
			log.Error("failed to load embedded translations", logger.Error(err))
			os.Exit(1)
		}
		opts = append(opts, validlite.WithCatalog(catalog))
	}

	v, err := validlite.NewFromConfig(ctx, cfg, log, opts...)
	if err != nil {
		log.Error("failed to create validator", logger.Error(err))
		os.Exit(1)
	}
	if err := v.Precompile(ctx, createUser{}, listUsers{}); err != nil {
		log.Error("failed to precompile rules", logger.Error(err))
		os.Exit(1)
	}

	srv := httpserver.New(
		httpserver.WithAddr(cfg.Addr),
		httpserver.WithLogger(log),
	)
	if err := srv.Run(ctx, routes(v, cfg, log)); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func routes(v *validlite.Validator, cfg validlite.Config, log *slog.Logger) http.Handler {
	res := validlite.NewResolver(v, validlite.WithResolverLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(i18n.WithSupportedLanguages(cfg.SupportedLanguages...))))
	r.Use(v.Middleware())

	r.Get("/health", httpserver.HealthCheckHandler(log))

	r.Post("/users", validlite.Handle(res,
		validlite.NewOperation("createUser",
			validlite.Bean[createUser]("user", binder.JSON()),
			validlite.Value[bool]("notify", validlite.FromQuery),
		),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			user, err := validlite.Arg[*createUser](args, "user")
			if err != nil {
				return err
			}
			return validlite.JSON(w, http.StatusCreated, map[string]any{"name": user.Name, "email": user.Email})
		},
	))

	r.Get("/users", validlite.Handle(res,
		validlite.NewOperation("listUsers",
			validlite.Bean[listUsers]("filter", binder.Query()).InGroups(validlite.DefaultGroup, "admin"),
			validlite.Value[int]("limit", validlite.FromQuery, rule.Range(1, 100)),
		),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			filter, err := validlite.Arg[*listUsers](args, "filter")
			if err != nil {
				return err
			}
			return validlite.JSON(w, http.StatusOK, filter)
		},
	))

	r.Get("/users/{id}", validlite.Handle(res,
		validlite.NewOperation("getUser",
			validlite.Value[int64]("id", validlite.FromPath, rule.NotNull(), rule.Min(1)),
			validlite.Value[string]("X-Tenant", validlite.FromHeader, rule.NotBlank(), rule.Length(3, 32)),
		),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			id, _ := validlite.Arg[int64](args, "id")
			if id > 1000 {
				return validlite.ErrNotFound
			}
			return validlite.JSON(w, http.StatusOK, map[string]int64{"id": id})
		},
	))

	// Errors are handed to the handler, which decides how to answer.
	r.Post("/subscriptions", validlite.Handle(res,
		validlite.NewOperation("subscribe",
			validlite.Value[string]("email", validlite.FromForm, rule.NotBlank(), rule.Email()),
			validlite.Value[string]("plan", validlite.FromForm, rule.OneOf("free", "pro")),
			validlite.ErrorsParam("errors"),
		),
		func(w http.ResponseWriter, r *http.Request, args validlite.Args) error {
			errs, err := validlite.Arg[binding.Result](args, "errors")
			if err != nil {
				return err
			}
			if errs.HasErrors() {
				return validlite.JSON(w, http.StatusOK, map[string]any{
					"subscribed": false,
					"errors":     v.Errors(v.Locale(r.Context()), errs),
				})
			}
			return validlite.JSON(w, http.StatusOK, map[string]any{"subscribed": true})
		},
	))

	return r
}
