package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	profilehandlers "github.com/de-tools/aws-profile-manager/pkg/handlers/profile"
	rolehandlers "github.com/de-tools/aws-profile-manager/pkg/handlers/role"
	s3handlers "github.com/de-tools/aws-profile-manager/pkg/handlers/s3"
	apmmiddleware "github.com/de-tools/aws-profile-manager/pkg/server/middleware"
	"github.com/de-tools/aws-profile-manager/pkg/services/manager"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Manager manager.Manager
	// Assumer and Explorer are optional; their routes are mounted only
	// when present, so the tool works without any AWS connectivity.
	Assumer  rolehandlers.Assumer
	Explorer s3handlers.Explorer
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	handler := profilehandlers.NewHandler(deps.Manager)

	router := chi.NewRouter()
	router.Use(apmmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handler.GetStatus)

		r.Get("/profiles", handler.ListProfiles)
		r.Post("/profiles", handler.CreateCredentialsProfile)
		r.Post("/profiles/role", handler.CreateRoleProfile)
		r.Post("/profiles/{name}/switch", handler.SwitchProfile)
		r.Delete("/profiles/{name}", handler.RemoveProfile)
		r.Put("/credentials", handler.UpdateCredentials)

		r.Get("/environments", handler.ListEnvironments)
		r.Post("/environments/{name}/sync", handler.SyncEnvironment)
		r.Post("/refresh", handler.ForceRefresh)
		r.Post("/config/clean", handler.CleanConfig)
		r.Post("/config/reset", handler.ForceCleanReset)

		if deps.Assumer != nil {
			roleHandler := rolehandlers.NewHandler(deps.Assumer)
			r.Post("/roles/assume", roleHandler.AssumeRole)
			r.Delete("/roles/{name}", roleHandler.RemoveAssumedProfile)
			r.Post("/roles/clean-expired", roleHandler.CleanExpired)
		}

		if deps.Explorer != nil {
			s3Handler := s3handlers.NewHandler(deps.Explorer)
			r.Get("/s3/buckets", s3Handler.ListBuckets)
			r.Get("/s3/buckets/{bucket}/objects", s3Handler.ListObjects)
			r.Get("/s3/buckets/{bucket}/presign", s3Handler.PresignDownload)
			r.Get("/s3/buckets/{bucket}/access", s3Handler.CheckBucketAccess)
		}
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	config.Dependencies.Logger = logger
	router := ConfigureRouter(config)

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
