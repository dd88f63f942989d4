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

	handlers "github.com/de-tools/cost-guard/pkg/handlers/costguard"
	costguardmiddleware "github.com/de-tools/cost-guard/pkg/server/middleware"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Analyzer  handlers.Analyzer
	Summaries handlers.SummaryService
	Seeder    handlers.Seeder
	Explorer  handlers.ResourceExplorer
	Logger    zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	h := handlers.NewHandler(
		config.Dependencies.Analyzer,
		config.Dependencies.Summaries,
		config.Dependencies.Seeder,
		config.Dependencies.Explorer,
	)

	router := chi.NewRouter()

	router.Use(costguardmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/seed", h.SeedData)
		r.Post("/analysis", h.RunAnalysis)
		r.Get("/summary", h.GetSummary)
		r.Get("/findings", h.ListFindings)
		r.Get("/products", h.GetProducts)
		r.Get("/trend", h.GetTrend)
		r.Get("/breakdown", h.GetBreakdown)
		r.Get("/movers", h.GetMovers)
		r.Get("/insights", h.GetInsights)
		r.Get("/resources/{resourceID}", h.GetResource)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

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
