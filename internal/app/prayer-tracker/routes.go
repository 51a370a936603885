// Package prayertracker предоставляет маршруты для основного приложения.
package prayertracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/calendar/monthview"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/calendar/rangeview"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/heatmap/monthsvg"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/heatmap/rangesvg"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/hijri/calendarview"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/prayer/nearest"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/prayer/next"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/prayer/today"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/record/listbydate"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/record/read"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/record/upsert"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/handlers/tracker/health"
	"github.com/magabrotheeeer/prayer-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/prayer-tracker/internal/scheduleprovider"
	scheduleservice "github.com/magabrotheeeer/prayer-tracker/internal/services/schedule"
	trackerservice "github.com/magabrotheeeer/prayer-tracker/internal/services/tracker"
	"github.com/magabrotheeeer/prayer-tracker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	trackerService *trackerservice.TrackerService, scheduleService *scheduleservice.ScheduleService,
	providerClient *scheduleprovider.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/records", upsert.New(logger, trackerService).ServeHTTP)
		r.Get("/records/{date}", listbydate.New(logger, trackerService).ServeHTTP)
		r.Get("/records/{date}/{userID}", read.New(logger, trackerService).ServeHTTP)

		r.Get("/calendar/{userID}/{year}/{month}", monthview.New(logger, trackerService).ServeHTTP)
		r.Get("/calendar/{userID}/range", rangeview.New(logger, trackerService).ServeHTTP)

		r.Get("/heatmap/{userID}/{year}/{month}", monthsvg.New(logger, trackerService).ServeHTTP)
		r.Get("/heatmap/{userID}/range", rangesvg.New(logger, trackerService).ServeHTTP)

		r.Get("/prayers/today", today.New(logger, scheduleService).ServeHTTP)
		r.Get("/prayers/nearest", nearest.New(logger, scheduleService).ServeHTTP)
		r.Get("/prayers/next", next.New(logger, scheduleService).ServeHTTP)

		r.Get("/hijri/{year}/{month}", calendarview.New(logger, providerClient).ServeHTTP)

		r.Get("/health", health.New(logger, db).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
