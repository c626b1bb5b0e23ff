package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-reconciler-api/infrastructure/repository"
	"github.com/vfg2006/campaign-reconciler-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-reconciler-api/internal/scheduler"
	"github.com/vfg2006/campaign-reconciler-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-reconciler-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Ingestion(
	syncService *scheduler.IngestionSyncService,
	completenessRepo repository.SourceCompletenessRepository,
	runRepo repository.IngestionRunRepository,
) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ingestion/run",
			Method:      http.MethodPost,
			Handler:     RunIngestion(syncService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/ingestion/status",
			Method:      http.MethodGet,
			Handler:     GetIngestionStatus(syncService),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/ingestion/completeness",
			Method:      http.MethodGet,
			Handler:     GetCompleteness(completenessRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/ingestion/runs",
			Method:      http.MethodGet,
			Handler:     GetIngestionRuns(runRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
