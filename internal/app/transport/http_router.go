package transport

import (
	"log/slog"
	"net/http"

	"github.com/MSMikl/aviata-test/internal/app/config"
	"github.com/MSMikl/aviata-test/internal/app/dto"
	"github.com/MSMikl/aviata-test/internal/app/endpoints"
	httptransport "github.com/MSMikl/aviata-test/internal/pkg/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// MakeHTTPRouter builds the HTTP router with all the service endpoints.
func MakeHTTPRouter(
	cfg *config.Config,
	endpts endpoints.Endpoints,
) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Group(func(router chi.Router) {
		router.Use(
			httptransport.RequestID(),
			httptransport.CORSMiddleware(),
			httptransport.Recoverer(slog.Default()),
			render.SetContentType(render.ContentTypeJSON),
		)

		router.Post("/search", httptransport.MakeHandlerFunc(
			endpts.AggregatorEndpoint.CreateSearch,
			httptransport.DecodeRequest[dto.CreateSearchRequest],
			httptransport.ResponseWithBody,
		))

		router.Get("/results/{search_id}/{currency}", httptransport.MakeHandlerFunc(
			endpts.AggregatorEndpoint.GetResults,
			httptransport.DecodeRequest[dto.ResultsRequest],
			httptransport.ResponseWithBody,
		))
	})

	return router
}
