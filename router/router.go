package router

import (
	"context"
	"net/http"

	authHandler "corneradvisor/internal/auth"
	"corneradvisor/internal/auth/token"
	catalogHandler "corneradvisor/internal/catalog"
	catalogService "corneradvisor/internal/catalog/service"
	"corneradvisor/internal/health"
	reviewHandler "corneradvisor/internal/review"
	reviewService "corneradvisor/internal/review/service"
	"corneradvisor/middleware"
	"corneradvisor/socket"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Dependencies are the long-lived resources shared by every request.
type Dependencies struct {
	Services       catalogService.ServiceStore
	Reviews        reviewService.ReviewStore
	Tokens         *token.Manager
	Hub            *socket.Hub
	Ping           health.Pinger
	AllowedOrigins []string
}

func Setup(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	ping := deps.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	healthHandler := health.NewHealthHandler(ping)
	r.Get("/", healthHandler.Root)
	r.Get("/healthz", healthHandler.CheckHealth)

	auth := authHandler.NewAuthHandler(deps.Tokens)
	r.Post("/jwt", auth.IssueToken)

	catalog := catalogHandler.NewCatalogHandler(catalogService.NewCatalogService(deps.Services))
	r.Get("/services", catalog.ListServices)
	r.Get("/services/{id}", catalog.GetService)
	r.Post("/service", catalog.CreateService)

	var events reviewService.EventPublisher
	if deps.Hub != nil {
		events = deps.Hub
	}
	reviews := reviewHandler.NewReviewHandler(reviewService.NewReviewService(deps.Reviews, events))
	r.Get("/reviews", reviews.ListReviews)
	r.Post("/reviews-by-email", reviews.ListReviewsByEmailBody)
	r.Get("/reviews/{id}", reviews.GetReview)
	r.Post("/review", reviews.CreateReview)
	r.Patch("/reviews/{id}", reviews.UpdateReview)
	r.Delete("/reviews/{id}", reviews.DeleteReview)
	r.With(middleware.AuthMiddleware(deps.Tokens)).Get("/get-reviews-by-email", reviews.ListReviewsByEmail)

	if deps.Hub != nil {
		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			socket.ServeWs(deps.Hub, w, r)
		})
	}

	return r
}
