package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"bharatlaw-ai/internal/handlers"
	"bharatlaw-ai/internal/metrics"
	"bharatlaw-ai/internal/service"
	"bharatlaw-ai/internal/storage"
	"bharatlaw-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService     service.ChatService
	SectionService  service.SectionService
	FeedbackService service.FeedbackService
	CatalogService  service.CatalogService

	// Health check targets
	VectorStore vectorstore.VectorStore
	Sections    storage.SectionStore
	Collection  string

	CORSOrigins []string
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(CORS(deps.CORSOrigins))

	chatHandler := handlers.NewChatHandler(deps.ChatService)
	sectionsHandler := handlers.NewSectionsHandler(deps.SectionService)
	feedbackHandler := handlers.NewFeedbackHandler(deps.FeedbackService)

	r.Method(http.MethodPost, "/chat", chatHandler)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/acts", handlers.NewActsHandler(deps.CatalogService))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.VectorStore, deps.Sections, deps.Collection))

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", feedbackHandler.Submit)
			r.Get("/", feedbackHandler.List)
			r.Get("/stats", feedbackHandler.Stats)
		})

		r.Route("/sections", func(r chi.Router) {
			r.Get("/", sectionsHandler.Explore)
			r.Get("/acts", sectionsHandler.Acts)
			r.Get("/lookup", sectionsHandler.Lookup)
			r.Get("/similar", sectionsHandler.Similar)
		})
	})

	r.Get("/sections/view", sectionsHandler.View)

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Get("/", handlers.Status)

	return r
}
