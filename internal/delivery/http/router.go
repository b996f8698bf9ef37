package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestalbum/internal/delivery/http/controllers"
	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/delivery/http/middleware"
	"guestalbum/internal/domain"
)

// RouterConfig carries the controllers and cross-cutting settings of the API.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string

	Events    *controllers.EventController
	Public    *controllers.PublicController
	Lifecycle *controllers.LifecycleController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	organizer := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	scheduler := middleware.RequireSubject(cfg.Verifier, domain.SchedulerSubject, cfg.Logger)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Organizer
	mux.HandleFunc("POST /events", organizer(cfg.Events.CreateEvent))
	mux.HandleFunc("GET /events", organizer(cfg.Events.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", organizer(cfg.Events.GetEvent))
	mux.HandleFunc("GET /events/{eventID}/status", organizer(cfg.Events.GetEventStatus))
	mux.HandleFunc("PATCH /events/{eventID}/payment", organizer(cfg.Events.UpdatePaymentStatus))
	mux.HandleFunc("DELETE /events/{eventID}", organizer(cfg.Events.DeleteEvent))

	// Guests
	mux.HandleFunc("GET /public/events/{eventCode}/status", cfg.Public.GetStatus)
	mux.HandleFunc("POST /public/events/{eventCode}/media", cfg.Public.UploadMedia)

	// Scheduler
	mux.HandleFunc("POST /internal/lifecycle/run", scheduler(cfg.Lifecycle.RunSweep))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}
