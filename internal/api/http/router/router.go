package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/giftable/giftable-server/internal/api/http/handler"
	"github.com/giftable/giftable-server/internal/api/http/middleware"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/service"
)

// Router assembles the HTTP API: route tree, CORS policy and the
// logging, authentication and admin middleware.
type Router struct {
	authService      *service.Auth
	peopleService    *service.People
	occasionsService *service.Occasions
	giftsService     *service.Gifts
	adminService     *service.Admin
	suggester        handler.Suggester
	db               handler.Pinger
	corsOrigin       string
	logger           *logger.Logger
}

// New creates a Router over the application services.
func New(
	authService *service.Auth,
	peopleService *service.People,
	occasionsService *service.Occasions,
	giftsService *service.Gifts,
	adminService *service.Admin,
	suggester handler.Suggester,
	db handler.Pinger,
	corsOrigin string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:      authService,
		peopleService:    peopleService,
		occasionsService: occasionsService,
		giftsService:     giftsService,
		adminService:     adminService,
		suggester:        suggester,
		db:               db,
		corsOrigin:       corsOrigin,
		logger:           logger,
	}
}

// Register builds the complete handler chain.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	peopleHandler := handler.NewPeople(r.peopleService, r.logger)
	occasionsHandler := handler.NewOccasions(r.occasionsService, r.logger)
	giftsHandler := handler.NewGifts(r.giftsService, r.logger)
	adminHandler := handler.NewAdmin(r.adminService, r.logger)
	suggestionsHandler := handler.NewSuggestions(r.suggester, r.logger)
	healthHandler := handler.NewHealth(r.db)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{r.corsOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler.Check)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", authHandler.Register)
			auth.Post("/login", authHandler.Login)
			auth.Post("/forgot-password", authHandler.ForgotPassword)
			auth.Post("/reset-password", authHandler.ResetPassword)
			auth.Get("/verify", authHandler.Verify)

			auth.Group(func(private chi.Router) {
				private.Use(authenticate.Handle)
				private.Post("/logout", authHandler.Logout)
				private.Get("/me", authHandler.Me)
			})
		})

		api.Group(func(private chi.Router) {
			private.Use(authenticate.Handle)

			private.Route("/people", func(people chi.Router) {
				people.Get("/", peopleHandler.List)
				people.Post("/", peopleHandler.Create)
				people.Patch("/{id}", peopleHandler.Update)
				people.Delete("/{id}", peopleHandler.Delete)
			})

			private.Route("/occasions", func(occasions chi.Router) {
				occasions.Get("/", occasionsHandler.List)
				occasions.Post("/", occasionsHandler.Create)
				occasions.Delete("/{id}", occasionsHandler.Delete)
			})

			private.Route("/gifts", func(gifts chi.Router) {
				gifts.Get("/", giftsHandler.List)
				gifts.Post("/", giftsHandler.Create)
				gifts.Patch("/{id}/status", giftsHandler.UpdateStatus)
				gifts.Delete("/{id}", giftsHandler.Delete)
			})

			private.Post("/ai/suggestions", suggestionsHandler.Suggest)

			private.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.RequireAdmin)
				admin.Get("/users", adminHandler.ListUsers)
				admin.Patch("/users/{id}/admin", adminHandler.SetRole)
				admin.Delete("/users/{id}", adminHandler.DeleteUser)
				admin.Post("/users/{id}/reset-link", adminHandler.CreateResetLink)
			})
		})
	})

	return mux
}
