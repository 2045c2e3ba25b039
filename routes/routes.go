package routes

import (
	"net/http"

	_ "github.com/Manuelherrera22/Quinela/docs"
	"github.com/Manuelherrera22/Quinela/handlers"
	"github.com/Manuelherrera22/Quinela/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Match       *handlers.MatchHandler
	Prediction  *handlers.PredictionHandler
	Admin       *handlers.AdminHandler
	Leaderboard *handlers.LeaderboardHandler
	Settings    *handlers.SettingsHandler
	WebSocket   *handlers.WebSocketHandler
	Health      *handlers.HealthHandler
	Metrics     http.Handler
}

func SetupRoutes(router chi.Router, h Handlers, jwtSecret []byte, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	router.Handle("/metrics", h.Metrics)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/{room}", h.WebSocket.ServeWs)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Get("/settings", h.Settings.Get)

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatch)
	})
	router.Route("/standings", func(r chi.Router) {
		r.Get("/", h.Match.AllStandings)
		r.Get("/{group}", h.Match.GroupStandings)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", h.User.Me)
			r.Put("/champion", h.User.SelectChampion)
			r.Post("/avatar", h.User.UploadAvatar)
			r.Get("/stats", h.User.Stats)
			r.Get("/predictions", h.Prediction.ListMine)
		})
		r.Put("/predictions/{matchID}", h.Prediction.SavePrediction)
		r.Get("/leaderboard", h.Leaderboard.Leaderboard)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Put("/matches/{matchID}/result", h.Admin.RecordResult)
			r.Put("/settings/champion", h.Admin.SetChampion)
		})
	})
}
