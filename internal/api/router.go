package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/airsense/platform/internal/api/handlers"
	mw "github.com/airsense/platform/internal/api/middleware"
	"github.com/airsense/platform/internal/auth"
)

type Dependencies struct {
	Tokens              *auth.TokenIssuer
	Denylist            auth.Denylist
	AuthHandler         *handlers.AuthHandler
	UsersHandler        *handlers.UsersHandler
	NodesHandler        *handlers.NodesHandler
	MeasurementsHandler *handlers.MeasurementsHandler
	HealthHandler       *handlers.HealthHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	// Health endpoints
	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	protect := mw.VerifyIdentity(dep.Tokens, dep.Denylist)

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", dep.AuthHandler.Login)
		ar.Post("/register", dep.AuthHandler.Register)
		ar.Post("/sendVerificationEmail", dep.AuthHandler.SendVerificationEmail)
		ar.Put("/verifyEmail", dep.AuthHandler.VerifyEmail)
		ar.Post("/resetPassword", dep.AuthHandler.ResetPassword)

		ar.Group(func(pr chi.Router) {
			pr.Use(protect)
			pr.Post("/logout", dep.AuthHandler.Logout)
			pr.Get("/checkAuth", dep.AuthHandler.CheckAuth)
			pr.Put("/updateUserData", dep.AuthHandler.UpdateUserData)
		})
	})

	// Sensor ingest is public: nodes authenticate by knowing their uuid.
	r.Route("/mediciones", func(mr chi.Router) {
		mr.Get("/", dep.MeasurementsHandler.List)
		mr.Post("/", dep.MeasurementsHandler.Create)
		mr.Get("/ultima", dep.MeasurementsHandler.Latest)
		mr.Get("/mapa-calor", dep.MeasurementsHandler.Heatmap)
		mr.Get("/rango", dep.MeasurementsHandler.Range)

		mr.Group(func(pr chi.Router) {
			pr.Use(protect)
			pr.Get("/diaria", dep.MeasurementsHandler.Daily)
		})
	})

	r.Route("/node", func(nr chi.Router) {
		nr.Use(protect)
		nr.Post("/", dep.NodesHandler.Create)
		nr.Get("/", dep.NodesHandler.Get)
		nr.Get("/all", dep.NodesHandler.List)
	})

	r.Route("/users", func(ur chi.Router) {
		ur.Use(protect)
		ur.Get("/", dep.UsersHandler.Get)
		ur.Post("/", dep.UsersHandler.Create)
		ur.Put("/{email}", dep.UsersHandler.Update)
		ur.Delete("/{email}", dep.UsersHandler.Delete)
	})

	return r
}
