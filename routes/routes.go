package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hireflow/assess/app"
	"github.com/hireflow/assess/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/candidates", RegisterCandidate(app))
	api.Get("/questions", ListQuestions(app))

	api.Route(`/candidates/{id:^\d+$}/session`, func(r chi.Router) {
		r.Post("/", StartSession(app))
		r.Put("/answers", UpdateAnswers(app))
		r.Post("/save", SaveProgress(app))
		r.Post("/submit", SubmitAttempt(app))
	})

	api.Route("/reviewer", func(r chi.Router) {
		r.Use(middlewares.Reviewer(app.TokenSecret))

		r.Get("/summary", ReviewerSummary(app))
		r.Get("/answers", ReviewerAnswers(app))
		r.Get("/export.csv", ExportCSV(app))
		r.Get("/export.xlsx", ExportXLSX(app))
		r.Post("/catalog/reload", ReloadCatalog(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
