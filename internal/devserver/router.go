// Package devserver is a self-contained development backend implementing
// the quiz REST contract over sqlite. It exists so the client can be run
// and tested without the production backend; it is not that backend.
package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires the REST contract under /api. Listing public quizzes is
// the only anonymous operation; quiz detail accepts anonymous callers but
// only reveals correct answers to the creator.
func NewRouter(api *API, auth *Authenticator) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", api.HandleLogin)

		r.Route("/quizzes", func(r chi.Router) {
			r.Get("/", api.HandleListPublic)
			r.With(auth.Require).Post("/", api.HandleCreate)
			r.With(auth.Require).Get("/my", api.HandleListMine)
			r.With(auth.Require).Get("/my-results", api.HandleMyResults)
			r.With(auth.Require).Get("/attempts/{attemptID}", api.HandleGetAttempt)

			r.With(auth.Optional).Get("/{quizID}", api.HandleGetQuiz)
			r.With(auth.Require).Put("/{quizID}", api.HandleUpdate)
			r.With(auth.Require).Delete("/{quizID}", api.HandleDelete)
			r.With(auth.Require).Post("/{quizID}/submit", api.HandleSubmit)
			r.With(auth.Require).Get("/{quizID}/my-latest-attempt", api.HandleLatestAttempt)
		})
	})

	return r
}
