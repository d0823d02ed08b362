package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(userMiddleware)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}/cards", s.handleListCards)
		r.Post("/decks/{id}/cards", s.handleAddCard)
		r.Get("/decks/{id}/study", s.handleStudy)
		r.Post("/decks/{id}/reset", s.handleResetDeck)
		r.Post("/cards/{id}/review", s.handleReview)
		r.Get("/cards/{id}/history", s.handleHistory)
		r.Get("/stats", s.handleStats)
	})

	return r
}
