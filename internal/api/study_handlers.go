package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/quizflash/internal/errors"
	"github.com/vytor/quizflash/internal/models"
	"github.com/vytor/quizflash/internal/services"
	"github.com/vytor/quizflash/internal/srs"
)

// reviewRequest carries either a difficulty (three-level scale) or a quality
// (six-level scale). Scale defaults to the server's configured scale.
type reviewRequest struct {
	Scale          string `json:"scale" validate:"omitempty,oneof=three six"`
	Difficulty     string `json:"difficulty" validate:"omitempty,oneof=hard medium easy"`
	Quality        *int   `json:"quality" validate:"omitempty,min=0,max=5"`
	ResponseTimeMs int64  `json:"response_time_ms" validate:"min=0"`
}

func (s *Server) handleStudy(w http.ResponseWriter, r *http.Request) {
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.study.NextCards(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.StudyCard{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := s.bind(r, &req, errors.NewInvalidInputError); err != nil {
		handleError(w, r, err)
		return
	}

	scale := s.defaultScale
	if req.Scale != "" {
		if scale, err = srs.ParseScale(req.Scale); err != nil {
			handleError(w, r, err)
			return
		}
	}

	out, err := s.study.Review(r.Context(), userFromContext(r.Context()), cardID, services.ReviewInput{
		Scale:          scale,
		Difficulty:     req.Difficulty,
		Quality:        req.Quality,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleResetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	n, err := s.study.ResetDeck(r.Context(), userFromContext(r.Context()), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"reset": n})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	cardID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			handleError(w, r, errors.NewBadRequestError("invalid limit: "+raw))
			return
		}
	}

	history, err := s.study.History(r.Context(), userFromContext(r.Context()), cardID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if history == nil {
		history = []models.ReviewHistory{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"history": history})
}
