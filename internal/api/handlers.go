package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-chi/chi/v5"
	"github.com/vytor/quizflash/internal/errors"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/services"
	"github.com/vytor/quizflash/internal/srs"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the HTTP layer calls into.
type Dependencies struct {
	Decks        services.DeckService
	Study        services.StudyService
	Stats        services.StatsService
	DB           Pinger
	DefaultScale srs.Scale
}

type Server struct {
	decks        services.DeckService
	study        services.StudyService
	stats        services.StatsService
	db           Pinger
	defaultScale srs.Scale
	validate     *validator.Validate
	trans        ut.Translator
}

func NewServer(deps Dependencies) (*Server, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		decks:        deps.Decks,
		study:        deps.Study,
		stats:        deps.Stats,
		db:           deps.DB,
		defaultScale: deps.DefaultScale,
		validate:     validate,
		trans:        trans,
	}, nil
}

const maxBodyBytes = 1 << 20

// bind decodes a JSON body into dst and validates it. Field failures are
// reported through invalid so callers choose the error code.
func (s *Server) bind(r *http.Request, dst any, invalid func(field, reason string) *errors.AppError) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("malformed JSON body: " + err.Error())
	}

	if err := s.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return invalid(fe.Field(), fe.Translate(s.trans))
		}
		return errors.NewInternalError(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("failed to encode response: %v", err)
	}
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return id, nil
}
