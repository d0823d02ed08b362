package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/quizflash/internal/logger"
)

func TestMiddleware_AttachesRequestAndUserFields(t *testing.T) {
	var got *logger.Logger
	h := loggingMiddleware(userMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logger.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/decks/1/next", nil)
	req.Header.Set("X-Request-ID", "req-42")
	req.Header.Set(userHeaderName, "7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, got)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	requestID, _ := got.Field(logger.FieldRequestID)
	assert.Equal(t, "req-42", requestID)
	path, _ := got.Field(logger.FieldPath)
	assert.Equal(t, "/api/decks/1/next", path)
	userID, _ := got.Field(logger.FieldUserID)
	assert.Equal(t, int64(7), userID)
}
