package logger

import "time"

// Field keys attached by the HTTP layer and the study services.
const (
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldRemoteAddr = "remote_addr"
	FieldStatus     = "status"
	FieldSize       = "size"
	FieldDurationMs = "duration_ms"
	FieldUserID     = "user_id"
	FieldDeckID     = "deck_id"
	FieldCardID     = "card_id"
)

// WithRequest tags a logger with the identity of an HTTP request.
// remoteAddr is omitted when empty.
func (l *Logger) WithRequest(requestID, method, path, remoteAddr string) *Logger {
	fields := map[string]any{
		FieldRequestID: requestID,
		FieldMethod:    method,
		FieldPath:      path,
	}
	if remoteAddr != "" {
		fields[FieldRemoteAddr] = remoteAddr
	}
	return l.derive(l.prefix, fields)
}

// WithResponse adds the outcome of a finished request.
func (l *Logger) WithResponse(status, size int, elapsed time.Duration) *Logger {
	return l.derive(l.prefix, map[string]any{
		FieldStatus:     status,
		FieldSize:       size,
		FieldDurationMs: elapsed.Milliseconds(),
	})
}

// WithUser tags a logger with the studying user.
func (l *Logger) WithUser(userID int64) *Logger {
	return l.derive(l.prefix, map[string]any{FieldUserID: userID})
}

// WithDeck tags a logger with a deck. Zero ids are skipped.
func (l *Logger) WithDeck(deckID int64) *Logger {
	if deckID == 0 {
		return l
	}
	return l.derive(l.prefix, map[string]any{FieldDeckID: deckID})
}

// WithCard tags a logger with a card. Zero ids are skipped.
func (l *Logger) WithCard(cardID int64) *Logger {
	if cardID == 0 {
		return l
	}
	return l.derive(l.prefix, map[string]any{FieldCardID: cardID})
}

// Field returns the value of a field set on l, if any.
func (l *Logger) Field(key string) (any, bool) {
	v, ok := l.fields[key]
	return v, ok
}
