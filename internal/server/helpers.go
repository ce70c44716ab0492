package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"ytdeck/internal/app"
	"ytdeck/internal/blocking"
	"ytdeck/internal/domain/logger"
	"ytdeck/internal/feed"
	"ytdeck/internal/repo"
	"ytdeck/internal/sources"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Pl.E("Failed to encode JSON response: %v", err)
	}
}

// writeError responds with a short generic message. The full error only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Pl.E("%s %s [%s]: %v", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	} else {
		logger.Pl.D(1, "%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// classifyError maps errors onto status codes and public messages.
func classifyError(err error) (int, string) {
	var bad *badRequestError
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, app.ErrNoSubscriptions):
		return http.StatusNotFound, "no subscriptions"
	case errors.Is(err, app.ErrEmptyQuery),
		errors.Is(err, app.ErrEmptyID),
		errors.Is(err, blocking.ErrEmptyKeyword),
		errors.Is(err, blocking.ErrEmptyChannelID):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, sources.ErrRateLimited):
		return http.StatusServiceUnavailable, "rate limited upstream"
	case errors.Is(err, feed.ErrAllSourcesFailed):
		return http.StatusBadGateway, "upstream unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// badRequestError marks malformed client input.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return "bad request: " + e.err.Error() }

func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return badRequest("decode body: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return badRequest("trailing data after JSON body")
	}
	return nil
}

// pathParam returns the unescaped chi URL parameter.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// queryInt reads a non-negative integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, badRequest("invalid %s %q", name, v)
	}
	return n, nil
}
