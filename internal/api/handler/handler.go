// Package handler provides HTTP handlers for all API endpoints.
// Handlers read a store snapshot and run the dashboard engine directly; no
// service layer. Read responses are cached by store revision.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/albapepper/scoracle-scout/internal/api/respond"
	"github.com/albapepper/scoracle-scout/internal/cache"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/dashboard"
	"github.com/albapepper/scoracle-scout/internal/db"
	"github.com/albapepper/scoracle-scout/internal/store"
)

// maxBodyBytes caps request bodies; an import of a full event fits easily.
const maxBodyBytes = 16 << 20

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  store.Store
	engine *dashboard.Engine
	cache  *cache.Cache
	cfg    *config.Config
	pool   *db.Pool // nil unless STORE_DRIVER=postgres
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(st store.Store, engine *dashboard.Engine, c *cache.Cache, cfg *config.Config, pool *db.Pool, logger *slog.Logger) *Handler {
	return &Handler{
		store:  st,
		engine: engine,
		cache:  c,
		cfg:    cfg,
		pool:   pool,
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and active point table version.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":         "Scoracle Scout API",
		"version":      "1.0.0",
		"status":       "running",
		"docs":         "/docs",
		"store":        h.cfg.StoreDriver,
		"pointsSeason": h.engine.Table().Version,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies the record store is readable.
// @Summary Store health check
// @Description Reads the store revision and, for Postgres, pings the pool.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	rev, err := h.store.Revision(r.Context())
	if err == nil && h.pool != nil {
		err = h.pool.HealthCheck(r.Context())
	}
	if err != nil {
		h.logger.Warn("Store health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"store":     h.cfg.StoreDriver,
			"error":     "Store check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"store":     h.cfg.StoreDriver,
		"revision":  rev,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, purges).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// apiError is a handler failure that maps to a specific status and code.
type apiError struct {
	status  int
	code    string
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &apiError{status: http.StatusBadRequest, code: code, message: message}
}

func notFound(message string) error {
	return &apiError{status: http.StatusNotFound, code: "NOT_FOUND", message: message}
}

// writeErr maps err to a structured error response.
func (h *Handler) writeErr(w http.ResponseWriter, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		respond.WriteError(w, ae.status, ae.code, ae.message)
		return
	}
	h.logger.Error("Request failed", "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
}

// serveCached answers from the cache when possible, otherwise builds the
// value, caches its JSON under key, and writes it. key must include the
// store revision the value was derived from.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build()
	if err != nil {
		h.writeErr(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.writeErr(w, err)
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

// revisionKey reads the store revision for use in a cache key.
func (h *Handler) revisionKey(r *http.Request) (string, error) {
	rev, err := h.store.Revision(r.Context())
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(rev, 10), nil
}

// invalidate drops cached responses after a local write.
func (h *Handler) invalidate() {
	h.cache.Purge()
}

func queryBool(r *http.Request, key string) (bool, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("INVALID_PARAM", key+" must be a boolean")
	}
	return b, nil
}
