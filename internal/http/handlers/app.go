package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"contentfactory/internal/providers/replicate"
)

// App is the handler container. The gateway holds no job state: the provider
// client is the only collaborator, and any instance can serve any request.
type App struct {
	Provider *replicate.Client
	Logger   zerolog.Logger
}

func NewApp(provider *replicate.Client, logger zerolog.Logger) *App {
	return &App{Provider: provider, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// providerError maps a failed provider call onto the wire. Provider-supplied
// detail text is passed through verbatim for diagnosability; a missing
// credential is distinguished so operators can tell misconfiguration from
// provider trouble.
func (a *App) providerError(w http.ResponseWriter, err error) {
	if errors.Is(err, replicate.ErrMissingAPIToken) {
		a.json(w, http.StatusInternalServerError, map[string]any{"error": "Config Error"})
		return
	}
	var reqErr *replicate.RequestError
	if errors.As(err, &reqErr) {
		a.json(w, http.StatusInternalServerError, map[string]any{
			"error":   "Provider Error",
			"details": reqErr.Details,
		})
		return
	}
	a.Logger.Error().Err(err).Msg("provider call failed")
	a.json(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
}
