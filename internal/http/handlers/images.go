package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"contentfactory/internal/gateway"
)

type imageProcessRequest struct {
	SourceURL string `json:"sourceUrl"`
	Action    string `json:"action"`
	Scale     int    `json:"scale"`
}

// ImageProcess submits an upscaling or face-restoration job. Same
// fire-and-forget contract as video creation; the client polls /job/{id}.
func (a *App) ImageProcess(w http.ResponseWriter, r *http.Request) {
	var body imageProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.json(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid payload"})
		return
	}

	spec, err := gateway.Normalize(gateway.JobRequest{
		Intent:      gateway.IntentImage,
		SourceImage: body.SourceURL,
		Action:      body.Action,
		Scale:       body.Scale,
	})
	if err != nil {
		var vErr *gateway.ValidationError
		if errors.As(err, &vErr) {
			a.json(w, http.StatusBadRequest, map[string]any{"success": false, "error": vErr.Message})
			return
		}
		a.json(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	prediction, err := a.Provider.Create(r.Context(), spec)
	if err != nil {
		a.providerError(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"jobId":   prediction.ID,
		"status":  "queued",
		"meta":    map[string]any{"type": body.Action},
	})
}
