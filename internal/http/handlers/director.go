package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contentfactory/internal/gateway"
)

type consultRequest struct {
	Idea string `json:"idea"`
}

type consultStatusResponse struct {
	gateway.JobStatus
	Suggestion *gateway.DirectorSuggestion `json:"suggestion,omitempty"`
}

// ConsultCreate submits a director consultation. This endpoint always answers
// HTTP 200 and signals failure through the success field only; existing
// consumers branch on the body, never the status code.
func (a *App) ConsultCreate(w http.ResponseWriter, r *http.Request) {
	var body consultRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.json(w, http.StatusOK, map[string]any{"success": false, "error": "invalid payload"})
		return
	}

	spec, err := gateway.Normalize(gateway.JobRequest{Intent: gateway.IntentConsult, Idea: body.Idea})
	if err != nil {
		a.json(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}

	prediction, err := a.Provider.Create(r.Context(), spec)
	if err != nil {
		a.json(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"success": true,
		"jobId":   prediction.ID,
		"status":  "queued",
	})
}

// ConsultStatus polls a consultation job and, once it has succeeded, attaches
// the structured suggestion parsed from the model's text output. Extraction
// is best-effort and never fails: malformed output degrades to a fallback
// suggestion built from the idea echoed in the query string, or from the raw
// output when none is given.
func (a *App) ConsultStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prediction, err := a.Provider.Get(r.Context(), id)
	if err != nil {
		a.providerError(w, err)
		return
	}

	resp := consultStatusResponse{JobStatus: gateway.Translate(prediction)}
	if resp.Status == "succeeded" {
		suggestion := gateway.ExtractSuggestion(gateway.OutputText(prediction), r.URL.Query().Get("idea"))
		resp.Suggestion = &suggestion
	}
	a.json(w, http.StatusOK, resp)
}
