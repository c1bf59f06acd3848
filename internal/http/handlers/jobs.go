package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contentfactory/internal/gateway"
)

// createJobParams is the nested request shape used by current clients.
type createJobParams struct {
	UseUserImage   *bool  `json:"useUserImage"`
	SourceURL      string `json:"sourceUrl"`
	MotionBucketID int    `json:"motion_bucket_id"`
	FPS            int    `json:"fps"`
	Prompt         string `json:"prompt"`
	Style          string `json:"style"`
}

// createJobRequest also accepts the legacy flat shape. Nested values take
// precedence when both are given.
type createJobRequest struct {
	SourceURL string           `json:"sourceUrl"`
	Params    *createJobParams `json:"params"`
}

// shimCreateJob collapses the two accepted wire shapes into one normalized
// request. Compatibility logic lives only here; the normalizer never sees it.
func shimCreateJob(body createJobRequest) gateway.JobRequest {
	params := body.Params
	if params == nil {
		params = &createJobParams{}
	}
	sourceURL := params.SourceURL
	if sourceURL == "" {
		sourceURL = body.SourceURL
	}
	useUserImage := sourceURL != ""
	if params.UseUserImage != nil {
		useUserImage = *params.UseUserImage
	}
	if !useUserImage {
		sourceURL = ""
	}
	return gateway.JobRequest{
		Intent:       gateway.IntentVideo,
		SourceImage:  sourceURL,
		MotionBucket: params.MotionBucketID,
		FPS:          params.FPS,
		Prompt:       params.Prompt,
		Style:        params.Style,
	}
}

// JobCreate accepts a video generation request, submits it to the provider
// and returns the job handle immediately. Creation is fire-and-forget: the
// handler never waits for completion, and repeated identical requests create
// distinct jobs.
func (a *App) JobCreate(w http.ResponseWriter, r *http.Request) {
	var body createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.json(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid payload"})
		return
	}

	req := shimCreateJob(body)
	spec, err := gateway.Normalize(req)
	if err != nil {
		var vErr *gateway.ValidationError
		if errors.As(err, &vErr) {
			a.json(w, http.StatusBadRequest, map[string]any{
				"success":         false,
				"error":           vErr.Message,
				"required_action": vErr.RequiredAction,
			})
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
		"meta": map[string]any{
			"type": "img2video",
			"params": map[string]any{
				"sourceUrl":        req.SourceImage,
				"motion_bucket_id": req.MotionBucket,
				"fps":              req.FPS,
				"prompt":           req.Prompt,
				"style":            req.Style,
			},
		},
	})
}

// JobStatus serves one fresh status lookup. Nothing is cached between polls;
// the provider is the sole source of truth.
func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	prediction, err := a.Provider.Get(r.Context(), id)
	if err != nil {
		a.providerError(w, err)
		return
	}
	a.json(w, http.StatusOK, gateway.Translate(prediction))
}
