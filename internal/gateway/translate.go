package gateway

import (
	"encoding/json"
	"strings"

	"contentfactory/internal/providers/replicate"
)

// JobStatus is the uniform view of a provider job served back to clients.
// The status vocabulary is the provider's own, passed through verbatim:
// queued, starting, processing, succeeded, failed, canceled.
type JobStatus struct {
	JobID       string `json:"jobId"`
	Status      string `json:"status"`
	Output      any    `json:"output"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Translate maps a raw prediction to a JobStatus. Output keeps its provider
// shape whole: a sequence of frame URLs stays a sequence, a scalar URL stays
// a scalar. Picking elements out of a sequence is the caller's business.
func Translate(p *replicate.Prediction) JobStatus {
	status := JobStatus{
		JobID:       p.ID,
		Status:      p.Status,
		CompletedAt: p.CompletedAt,
	}
	if len(p.Output) > 0 {
		var out any
		if err := json.Unmarshal(p.Output, &out); err == nil {
			status.Output = out
		}
	}
	return status
}

// OutputText flattens a prediction's output into one string. Language models
// stream their output as a sequence of text chunks; scalar string output is
// returned as-is. Non-text output yields the empty string.
func OutputText(p *replicate.Prediction) string {
	if len(p.Output) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return single
	}
	var chunks []string
	if err := json.Unmarshal(p.Output, &chunks); err == nil {
		return strings.Join(chunks, "")
	}
	return ""
}
