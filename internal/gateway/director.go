package gateway

import (
	"encoding/json"
	"strings"
)

// DirectorSuggestion is the structured result of an AI consultation.
type DirectorSuggestion struct {
	EnhancedPrompt   string `json:"enhanced_prompt"`
	CameraAngle      string `json:"camera_angle"`
	RecommendedModel string `json:"recommended_model"`
	Reasoning        string `json:"reasoning"`
	FPS              int    `json:"fps"`
}

const promptQualitySuffix = ", cinematic lighting, masterful composition, 8k detail"

const fallbackReasoning = "The model response could not be parsed as a structured suggestion; the raw output was used instead."

// ExtractSuggestion parses the model's free-text response into a suggestion.
// The model frequently wraps its JSON in commentary, so the substring from
// the first '{' to the last '}' is treated as the payload. This is a
// best-effort strip, not a parser: when it fails, a fallback suggestion is
// built from the original idea (or the raw text when no idea is available).
// It never returns an error.
func ExtractSuggestion(text, idea string) DirectorSuggestion {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var suggestion DirectorSuggestion
		if err := json.Unmarshal([]byte(text[start:end+1]), &suggestion); err == nil {
			return fillDefaults(suggestion, text, idea)
		}
	}
	return fallbackSuggestion(text, idea)
}

func fillDefaults(s DirectorSuggestion, text, idea string) DirectorSuggestion {
	if s.EnhancedPrompt == "" {
		s.EnhancedPrompt = fallbackPrompt(text, idea)
	}
	if s.CameraAngle == "" {
		s.CameraAngle = "Dynamic"
	}
	if s.RecommendedModel == "" {
		s.RecommendedModel = DefaultVideoModelName
	}
	if s.FPS == 0 {
		s.FPS = 24
	}
	return s
}

func fallbackSuggestion(text, idea string) DirectorSuggestion {
	return DirectorSuggestion{
		EnhancedPrompt:   fallbackPrompt(text, idea),
		CameraAngle:      "Dynamic",
		RecommendedModel: DefaultVideoModelName,
		Reasoning:        fallbackReasoning,
		FPS:              24,
	}
}

func fallbackPrompt(text, idea string) string {
	base := strings.TrimSpace(idea)
	if base == "" {
		base = strings.TrimSpace(text)
	}
	return base + promptQualitySuffix
}
