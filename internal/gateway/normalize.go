package gateway

import (
	"fmt"

	"contentfactory/internal/providers/replicate"
)

// Intent is the caller's requested operation category.
type Intent string

const (
	IntentVideo   Intent = "video_generate"
	IntentImage   Intent = "image_process"
	IntentConsult Intent = "ai_consult"
)

// Image processing actions accepted on the wire.
const (
	ActionUpscale = "upscale"
	ActionFaceFix = "face_fix"
)

// Validation error codes.
const (
	CodeMissingSourceImage = "missing_source_image"
	CodeUnsupportedAction  = "unsupported_action"
	CodeMissingIdea        = "missing_idea"
)

// ValidationError reports a malformed or incomplete request. The provider is
// never contacted when normalization fails.
type ValidationError struct {
	Code           string
	Message        string
	RequiredAction string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gateway: %s: %s", e.Code, e.Message)
}

// JobRequest is the normalized inbound request, discriminated by Intent.
// Zero values mean "not supplied"; defaults are applied during mapping.
type JobRequest struct {
	Intent Intent

	// video_generate and image_process
	SourceImage string

	// video_generate
	MotionBucket int
	FPS          int
	Prompt       string
	Style        string

	// image_process
	Action string
	Scale  int

	// ai_consult
	Idea string
}

const directorInstruction = "You are a film director advising on short-form product video ads. " +
	"Respond with a single JSON object and nothing else, using exactly these keys: " +
	`"enhanced_prompt", "camera_angle", "recommended_model", "reasoning", "fps". ` +
	"The idea to develop: %s"

// Normalize maps a JobRequest onto a provider job specification. It is a pure
// mapping with no side effects; every provider-specific key and model version
// is decided here and nowhere else.
func Normalize(req JobRequest) (replicate.PredictionSpec, error) {
	switch req.Intent {
	case IntentVideo:
		return normalizeVideo(req)
	case IntentImage:
		return normalizeImage(req)
	case IntentConsult:
		return normalizeConsult(req)
	default:
		return replicate.PredictionSpec{}, &ValidationError{
			Code:    CodeUnsupportedAction,
			Message: fmt.Sprintf("unknown intent %q", req.Intent),
		}
	}
}

func normalizeVideo(req JobRequest) (replicate.PredictionSpec, error) {
	if req.SourceImage == "" {
		return replicate.PredictionSpec{}, &ValidationError{
			Code:           CodeMissingSourceImage,
			Message:        "Text-to-Video generation (No Image) is currently in beta. Please provide a source image.",
			RequiredAction: "upload_image",
		}
	}

	// Qualitative style hints bias the motion bucket, but an explicit value
	// always wins. Out-of-range values are passed through untouched: the
	// gateway is a thin passthrough, the provider owns input validation.
	motion := 127
	switch req.Style {
	case "Dynamic", "Action":
		motion = 180
	case "Calm", "Minimalist":
		motion = 80
	}
	if req.MotionBucket != 0 {
		motion = req.MotionBucket
	}

	fps := req.FPS
	if fps == 0 {
		fps = 6
	}

	return replicate.PredictionSpec{
		Version: modelSVDXT,
		Input: map[string]any{
			"input_image":       req.SourceImage,
			"video_length":      "14_frames_with_svd_xt",
			"motion_bucket_id":  motion,
			"frames_per_second": fps,
			"cond_aug":          0.02,
		},
	}, nil
}

func normalizeImage(req JobRequest) (replicate.PredictionSpec, error) {
	if req.SourceImage == "" {
		return replicate.PredictionSpec{}, &ValidationError{
			Code:           CodeMissingSourceImage,
			Message:        "A source image is required for image processing.",
			RequiredAction: "upload_image",
		}
	}
	switch req.Action {
	case ActionUpscale:
		scale := req.Scale
		if scale == 0 {
			scale = 4
		}
		return replicate.PredictionSpec{
			Version: modelRealESRGAN,
			Input: map[string]any{
				"image":        req.SourceImage,
				"scale":        scale,
				"face_enhance": true,
			},
		}, nil
	case ActionFaceFix:
		// GFPGAN runs at a fixed scale; a requested scale is ignored.
		return replicate.PredictionSpec{
			Version: modelGFPGAN,
			Input: map[string]any{
				"img":   req.SourceImage,
				"scale": 2,
			},
		}, nil
	default:
		return replicate.PredictionSpec{}, &ValidationError{
			Code:    CodeUnsupportedAction,
			Message: fmt.Sprintf("unsupported action %q", req.Action),
		}
	}
}

func normalizeConsult(req JobRequest) (replicate.PredictionSpec, error) {
	if req.Idea == "" {
		return replicate.PredictionSpec{}, &ValidationError{
			Code:    CodeMissingIdea,
			Message: "An idea is required for a consultation.",
		}
	}
	return replicate.PredictionSpec{
		Version: modelLlama2Chat,
		Input: map[string]any{
			"prompt":         fmt.Sprintf(directorInstruction, req.Idea),
			"max_new_tokens": 512,
			"temperature":    0.7,
		},
	}, nil
}
