// Package synthesia provides the typed request/response contract and the
// stateless HTTP client for the Synthesia video-generation API.
package synthesia

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultAspectRatio is used when the caller does not specify one.
const DefaultAspectRatio = "9:16"

// Scene is one scripted segment of a direct-mode video.
type Scene struct {
	ScriptText string `json:"scriptText" validate:"required"`
	Avatar     string `json:"avatar" validate:"required"`
	Background string `json:"background" validate:"required"`
}

// CreateVideoRequest is the payload for direct-script video creation.
// Field names serialize to the camelCase names the service expects.
type CreateVideoRequest struct {
	Test        bool    `json:"test"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	AspectRatio string  `json:"aspectRatio" validate:"required"`
	Input       []Scene `json:"input" validate:"required,min=1,dive"`
}

// Validate checks the request before any network call is made.
func (r *CreateVideoRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid video request: %w", err)
	}
	return validateAspectRatio(r.AspectRatio)
}

// TemplateData carries the variables substituted into a video template.
type TemplateData struct {
	Screenplay string `json:"screenplay" validate:"required"`
}

// CreateVideoFromTemplateRequest is the payload for template-mode video
// creation.
type CreateVideoFromTemplateRequest struct {
	Test         bool         `json:"test"`
	TemplateID   string       `json:"templateId" validate:"required"`
	TemplateData TemplateData `json:"templateData"`
	Visibility   string       `json:"visibility" validate:"required"`
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description"`
}

// Validate checks the request before any network call is made.
func (r *CreateVideoFromTemplateRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid template video request: %w", err)
	}
	return nil
}

// validateAspectRatio enforces the colon-delimited W:H ratio form.
func validateAspectRatio(ratio string) error {
	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return fmt.Errorf("aspect ratio %q must be in W:H form", ratio)
	}
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err != nil {
			return fmt.Errorf("aspect ratio %q must be numeric: %w", ratio, err)
		}
	}
	return nil
}

// VideoStatus is the projection returned by status queries.
type VideoStatus struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// VideoResponse is a partial view of the service's video object. Only the
// documented fields are typed; everything else the service returns is
// preserved in Extra.
type VideoResponse struct {
	ID        string
	Status    string
	CreatedAt *float64
	Extra     map[string]any
}

// UnmarshalJSON folds documented fields into their typed slots and keeps the
// rest in Extra.
func (r *VideoResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Extra = make(map[string]any)
	for key, value := range raw {
		switch key {
		case "id":
			if s, ok := value.(string); ok {
				r.ID = s
				continue
			}
		case "status":
			if s, ok := value.(string); ok {
				r.Status = s
				continue
			}
		case "createdAt":
			if n, ok := value.(float64); ok {
				createdAt := n
				r.CreatedAt = &createdAt
				continue
			}
		}
		r.Extra[key] = value
	}

	return nil
}

// AsMap reassembles the full response body, typed fields included.
func (r *VideoResponse) AsMap() map[string]any {
	m := make(map[string]any, len(r.Extra)+3)
	for key, value := range r.Extra {
		m[key] = value
	}
	if r.ID != "" {
		m["id"] = r.ID
	}
	if r.Status != "" {
		m["status"] = r.Status
	}
	if r.CreatedAt != nil {
		m["createdAt"] = *r.CreatedAt
	}
	return m
}
