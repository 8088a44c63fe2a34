package synthesia

import (
	"math/rand"
)

// Candidate pools for randomized presentation parameters. Direct-mode
// submissions draw an avatar and a background; template mode draws a
// template id.
var (
	avatarIDs = []string{
		"anna_costume1_cameraA",
		"jack_costume1_cameraA",
		"sophia_costume2_cameraA",
		"isabella_costume1_cameraA",
	}
	backgroundIDs = []string{
		"green_screen",
		"off_white",
		"warm_white",
		"light_pink",
	}
	templateIDs = []string{
		"0b1a5e0e-0d5f-4b3e-9e86-1c6da2a1b7aa",
		"5c9e8d42-7b11-4f6e-8a0f-3f2f4d9be301",
		"e3b47a19-2ce0-47f2-93d4-6f90ad4e7c55",
	}
)

// DefaultVisibility is applied to template-mode submissions.
const DefaultVisibility = "private"

// Picker selects one of n candidates. The default implementation is
// uniform with replacement; tests inject a deterministic one.
type Picker interface {
	Pick(n int) int
}

type randPicker struct{}

func (randPicker) Pick(n int) int { return rand.Intn(n) }

// RequestBuilder assembles validated video requests from generated text
// plus caller-supplied metadata.
type RequestBuilder struct {
	picker Picker
}

// NewRequestBuilder creates a builder. A nil picker selects uniformly at
// random.
func NewRequestBuilder(picker Picker) *RequestBuilder {
	if picker == nil {
		picker = randPicker{}
	}
	return &RequestBuilder{picker: picker}
}

// Direct builds a single-scene direct-script request with a randomly chosen
// avatar and background.
func (b *RequestBuilder) Direct(screenplay, title, description string, test bool) (*CreateVideoRequest, error) {
	req := &CreateVideoRequest{
		Test:        test,
		Title:       title,
		Description: description,
		AspectRatio: DefaultAspectRatio,
		Input: []Scene{
			{
				ScriptText: screenplay,
				Avatar:     avatarIDs[b.picker.Pick(len(avatarIDs))],
				Background: backgroundIDs[b.picker.Pick(len(backgroundIDs))],
			},
		},
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// FromTemplate builds a template-mode request with a randomly chosen
// template id. When templateID is non-empty it overrides the random choice.
func (b *RequestBuilder) FromTemplate(screenplay, title, description, templateID string, test bool) (*CreateVideoFromTemplateRequest, error) {
	if templateID == "" {
		templateID = templateIDs[b.picker.Pick(len(templateIDs))]
	}
	req := &CreateVideoFromTemplateRequest{
		Test:         test,
		TemplateID:   templateID,
		TemplateData: TemplateData{Screenplay: screenplay},
		Visibility:   DefaultVisibility,
		Title:        title,
		Description:  description,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
