// Package pipeline implements the generate-critique-revise text stages and
// their orchestration into the video submission flow.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/proverb-studio/internal/llm"
	"github.com/jonathan/proverb-studio/internal/prompts"
)

// acceptSentinel is the critique prefix that skips the revision round.
// Matching is a literal prefix check on the trimmed, lowercased critique.
const acceptSentinel = "accept"

// StageConfig parameterizes one instantiation of the text-generation stage.
type StageConfig struct {
	Name             string
	Template         string
	CritiqueTemplate string
	InputFields      []string
	OutputField      string
}

// Stage runs a single generate -> critique -> optional revise cycle against
// a text-completion client. At most one revision round is performed; there
// is no loop back to the critique after revising.
type Stage struct {
	name             string
	template         string
	critiqueTemplate string
	inputFields      []string
	outputField      string
	client           llm.Client
}

// NewStage builds a stage from its templates and field declarations.
func NewStage(client llm.Client, cfg StageConfig) *Stage {
	return &Stage{
		name:             cfg.Name,
		template:         cfg.Template,
		critiqueTemplate: cfg.CritiqueTemplate,
		inputFields:      cfg.InputFields,
		outputField:      cfg.OutputField,
		client:           client,
	}
}

// Run executes the stage and returns a map holding only the declared output
// field. Critique text and echoed inputs are internal state and never part
// of the result. Completion failures propagate to the caller; the stage
// performs no retries.
func (s *Stage) Run(ctx context.Context, inputs map[string]string) (map[string]string, error) {
	for _, field := range s.inputFields {
		if _, ok := inputs[field]; !ok {
			return nil, fmt.Errorf("stage %s: missing input field %q", s.name, field)
		}
	}

	prompt := prompts.Format(s.template, inputs)
	output, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("stage %s: generation failed: %w", s.name, err)
	}

	critiquePrompt := prompts.Format(s.critiqueTemplate, map[string]string{s.outputField: output})
	critique, err := s.client.Complete(ctx, critiquePrompt)
	if err != nil {
		return nil, fmt.Errorf("stage %s: critique failed: %w", s.name, err)
	}

	if needsRevision(critique) {
		revised, err := s.client.Complete(ctx, prompt+"\n"+critique)
		if err != nil {
			return nil, fmt.Errorf("stage %s: revision failed: %w", s.name, err)
		}
		output = revised
	}

	return map[string]string{s.outputField: output}, nil
}

// needsRevision applies the acceptance policy: an empty critique or one
// starting with the accept sentinel keeps the generated text as-is.
func needsRevision(critique string) bool {
	comments := strings.ToLower(strings.TrimSpace(critique))
	return comments != "" && !strings.HasPrefix(comments, acceptSentinel)
}

// NewStoryStage loads the story templates from promptsDir and returns the
// stage that turns a proverb into a short story.
func NewStoryStage(client llm.Client, promptsDir string) (*Stage, error) {
	template, err := prompts.Load(promptsDir, prompts.StoryGeneration)
	if err != nil {
		return nil, err
	}
	critique, err := prompts.Load(promptsDir, prompts.StoryCritique)
	if err != nil {
		return nil, err
	}

	return NewStage(client, StageConfig{
		Name:             "story",
		Template:         template,
		CritiqueTemplate: critique,
		InputFields:      []string{"proverb"},
		OutputField:      "story",
	}), nil
}

// NewScreenplayStage loads the screenplay templates from promptsDir and
// returns the stage that converts a story into screenplay format.
func NewScreenplayStage(client llm.Client, promptsDir string) (*Stage, error) {
	template, err := prompts.Load(promptsDir, prompts.ScreenplayGeneration)
	if err != nil {
		return nil, err
	}
	critique, err := prompts.Load(promptsDir, prompts.ScreenplayCritique)
	if err != nil {
		return nil, err
	}

	return NewStage(client, StageConfig{
		Name:             "screenplay",
		Template:         template,
		CritiqueTemplate: critique,
		InputFields:      []string{"story", "proverb"},
		OutputField:      "screenplay",
	}), nil
}
