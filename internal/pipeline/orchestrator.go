package pipeline

import (
	"context"

	"github.com/jonathan/proverb-studio/internal/llm"
)

// Orchestrator owns the two text-generation stages. Both load their
// templates from the same prompts directory at construction time; a missing
// template is a fatal configuration error surfaced here.
type Orchestrator struct {
	story      *Stage
	screenplay *Stage
}

// NewOrchestrator builds both stages against the given completion client.
func NewOrchestrator(client llm.Client, promptsDir string) (*Orchestrator, error) {
	story, err := NewStoryStage(client, promptsDir)
	if err != nil {
		return nil, err
	}
	screenplay, err := NewScreenplayStage(client, promptsDir)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		story:      story,
		screenplay: screenplay,
	}, nil
}

// GenerateStory produces a short story illustrating the proverb.
func (o *Orchestrator) GenerateStory(ctx context.Context, proverb string) (string, error) {
	output, err := o.story.Run(ctx, map[string]string{"proverb": proverb})
	if err != nil {
		return "", err
	}
	return output["story"], nil
}

// GenerateScreenplay converts a story into screenplay format.
func (o *Orchestrator) GenerateScreenplay(ctx context.Context, story, proverb string) (string, error) {
	output, err := o.screenplay.Run(ctx, map[string]string{
		"story":   story,
		"proverb": proverb,
	})
	if err != nil {
		return "", err
	}
	return output["screenplay"], nil
}
