package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/jonathan/proverb-studio/internal/llm"
	"github.com/jonathan/proverb-studio/internal/store"
	"github.com/jonathan/proverb-studio/internal/synthesia"
)

// Submission modes for the generated screenplay.
const (
	ModeDirect   = "direct"
	ModeTemplate = "template"
)

// VideoService is the slice of the synthesia client the run needs.
type VideoService interface {
	CreateVideo(ctx context.Context, req *synthesia.CreateVideoRequest) (*synthesia.VideoResponse, error)
	CreateVideoFromTemplate(ctx context.Context, req *synthesia.CreateVideoFromTemplateRequest) (*synthesia.VideoResponse, error)
}

// MetadataStore persists one record per submitted video.
type MetadataStore interface {
	Save(ctx context.Context, rec store.VideoRecord) (string, error)
}

// Deps carries the collaborators for a full run.
type Deps struct {
	LLM    llm.Client
	Videos VideoService
	Store  MetadataStore // nil skips persistence with a warning
	Picker synthesia.Picker
	Logger *slog.Logger
	Out    io.Writer // defaults to os.Stdout
}

// RunOptions holds the caller-supplied inputs for a run.
type RunOptions struct {
	Proverb     string
	PromptsDir  string
	Mode        string // ModeDirect (default) or ModeTemplate
	TemplateID  string // optional explicit template in template mode
	Title       string
	Description string
	Test        bool
}

// Result holds the outputs of a completed run.
type Result struct {
	RunID      uuid.UUID
	Story      string
	Screenplay string
	Response   *synthesia.VideoResponse
	RecordID   string
}

// Run orchestrates the end-to-end flow: proverb -> story -> screenplay ->
// video submission -> persisted record. A submission or persistence failure
// aborts the run; nothing is retried.
func Run(ctx context.Context, deps Deps, opts RunOptions) (*Result, error) {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}

	runID := uuid.New()
	logger := deps.Logger.With(slog.String("run_id", runID.String()))

	orchestrator, err := NewOrchestrator(deps.LLM, opts.PromptsDir)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Step 1/4: Generating story...\n")
	story, err := orchestrator.GenerateStory(ctx, opts.Proverb)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "%s\n\n", story)
	logger.Info("generated story", slog.Int("length", len(story)))

	fmt.Fprintf(out, "Step 2/4: Generating screenplay...\n")
	screenplay, err := orchestrator.GenerateScreenplay(ctx, story, opts.Proverb)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "%s\n\n", screenplay)
	logger.Info("generated screenplay", slog.Int("length", len(screenplay)))

	fmt.Fprintf(out, "Step 3/4: Submitting video...\n")
	resp, err := submit(ctx, deps, opts, screenplay)
	if err != nil {
		return nil, err
	}
	raw, err := json.MarshalIndent(resp.AsMap(), "", "  ")
	if err == nil {
		fmt.Fprintf(out, "%s\n", raw)
	}
	logger.Info("submitted video", slog.String("video_id", resp.ID), slog.String("status", resp.Status))

	result := &Result{
		RunID:      runID,
		Story:      story,
		Screenplay: screenplay,
		Response:   resp,
	}

	if deps.Store == nil {
		fmt.Fprintf(out, "No database configured, skipping metadata persistence.\n")
		return result, nil
	}

	fmt.Fprintf(out, "Step 4/4: Storing video metadata...\n")
	recordID, err := deps.Store.Save(ctx, store.NewRecord(opts.Proverb, story, screenplay, resp))
	if err != nil {
		return nil, err
	}
	result.RecordID = recordID
	logger.Info("stored video metadata", slog.String("record_id", recordID))

	return result, nil
}

func submit(ctx context.Context, deps Deps, opts RunOptions, screenplay string) (*synthesia.VideoResponse, error) {
	builder := synthesia.NewRequestBuilder(deps.Picker)
	title := opts.Title
	if title == "" {
		title = opts.Proverb
	}

	if opts.Mode == ModeTemplate {
		req, err := builder.FromTemplate(screenplay, title, opts.Description, opts.TemplateID, opts.Test)
		if err != nil {
			return nil, err
		}
		return deps.Videos.CreateVideoFromTemplate(ctx, req)
	}

	req, err := builder.Direct(screenplay, title, opts.Description, opts.Test)
	if err != nil {
		return nil, err
	}
	return deps.Videos.CreateVideo(ctx, req)
}
