// internal/runner/headless.go
package runner

import (
	"context"
	"time"

	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/output"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// Backend is the part of the api client the runner needs.
type Backend interface {
	GenerateTutorial(ctx context.Context, req tutorial.GenerationRequest) (string, error)
	GetTutorial(ctx context.Context, id string) (*tutorial.Tutorial, error)
}

// Recorder persists generated tutorial ids. The history store satisfies it.
type Recorder interface {
	RecordGeneration(id string, req tutorial.GenerationRequest) error
}

// HeadlessRunner executes one generate or show command and collects the result.
type HeadlessRunner struct {
	backend  Backend
	recorder Recorder
}

// NewHeadlessRunner creates a HeadlessRunner. recorder may be nil.
func NewHeadlessRunner(backend Backend, recorder Recorder) *HeadlessRunner {
	return &HeadlessRunner{backend: backend, recorder: recorder}
}

// Generate submits req and, when show is set, fetches the resulting
// tutorial. Backend failures are reported in RunResult.Error; only a request
// that fails validation returns an error.
func (r *HeadlessRunner) Generate(ctx context.Context, req tutorial.GenerationRequest, show bool) (*output.RunResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req = req.Normalized()
	start := time.Now()
	result := &output.RunResult{Command: "generate", Request: &req}

	id, err := r.backend.GenerateTutorial(ctx, req)
	if err != nil {
		result.Error = err.Error()
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}
	result.TutorialID = id
	logger.Info(ctx, "tutorial generated", "id", id, "repo", req.RepoURL)

	if r.recorder != nil {
		if err := r.recorder.RecordGeneration(id, req); err != nil {
			logger.Warn(ctx, "recording history failed", "id", id, "error", err)
		}
	}

	if show {
		t, err := r.backend.GetTutorial(ctx, id)
		if err != nil {
			result.Error = err.Error()
		}
		result.Tutorial = t
	}
	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}

// Show fetches the tutorial with the given id.
func (r *HeadlessRunner) Show(ctx context.Context, id string) (*output.RunResult, error) {
	start := time.Now()
	result := &output.RunResult{Command: "show", TutorialID: id}

	t, err := r.backend.GetTutorial(ctx, id)
	if err != nil {
		result.Error = err.Error()
	}
	result.Tutorial = t
	result.DurationMs = time.Since(start).Milliseconds()
	return result, nil
}
