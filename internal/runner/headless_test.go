// internal/runner/headless_test.go
package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codexplain/internal/tutorial"
)

type fakeBackend struct {
	generateCalls []tutorial.GenerationRequest
	fetchCalls    []string
	id            string
	generateErr   error
	fetchErr      error
}

func (f *fakeBackend) GenerateTutorial(_ context.Context, req tutorial.GenerationRequest) (string, error) {
	f.generateCalls = append(f.generateCalls, req)
	return f.id, f.generateErr
}

func (f *fakeBackend) GetTutorial(_ context.Context, id string) (*tutorial.Tutorial, error) {
	f.fetchCalls = append(f.fetchCalls, id)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &tutorial.Tutorial{ID: id, Title: "T"}, nil
}

type fakeRecorder struct {
	ids []string
	err error
}

func (f *fakeRecorder) RecordGeneration(id string, _ tutorial.GenerationRequest) error {
	f.ids = append(f.ids, id)
	return f.err
}

func validRequest() tutorial.GenerationRequest {
	req := tutorial.NewGenerationRequest()
	req.RepoURL = " https://github.com/pallets/flask "
	return req
}

func TestGenerateRecordsAndReturnsID(t *testing.T) {
	backend := &fakeBackend{id: "abc123"}
	rec := &fakeRecorder{}
	r := NewHeadlessRunner(backend, rec)

	result, err := r.Generate(context.Background(), validRequest(), false)
	require.NoError(t, err)
	assert.Equal(t, "abc123", result.TutorialID)
	assert.Nil(t, result.Tutorial)
	assert.Empty(t, result.Error)
	require.Len(t, backend.generateCalls, 1)
	assert.Equal(t, "https://github.com/pallets/flask", backend.generateCalls[0].RepoURL)
	assert.Empty(t, backend.fetchCalls)
	assert.Equal(t, []string{"abc123"}, rec.ids)
	assert.Equal(t, 0, ExitCode(result))
}

func TestGenerateWithShowFetches(t *testing.T) {
	backend := &fakeBackend{id: "abc123"}
	result, err := NewHeadlessRunner(backend, nil).Generate(context.Background(), validRequest(), true)
	require.NoError(t, err)
	require.NotNil(t, result.Tutorial)
	assert.Equal(t, []string{"abc123"}, backend.fetchCalls)
}

func TestGenerateBlankURLMakesNoRequest(t *testing.T) {
	backend := &fakeBackend{id: "abc123"}
	_, err := NewHeadlessRunner(backend, nil).Generate(context.Background(), tutorial.NewGenerationRequest(), false)
	assert.ErrorIs(t, err, tutorial.ErrEmptyRepoURL)
	assert.Empty(t, backend.generateCalls)
}

func TestGenerateBackendFailure(t *testing.T) {
	backend := &fakeBackend{generateErr: errors.New("HTTP 500: boom")}
	rec := &fakeRecorder{}
	result, err := NewHeadlessRunner(backend, rec).Generate(context.Background(), validRequest(), true)
	require.NoError(t, err)
	assert.Equal(t, "HTTP 500: boom", result.Error)
	assert.Empty(t, rec.ids)
	assert.Empty(t, backend.fetchCalls)
	assert.Equal(t, 1, ExitCode(result))
}

func TestGenerateRecorderFailureIsNotFatal(t *testing.T) {
	backend := &fakeBackend{id: "abc123"}
	rec := &fakeRecorder{err: errors.New("disk full")}
	result, err := NewHeadlessRunner(backend, rec).Generate(context.Background(), validRequest(), false)
	require.NoError(t, err)
	assert.Empty(t, result.Error)
}

func TestShow(t *testing.T) {
	backend := &fakeBackend{}
	result, err := NewHeadlessRunner(backend, nil).Show(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, "show", result.Command)
	assert.Equal(t, "xyz", result.Tutorial.ID)

	backend.fetchErr = errors.New("HTTP 404: Tutorial not found")
	result, err = NewHeadlessRunner(backend, nil).Show(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, result.Tutorial)
	assert.Contains(t, result.Error, "not found")
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 1}
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "exit code 1", err.Error())
	assert.Equal(t, 1, ExitCode(nil))
}
