package synopsis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/booklog-plus/internal/llm"
)

type stubClient struct {
	response string
	err      error
	calls    int
	requests []llm.Request
}

func (s *stubClient) Generate(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
	s.calls++
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }
func (s *stubClient) Close() error                  { return nil }

func TestSynopsis_HappyPath(t *testing.T) {
	stub := &stubClient{response: "A sweeping desert epic about ecology and empire."}
	gen := NewGenerator(stub)

	got := gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceHistory)
	assert.Equal(t, "A sweeping desert epic about ecology and empire.", got)
	assert.Equal(t, 1, stub.calls)
}

func TestSynopsis_StripsSurroundingQuotes(t *testing.T) {
	stub := &stubClient{response: `"A sweeping desert epic."`}
	gen := NewGenerator(stub)

	got := gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceHistory)
	assert.Equal(t, "A sweeping desert epic.", got)
}

func TestSynopsis_FallbackOnError(t *testing.T) {
	stub := &stubClient{err: errors.New("network unreachable")}
	gen := NewGenerator(stub)

	got := gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceFuture)
	assert.Equal(t, Fallback("Frank Herbert"), got)
	assert.Contains(t, got, "Frank Herbert")
	assert.Equal(t, 1, stub.calls, "no retry on failure")
}

func TestSynopsis_FallbackOnEmptyResponse(t *testing.T) {
	stub := &stubClient{response: "   "}
	gen := NewGenerator(stub)

	got := gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceHistory)
	assert.Equal(t, Fallback("Frank Herbert"), got)
}

func TestSynopsis_SourceSelectsPrompt(t *testing.T) {
	stub := &stubClient{response: "ok"}
	gen := NewGenerator(stub)

	gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceHistory)
	gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceFuture)

	require.Len(t, stub.requests, 2)
	assert.Contains(t, stub.requests[0].User, "already finished")
	assert.Contains(t, stub.requests[1].User, "pick up next")
	assert.NotEqual(t, stub.requests[0].User, stub.requests[1].User)
}

func TestSynopsis_RequestShape(t *testing.T) {
	stub := &stubClient{response: "ok"}
	gen := NewGenerator(stub)

	gen.Synopsis(context.Background(), "Dune", "Frank Herbert", SourceHistory)

	req := stub.requests[0]
	assert.InDelta(t, 0.7, req.Temperature, 0.0001)
	assert.Equal(t, int32(100), req.MaxTokens)
	assert.False(t, req.JSONOutput)
	assert.Contains(t, req.User, "Dune")
	assert.Contains(t, req.User, "Frank Herbert")
}

func TestFallback_Deterministic(t *testing.T) {
	assert.Equal(t, Fallback("Frank Herbert"), Fallback("Frank Herbert"))
}
