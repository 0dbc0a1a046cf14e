package action

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDocument_WithoutText(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"documentId":"doc-1","title":"Notes"}`
		},
	}
	a := &CreateDocument{}

	req, err := a.ParseRequest(map[string]any{"title": "Notes"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-1", env.ResponseData.DocumentID)

	calls := upstream.recorded()
	require.Len(t, calls, 1, "no initial text means no follow-up call")
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/v1/documents", calls[0].URL.Path)
	assert.Equal(t, "Notes", calls[0].Body["title"])
}

func TestCreateDocument_WithText(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if call.URL.Path == "/v1/documents" {
				return http.StatusOK, `{"documentId":"doc-1"}`
			}
			return http.StatusOK, `{"replies":[]}`
		},
	}
	a := &CreateDocument{}

	req, err := a.ParseRequest(map[string]any{"title": "Notes", "text": "hello"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-1", env.ResponseData.DocumentID)

	calls := upstream.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, "/v1/documents/doc-1:batchUpdate", calls[1].URL.Path)

	// The insert payload is a document body, not a requests list
	body, ok := calls[1].Body["body"].(map[string]any)
	require.True(t, ok, "second call must carry a document body")
	content := body["content"].([]any)
	require.Len(t, content, 1)
}

func TestCreateDocument_FirstCallFailureStopsSecond(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusForbidden, `{"error":{"message":"denied"}}`
		},
	}
	a := &CreateDocument{}

	req, err := a.ParseRequest(map[string]any{"title": "Notes", "text": "hello"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindUpstream4xx, env.ResponseData.ErrorKind)
	assert.JSONEq(t, `{"error":{"message":"denied"}}`, string(env.ResponseData.Raw))
	assert.Len(t, upstream.recorded(), 1, "failed create must not trigger the insert call")
}

func TestCreateDocument_SecondCallFailure(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if call.URL.Path == "/v1/documents" {
				return http.StatusOK, `{"documentId":"doc-1"}`
			}
			return http.StatusInternalServerError, `{"error":{"message":"backend"}}`
		},
	}
	a := &CreateDocument{}

	req, err := a.ParseRequest(map[string]any{"text": "hello"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindUpstream5xx, env.ResponseData.ErrorKind)
	assert.Len(t, upstream.recorded(), 2)
}

func TestCreateDocument_NetworkFailure(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("connection refused")}
	a := &CreateDocument{}

	req, err := a.ParseRequest(map[string]any{"title": "Notes"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindNetwork, env.ResponseData.ErrorKind)
}

func TestCreateDocument_NoIdempotency(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"documentId":"doc-1"}`
		},
	}
	a := &CreateDocument{}
	exec := newExec(upstream)

	for i := 0; i < 2; i++ {
		req, err := a.ParseRequest(map[string]any{"title": "Notes"})
		require.NoError(t, err)
		env := a.Execute(context.Background(), req, testAuth(), exec)
		assert.True(t, env.ResponseData.Success)
	}

	// Identical invocations each reach the service; nothing deduplicates
	assert.Len(t, upstream.recorded(), 2)
}
