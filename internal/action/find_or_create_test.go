package action

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreate_RequiresTitle(t *testing.T) {
	a := &FindOrCreateDocument{}
	_, err := a.ParseRequest(map[string]any{})
	assert.Error(t, err)
}

func TestFindOrCreate_FindHit(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"documents":[{"documentId":"doc-1"},{"documentId":"doc-2"}]}`
		},
	}
	a := &FindOrCreateDocument{}

	req, err := a.ParseRequest(map[string]any{"document_title": "Meeting Notes"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-1", env.ResponseData.DocumentID, "first match wins")

	calls := upstream.recorded()
	require.Len(t, calls, 1, "a hit must not trigger a create")
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "title=Meeting+Notes", calls[0].URL.RawQuery)
}

func TestFindOrCreate_FindMissCreates(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if call.Method == http.MethodGet {
				return http.StatusOK, `{"documents":[]}`
			}
			return http.StatusOK, `{"documentId":"doc-new"}`
		},
	}
	a := &FindOrCreateDocument{}

	req, err := a.ParseRequest(map[string]any{"document_title": "Fresh Doc"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-new", env.ResponseData.DocumentID)

	calls := upstream.recorded()
	require.Len(t, calls, 2, "exactly one create after the miss")
	assert.Equal(t, http.MethodPost, calls[1].Method)
	assert.Equal(t, "Fresh Doc", calls[1].Body["title"])
}

func TestFindOrCreate_LookupFailureFallsThroughToCreate(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if call.Method == http.MethodGet {
				return http.StatusInternalServerError, `{"error":{"message":"backend"}}`
			}
			return http.StatusOK, `{"documentId":"doc-new"}`
		},
	}
	a := &FindOrCreateDocument{}

	req, err := a.ParseRequest(map[string]any{"document_title": "Fresh Doc"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	// A failed lookup reads as "not found"; the create proceeds
	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-new", env.ResponseData.DocumentID)
	assert.Len(t, upstream.recorded(), 2)
}

func TestFindOrCreate_BothFail(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusInternalServerError, `{"error":{"message":"backend"}}`
		},
	}
	a := &FindOrCreateDocument{}

	req, err := a.ParseRequest(map[string]any{"document_title": "Doomed"})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindInternal, env.ResponseData.ErrorKind)
	assert.Contains(t, env.ResponseData.Error, "could not be found or created")
}
