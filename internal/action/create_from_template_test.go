package action

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFromTemplate_ParseRequest(t *testing.T) {
	a := &CreateDocumentFromTemplate{}

	t.Run("title defaults when absent", func(t *testing.T) {
		req, err := a.ParseRequest(map[string]any{
			"template_document_id": "tpl-1",
			"replacements":         map[string]any{},
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplateTitle, req.(*CreateFromTemplateRequest).NewDocumentTitle)
	})

	t.Run("explicit empty title is kept", func(t *testing.T) {
		req, err := a.ParseRequest(map[string]any{
			"template_document_id": "tpl-1",
			"replacements":         map[string]any{},
			"new_document_title":   "",
		})
		require.NoError(t, err)
		assert.Equal(t, "", req.(*CreateFromTemplateRequest).NewDocumentTitle)
	})

	t.Run("template id is required", func(t *testing.T) {
		_, err := a.ParseRequest(map[string]any{"replacements": map[string]any{}})
		assert.Error(t, err)
	})

	t.Run("replacements must be present", func(t *testing.T) {
		_, err := a.ParseRequest(map[string]any{"template_document_id": "tpl-1"})
		assert.Error(t, err)
	})
}

func TestCreateFromTemplate_CopyAndReplace(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if strings.HasSuffix(call.URL.Path, ":copy") {
				return http.StatusOK, `{"id":"copy-1","title":"Q3 Report"}`
			}
			return http.StatusOK, `{"replies":[]}`
		},
	}
	a := &CreateDocumentFromTemplate{}

	req, err := a.ParseRequest(map[string]any{
		"template_document_id": "tpl-1",
		"new_document_title":   "Q3 Report",
		"replacements": map[string]any{
			"{{quarter}}": "Q3",
			"{{author}}":  "Ada",
		},
	})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "copy-1", env.ResponseData.DocumentID)
	assert.JSONEq(t, `{"id":"copy-1","title":"Q3 Report"}`, string(env.ResponseData.NewDocument))

	calls := upstream.recorded()
	require.Len(t, calls, 2)

	assert.Equal(t, "/v1/documents/tpl-1:copy", calls[0].URL.Path)
	assert.Equal(t, "staging.example.com", calls[0].URL.Host)
	assert.Equal(t, "Q3 Report", calls[0].Body["title"])

	// The replacement call always targets the production host, regardless of
	// the base URL used for the copy
	assert.Equal(t, "/v1/documents/copy-1:batchUpdate", calls[1].URL.Path)
	assert.Equal(t, "docs.googleapis.com", calls[1].URL.Host)

	requests := calls[1].Body["requests"].([]any)
	require.Len(t, requests, 2, "exactly one replaceAllText per placeholder")

	// Keys are applied in sorted order
	first := requests[0].(map[string]any)["replaceAllText"].(map[string]any)
	firstMatch := first["containsText"].(map[string]any)
	assert.Equal(t, "{{author}}", firstMatch["text"])
	assert.Equal(t, true, firstMatch["matchCase"])
	assert.Equal(t, "Ada", first["replaceText"])

	second := requests[1].(map[string]any)["replaceAllText"].(map[string]any)
	assert.Equal(t, "{{quarter}}", second["containsText"].(map[string]any)["text"])
}

func TestCreateFromTemplate_CopyFailureStopsReplacement(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusNotFound, `{"error":{"message":"no such template"}}`
		},
	}
	a := &CreateDocumentFromTemplate{}

	req, err := a.ParseRequest(map[string]any{
		"template_document_id": "missing",
		"replacements":         map[string]any{"{{x}}": "y"},
	})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindUpstream4xx, env.ResponseData.ErrorKind)
	assert.Len(t, upstream.recorded(), 1, "failed copy must not trigger replacements")
}

func TestCreateFromTemplate_CopyWithoutID(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"title":"copied but no id"}`
		},
	}
	a := &CreateDocumentFromTemplate{}

	req, err := a.ParseRequest(map[string]any{
		"template_document_id": "tpl-1",
		"replacements":         map[string]any{"{{x}}": "y"},
	})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindEncoding, env.ResponseData.ErrorKind)
	assert.NotEmpty(t, env.ResponseData.NewDocument, "copy body travels with the failure for diagnosis")
	assert.Len(t, upstream.recorded(), 1)
}

func TestCreateFromTemplate_ReplacementFailureCarriesCopy(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			if strings.HasSuffix(call.URL.Path, ":copy") {
				return http.StatusOK, `{"id":"copy-1"}`
			}
			return http.StatusInternalServerError, `{"error":{"message":"backend"}}`
		},
	}
	a := &CreateDocumentFromTemplate{}

	req, err := a.ParseRequest(map[string]any{
		"template_document_id": "tpl-1",
		"replacements":         map[string]any{"{{x}}": "y"},
	})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindUpstream5xx, env.ResponseData.ErrorKind)
	assert.JSONEq(t, `{"id":"copy-1"}`, string(env.ResponseData.NewDocument),
		"the copy happened; its identity must not be lost with the failure")
}
