package action

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadDocument_Success(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"id":"doc-up"}`
		},
	}
	a := &UploadDocument{}

	req, err := a.ParseRequest(map[string]any{"file_name": "notes.txt"})
	require.NoError(t, err)

	exec := newExec(upstream)
	exec.File = strings.NewReader("file contents")

	env := a.Execute(context.Background(), req, testAuth(), exec)

	assert.True(t, env.ResponseData.Success)
	assert.Equal(t, "doc-up", env.ResponseData.DocumentID)

	calls := upstream.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/v1/documents:upload", calls[0].URL.Path)
	assert.Equal(t, "file contents", calls[0].Body["content"])
	assert.Equal(t, "notes.txt", calls[0].Body["fileName"])
}

func TestUploadDocument_FileNameIsOptional(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusOK, `{"id":"doc-up"}`
		},
	}
	a := &UploadDocument{}

	req, err := a.ParseRequest(map[string]any{})
	require.NoError(t, err)

	exec := newExec(upstream)
	exec.File = strings.NewReader("x")

	env := a.Execute(context.Background(), req, testAuth(), exec)
	assert.True(t, env.ResponseData.Success)
}

func TestUploadDocument_MissingFile(t *testing.T) {
	upstream := &fakeUpstream{}
	a := &UploadDocument{}

	req, err := a.ParseRequest(map[string]any{})
	require.NoError(t, err)

	env := a.Execute(context.Background(), req, testAuth(), newExec(upstream))

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindValidation, env.ResponseData.ErrorKind)
	assert.Empty(t, upstream.recorded(), "missing content must fail before any request")
}

func TestUploadDocument_InvalidUTF8(t *testing.T) {
	upstream := &fakeUpstream{}
	a := &UploadDocument{}

	req, err := a.ParseRequest(map[string]any{"file_name": "blob.bin"})
	require.NoError(t, err)

	exec := newExec(upstream)
	exec.File = bytes.NewReader([]byte{0xff, 0xfe, 0x00, 0x80})

	env := a.Execute(context.Background(), req, testAuth(), exec)

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindEncoding, env.ResponseData.ErrorKind)
	assert.Empty(t, upstream.recorded(), "binary content must be rejected before any request")
}

func TestUploadDocument_UpstreamFailure(t *testing.T) {
	upstream := &fakeUpstream{
		respond: func(call fakeCall) (int, string) {
			return http.StatusRequestEntityTooLarge, `{"error":{"message":"too large"}}`
		},
	}
	a := &UploadDocument{}

	req, err := a.ParseRequest(map[string]any{})
	require.NoError(t, err)

	exec := newExec(upstream)
	exec.File = strings.NewReader("content")

	env := a.Execute(context.Background(), req, testAuth(), exec)

	assert.False(t, env.ResponseData.Success)
	assert.Equal(t, KindUpstream4xx, env.ResponseData.ErrorKind)
}
