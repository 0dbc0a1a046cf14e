package action

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/teemow/docsbridge/internal/docs"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{400, KindUpstream4xx},
		{404, KindUpstream4xx},
		{499, KindUpstream4xx},
		{500, KindUpstream5xx},
		{503, KindUpstream5xx},
		{200, KindInternal},
	}

	for _, tt := range tests {
		if got := KindForStatus(tt.status); got != tt.want {
			t.Errorf("KindForStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestSucceeded(t *testing.T) {
	env := Succeeded("doc-1", json.RawMessage(`{"documentId":"doc-1"}`))

	if !env.ExecutionDetails.Executed {
		t.Error("expected executed to be true")
	}
	if !env.ResponseData.Success {
		t.Error("expected success to be true")
	}
	if env.ResponseData.DocumentID != "doc-1" {
		t.Errorf("unexpected document id: %s", env.ResponseData.DocumentID)
	}
	if env.ResponseData.ErrorKind != "" {
		t.Errorf("success envelope must not carry an error kind, got %s", env.ResponseData.ErrorKind)
	}
}

func TestFailed(t *testing.T) {
	env := Failed(KindValidation, errors.New("document_id is required"))

	if env.ExecutionDetails.Executed {
		t.Error("expected executed to be false")
	}
	if env.ResponseData.Success {
		t.Error("expected success to be false")
	}
	if env.ResponseData.ErrorKind != KindValidation {
		t.Errorf("unexpected kind: %s", env.ResponseData.ErrorKind)
	}
	if env.ResponseData.Error != "document_id is required" {
		t.Errorf("unexpected error message: %s", env.ResponseData.Error)
	}
}

func TestUpstreamFailed_AttachesRawBody(t *testing.T) {
	resp := &docs.Response{
		StatusCode: http.StatusForbidden,
		Body:       json.RawMessage(`{"error":{"message":"denied"}}`),
	}
	env := UpstreamFailed(resp)

	if env.ResponseData.Success {
		t.Error("expected failure envelope")
	}
	if env.ResponseData.ErrorKind != KindUpstream4xx {
		t.Errorf("unexpected kind: %s", env.ResponseData.ErrorKind)
	}
	if string(env.ResponseData.Raw) != `{"error":{"message":"denied"}}` {
		t.Errorf("expected raw failure body to be preserved, got %s", env.ResponseData.Raw)
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	env := guard(func() Envelope {
		panic("boom")
	})

	if env.ResponseData.Success {
		t.Error("expected failure envelope")
	}
	if env.ResponseData.ErrorKind != KindInternal {
		t.Errorf("unexpected kind: %s", env.ResponseData.ErrorKind)
	}
}

func TestEnvelope_WireShape(t *testing.T) {
	payload, err := json.Marshal(Succeeded("doc-1", nil))
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	details, ok := decoded["execution_details"].(map[string]any)
	if !ok {
		t.Fatal("missing execution_details")
	}
	if details["executed"] != true {
		t.Error("expected execution_details.executed to be true")
	}
	data, ok := decoded["response_data"].(map[string]any)
	if !ok {
		t.Fatal("missing response_data")
	}
	if data["success"] != true {
		t.Error("expected response_data.success to be true")
	}
}
