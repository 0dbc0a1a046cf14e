package action

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/teemow/docsbridge/internal/docs"
)

// fakeUpstream is a RoundTripper that records every call and answers from a
// programmable responder, so tests can assert exactly which requests an
// action issued and against which host.
type fakeUpstream struct {
	mu      sync.Mutex
	calls   []fakeCall
	respond func(call fakeCall) (int, string)
	err     error // when set, every call fails at the transport level
}

type fakeCall struct {
	Method string
	URL    *url.URL
	Body   map[string]any
	Raw    []byte
}

func (f *fakeUpstream) RoundTrip(req *http.Request) (*http.Response, error) {
	var raw []byte
	if req.Body != nil {
		raw, _ = io.ReadAll(req.Body)
	}
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	call := fakeCall{Method: req.Method, URL: req.URL, Body: body, Raw: raw}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	status, respBody := http.StatusOK, "{}"
	if f.respond != nil {
		status, respBody = f.respond(call)
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(respBody)),
		Header:     make(http.Header),
	}, nil
}

func (f *fakeUpstream) recorded() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func newExec(f *fakeUpstream) ExecContext {
	return ExecContext{
		Client: docs.NewClient(docs.WithHTTPClient(&http.Client{Transport: f})),
	}
}

func testAuth() docs.AuthContext {
	return docs.AuthContext{
		Headers: map[string]string{"Authorization": "Bearer test-token"},
		BaseURL: "https://staging.example.com",
	}
}
