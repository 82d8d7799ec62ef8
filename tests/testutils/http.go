package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type TestServer struct {
	*httptest.Server
	t *testing.T
}

func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	server := httptest.NewServer(handler)
	return &TestServer{
		Server: server,
		t:      t,
	}
}

func (ts *TestServer) GET(path string) *http.Response {
	resp, err := http.Get(ts.URL + path)
	require.NoError(ts.t, err)
	return resp
}

func (ts *TestServer) POST(path string, body interface{}) *http.Response {
	return ts.do("POST", path, body, "")
}

// PUT sends the body with the oauth_token header set when token is
// non-empty.
func (ts *TestServer) PUT(path string, body interface{}, token string) *http.Response {
	return ts.do("PUT", path, body, token)
}

func (ts *TestServer) DELETE(path string, token string) *http.Response {
	return ts.do("DELETE", path, nil, token)
}

func (ts *TestServer) do(method, path string, body interface{}, token string) *http.Response {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(ts.t, err)
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, bodyReader)
	require.NoError(ts.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("oauth_token", token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(ts.t, err)
	return resp
}

// Envelope mirrors the response wrapper with the data left raw so each
// test can decode it into the type it expects.
type Envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// DecodeEnvelope asserts the HTTP status and returns the parsed envelope.
func DecodeEnvelope(t *testing.T, resp *http.Response, expectedStatus int) Envelope {
	require.Equal(t, expectedStatus, resp.StatusCode)

	defer resp.Body.Close()
	var env Envelope
	err := json.NewDecoder(resp.Body).Decode(&env)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, env.Code)
	return env
}
