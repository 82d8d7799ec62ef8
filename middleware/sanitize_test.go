package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTags(t *testing.T) {
	assert.Equal(t, "John Doe", stripTags("John Doe"))
	assert.Equal(t, "John Doe", stripTags("<b>John</b> Doe"))
	assert.Equal(t, "alert(1)", stripTags("<script>alert(1)</script>"))
	assert.Equal(t, "", stripTags("<img src=x>"))
}

func TestSanitizeBody_StripsStringFields(t *testing.T) {
	var seen map[string]interface{}
	handler := SanitizeBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
	}))

	body := `{"username": "  <b>John Doe</b> ", "password": "root", "zipCode": 75000}`
	req := httptest.NewRequest("POST", "/api/v1/user", strings.NewReader(body))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "John Doe", seen["username"])
	assert.Equal(t, "root", seen["password"])
	assert.Equal(t, float64(75000), seen["zipCode"])
}

func TestSanitizeBody_NonJSONPassesThrough(t *testing.T) {
	var seen []byte
	handler := SanitizeBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		seen = buf.Bytes()
	}))

	req := httptest.NewRequest("POST", "/api/v1/user", strings.NewReader("plain text"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "plain text", string(seen))
}

func TestSanitizeBody_EmptyBody(t *testing.T) {
	called := false
	handler := SanitizeBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/v1/user", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}
