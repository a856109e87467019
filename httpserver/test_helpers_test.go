package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchex/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

type apiResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Result  json.RawMessage   `json:"result"`
	Fields  map[string]string `json:"fields"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(t testing.TB) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  1,
		"username": "admin",
		"type":     "access",
		"exp":      time.Now().Add(1 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func newJSONRequest(t testing.TB, method, path string, body interface{}, token string) *http.Request {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "Failed to decode response: %s", rec.Body.String())
	return resp
}

// decodeResult unmarshals the result member of the envelope into out.
func decodeResult(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) apiResponse {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Result, out))
	return resp
}
