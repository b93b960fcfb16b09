package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"borica-qes/internal/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Borica: config.BoricaConfig{
			BaseURL:        baseURL,
			RelyingPartyID: "rp-test",
			Language:       "en",
			Verify:         config.VerifySystem,
			Timeout:        5 * time.Second,
		},
	}
}

func newTestClient(t *testing.T, baseURL string) HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(testConfig(baseURL), nil, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	var result map[string]interface{}
	require.NoError(t, client.Get(context.Background(), "/sign/cb-1", &result))

	assert.Equal(t, "application/json", got.Get("accept"))
	assert.Equal(t, "en", got.Get("Accept-language"))
	assert.Equal(t, "rp-test", got.Get("relyingPartyID"))
}

func TestPostWithHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("rpToClientAuthorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"code":"ACCEPTED"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	headers := map[string]string{"rpToClientAuthorization": "clientToken:token-xyz"}
	var result struct {
		Code string `json:"code"`
	}
	err := client.PostWithHeaders(context.Background(), "/sign", headers, map[string]string{"k": "v"}, &result)
	require.NoError(t, err)

	assert.Equal(t, "clientToken:token-xyz", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ACCEPTED", result.Code)
}

func TestAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"INVALID_OTP","message":"The provided OTP is not valid"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	err := client.Get(context.Background(), "/sign/cb-1", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "INVALID_OTP", apiErr.Code)
	assert.Equal(t, "The provided OTP is not valid", apiErr.Message)
}

func TestStatusErrorUnstructuredBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream maintenance"))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	err := client.Get(context.Background(), "/sign/cb-1", nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream maintenance", statusErr.Body)
}

func TestDownload(t *testing.T) {
	payload := []byte("%PDF-1.7 signed content")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sign/content/content-1", r.URL.Path)
		w.Write(payload)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	data, err := client.Download(context.Background(), "/sign/content/content-1")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NOT_FOUND","message":"unknown content"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.Download(context.Background(), "/sign/content/missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestTruncateBase64InJSON(t *testing.T) {
	long := `{"data":"` + string(make64(300)) + `"}`
	out := truncateBase64InJSON(long, 100)
	assert.Contains(t, out, "base64 truncated, total 300 chars")

	short := `{"data":"aGVsbG8="}`
	assert.Equal(t, short, truncateBase64InJSON(short, 100))
}

func make64(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A'
	}
	return b
}
