package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"borica-qes/internal/config"
	"borica-qes/internal/domain/entity"
	"borica-qes/internal/infrastructure/httpclient"
)

func newSignRepo(t *testing.T, baseURL string) *signRepository {
	t.Helper()

	cfg := &config.Config{
		Borica: config.BoricaConfig{
			BaseURL:        baseURL,
			RelyingPartyID: "rp-test",
			Language:       "en",
			Verify:         config.VerifySystem,
			Timeout:        5 * time.Second,
		},
	}
	client, err := httpclient.NewHTTPClient(cfg, nil, zap.NewNop())
	require.NoError(t, err)

	return NewSignRepository(client, zap.NewNop()).(*signRepository)
}

func signServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sign", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(entity.AuthorizationHeader) == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"code":"UNAUTHORIZED","message":"missing identity"}`))
			return
		}
		json.NewEncoder(w).Encode(entity.SignAcceptedResponse{
			Data: entity.SignAcceptedData{CallbackID: "cb-1", Validity: "2026-08-29T12:00:00Z"},
			Code: "ACCEPTED",
		})
	})
	mux.HandleFunc("GET /sign/cb-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.SignStatusResponse{
			Code: entity.CodeCompleted,
			Data: &entity.SignStatusData{
				Cert: "MIIB...",
				Signatures: []entity.SignatureItem{
					{Status: entity.SignatureStatusSigned, Signature: "content-1"},
				},
			},
		})
	})
	mux.HandleFunc("GET /sign/rpcallbackid/rp-cb-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.SignStatusResponse{Code: "IN_PROGRESS"})
	})
	mux.HandleFunc("GET /sign/content/content-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 signed"))
	})
	mux.HandleFunc("POST /signviaqr", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(entity.QrAcceptedResponse{
			Data: entity.QrAcceptedData{CallbackID: "cb-qr-1", QrImage: "aW1n", QrPlain: "qr-payload"},
		})
	})

	return httptest.NewServer(mux)
}

func TestSubmitSendsAuthorizationHeader(t *testing.T) {
	srv := signServer(t)
	defer srv.Close()

	repo := newSignRepo(t, srv.URL)

	req := &entity.SignRequest{
		Contents: []entity.SignContent{{Data: "aGVsbG8=", FileName: "doc.pdf"}},
	}
	require.NoError(t, req.Validate())

	accepted, err := repo.Submit(context.Background(), req, entity.ClientTokenCredential("token-xyz"))
	require.NoError(t, err)

	assert.Equal(t, "cb-1", accepted.Data.CallbackID)
	assert.NotEmpty(t, accepted.Data.Validity)
}

func TestSubmitZeroCredentialFailsBeforeNetwork(t *testing.T) {
	// An unreachable base URL proves no request is attempted.
	repo := newSignRepo(t, "http://127.0.0.1:1")

	req := &entity.SignRequest{
		Contents: []entity.SignContent{{Data: "aGVsbG8=", FileName: "doc.pdf"}},
	}

	_, err := repo.Submit(context.Background(), req, entity.Credential{})
	assert.ErrorIs(t, err, entity.ErrNoCredential)
}

func TestGetStatus(t *testing.T) {
	srv := signServer(t)
	defer srv.Close()

	repo := newSignRepo(t, srv.URL)

	status, err := repo.GetStatus(context.Background(), "cb-1")
	require.NoError(t, err)

	assert.True(t, status.Completed())
	require.NotNil(t, status.Data)
	require.Len(t, status.Data.Signatures, 1)
	assert.Equal(t, "content-1", status.Data.Signatures[0].Signature)
}

func TestGetStatusByRPCallbackID(t *testing.T) {
	srv := signServer(t)
	defer srv.Close()

	repo := newSignRepo(t, srv.URL)

	status, err := repo.GetStatusByRPCallbackID(context.Background(), "rp-cb-1")
	require.NoError(t, err)

	assert.False(t, status.Completed())
}

func TestDownloadContent(t *testing.T) {
	srv := signServer(t)
	defer srv.Close()

	repo := newSignRepo(t, srv.URL)

	data, err := repo.DownloadContent(context.Background(), "content-1")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.7 signed"), data)
}

func TestSubmitViaQr(t *testing.T) {
	srv := signServer(t)
	defer srv.Close()

	repo := newSignRepo(t, srv.URL)

	req := &entity.QrRequest{
		Request: entity.QrInnerRequest{
			Content: entity.SignContent{Data: "aGVsbG8=", FileName: "doc.pdf"},
		},
	}
	require.NoError(t, req.Validate())

	accepted, err := repo.SubmitViaQr(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "cb-qr-1", accepted.Data.CallbackID)
	assert.Equal(t, "qr-payload", accepted.Data.QrPlain)
}
