package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"borica-qes/internal/domain/entity"
	"borica-qes/internal/poll"
	"borica-qes/internal/usecase"
)

type stubSignUsecase struct {
	submitErr error
	pollErr   error
	lastCred  entity.Credential
}

func (s *stubSignUsecase) Submit(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*entity.SignAcceptedResponse, error) {
	s.lastCred = cred
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &entity.SignAcceptedResponse{
		Data: entity.SignAcceptedData{CallbackID: "cb-1", Validity: "300"},
	}, nil
}

func (s *stubSignUsecase) SubmitViaQr(ctx context.Context, req *entity.QrRequest) (*entity.QrAcceptedResponse, error) {
	return &entity.QrAcceptedResponse{Data: entity.QrAcceptedData{CallbackID: "cb-qr-1"}}, nil
}

func (s *stubSignUsecase) PollUntilSigned(ctx context.Context, opts usecase.PollOptions) (*entity.SignResult, error) {
	if s.pollErr != nil {
		return nil, s.pollErr
	}
	return &entity.SignResult{CallbackID: opts.CallbackID, Signatures: []entity.SignatureItem{}}, nil
}

func (s *stubSignUsecase) GetStatus(ctx context.Context, callbackID string) (*entity.SignStatusResponse, error) {
	return &entity.SignStatusResponse{Code: entity.CodeCompleted}, nil
}

func (s *stubSignUsecase) DownloadContent(ctx context.Context, contentID string) ([]byte, error) {
	return []byte("%PDF-1.7 signed"), nil
}

func (s *stubSignUsecase) SignAndWait(ctx context.Context, req *entity.SignRequest, cred entity.Credential) (*usecase.SignAndWaitResult, error) {
	return &usecase.SignAndWaitResult{CallbackID: "cb-1"}, nil
}

func newSignApp(stub *stubSignUsecase) *fiber.App {
	h := NewSignHandler(stub, zap.NewNop())
	app := fiber.New()
	app.Post("/sign", h.Submit)
	app.Get("/sign/poll", h.Poll)
	app.Get("/sign/content/:contentId", h.DownloadContent)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSubmitHandler(t *testing.T) {
	stub := &stubSignUsecase{}
	app := newSignApp(stub)

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"data": "aGVsbG8=", "fileName": "doc.pdf"},
		},
		"client_token": "token-xyz",
	}

	resp := postJSON(t, app, "/sign", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	value, err := stub.lastCred.AuthorizationValue()
	require.NoError(t, err)
	assert.Equal(t, "clientToken:token-xyz", value)
}

func TestSubmitHandlerAmbiguousCredential(t *testing.T) {
	app := newSignApp(&stubSignUsecase{})

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"data": "aGVsbG8=", "fileName": "doc.pdf"},
		},
		"client_token": "token-xyz",
		"personal_id":  "8001010000",
	}

	resp := postJSON(t, app, "/sign", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitHandlerNoCredential(t *testing.T) {
	app := newSignApp(&stubSignUsecase{})

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"data": "aGVsbG8=", "fileName": "doc.pdf"},
		},
	}

	resp := postJSON(t, app, "/sign", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPollHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		pollErr    error
		wantStatus int
	}{
		{"no identifier", "", nil, fiber.StatusBadRequest},
		{"both identifiers", "?callback_id=a&rp_callback_id=b", nil, fiber.StatusBadRequest},
		{"timeout", "?callback_id=cb-1", fmt.Errorf("no terminal result: %w", poll.ErrTimeout), fiber.StatusGatewayTimeout},
		{"success", "?callback_id=cb-1", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSignUsecase{pollErr: tt.pollErr}
			if tt.pollErr == nil && tt.query == "" {
				stub.pollErr = usecase.ErrNoPollIdentifier
			}
			if tt.pollErr == nil && tt.query == "?callback_id=a&rp_callback_id=b" {
				stub.pollErr = usecase.ErrBothPollIdentifiers
			}
			app := newSignApp(stub)

			req := httptest.NewRequest(http.MethodGet, "/sign/poll"+tt.query, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestDownloadContentHandler(t *testing.T) {
	app := newSignApp(&stubSignUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/sign/content/content-1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, fiber.MIMEOctetStream, resp.Header.Get(fiber.HeaderContentType))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 signed"), data)
}
