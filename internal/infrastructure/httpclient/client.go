package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"borica-qes/internal/config"
	"borica-qes/internal/domain/entity"
)

const (
	maxBodyLogLength = 500 // Maximum characters to log for body
)

// HTTPClient is the transport to the BORICA CQES API. All methods attach the
// default headers (accept, Accept-language, relyingPartyID) and decode JSON
// responses into result. Extra per-request headers carry the identity
// assertion on signing submissions. Safe for concurrent use.
type HTTPClient interface {
	Get(ctx context.Context, path string, result interface{}) error
	Post(ctx context.Context, path string, body interface{}, result interface{}) error
	// PostWithHeaders is Post with additional request headers.
	PostWithHeaders(ctx context.Context, path string, headers map[string]string, body interface{}, result interface{}) error
	// Download performs a streaming GET and returns the raw response bytes.
	Download(ctx context.Context, path string) ([]byte, error)
}

// APILogSaver persists call logs produced by the client.
type APILogSaver interface {
	Save(ctx context.Context, log *entity.APILog) error
}

// StatusError is a non-2xx response whose body is not a structured BORICA
// error envelope.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// APIError is a non-2xx response carrying BORICA's {code, message} envelope.
// Distinct from StatusError so callers can branch on business failures
// versus connectivity failures.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Message, e.StatusCode)
}

type httpClient struct {
	client      *http.Client
	config      *config.Config
	baseURL     string
	apiLogSaver APILogSaver
	logger      *zap.Logger
}

func NewHTTPClient(cfg *config.Config, apiLogSaver APILogSaver, logger *zap.Logger) (HTTPClient, error) {
	tlsConfig, err := buildTLSConfig(&cfg.Borica)
	if err != nil {
		return nil, err
	}

	c := &httpClient{
		client: &http.Client{
			Timeout: cfg.Borica.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
		},
		config:      cfg,
		baseURL:     strings.TrimRight(cfg.Borica.BaseURL, "/"),
		apiLogSaver: apiLogSaver,
		logger:      logger,
	}

	logger.Info("HTTP Client initialized",
		zap.String("base_url", c.baseURL),
		zap.String("relying_party_id", cfg.Borica.RelyingPartyID),
		zap.Bool("mutual_tls", cfg.Borica.IsMutualTLS()),
		zap.String("verify", cfg.Borica.Verify),
	)

	return c, nil
}

// buildTLSConfig assembles the client certificate and server trust settings
// for the mutual-TLS connection.
func buildTLSConfig(cfg *config.BoricaConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	switch cfg.Verify {
	case config.VerifySystem, "":
		// system trust store
	case config.VerifyInsecure:
		tlsConfig.InsecureSkipVerify = true
	default:
		// Any other value is a path to a custom CA bundle
		pem, err := os.ReadFile(cfg.Verify)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle %s: %w", cfg.Verify, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA bundle %s", cfg.Verify)
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.IsMutualTLS() {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// truncateString truncates a string if it exceeds maxLength
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength] + fmt.Sprintf("... [truncated, total %d chars]", len(s))
}

// truncateBase64InJSON truncates base64-like values in JSON string
func truncateBase64InJSON(jsonStr string, maxLength int) string {
	// Pattern to match base64-like content (long strings of alphanumeric + /+=)
	base64Pattern := regexp.MustCompile(`"([A-Za-z0-9+/=]{100,})"`)

	return base64Pattern.ReplaceAllStringFunc(jsonStr, func(match string) string {
		// Remove quotes for processing
		content := match[1 : len(match)-1]
		if len(content) > maxLength {
			return fmt.Sprintf(`"%s... [base64 truncated, total %d chars]"`, content[:maxLength], len(content))
		}
		return match
	})
}

// logRequest logs the outbound request details
func (c *httpClient) logRequest(method, url string, body []byte) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("url", url),
	}
	if len(body) > 0 {
		bodyStr := truncateBase64InJSON(string(body), 100)
		fields = append(fields, zap.String("body", truncateString(bodyStr, maxBodyLogLength)))
	}
	c.logger.Info("BORICA request", fields...)
}

// logResponse logs the response details
func (c *httpClient) logResponse(statusCode int, duration time.Duration, body []byte) {
	bodyStr := truncateBase64InJSON(string(body), 100)
	c.logger.Info("BORICA response",
		zap.Int("status", statusCode),
		zap.Duration("duration", duration),
		zap.String("body", truncateString(bodyStr, maxBodyLogLength)),
	)
}

// saveAPILog saves the call log asynchronously to not block the request
func (c *httpClient) saveAPILog(method, endpoint string, requestBody []byte, responseBody []byte, statusCode int, duration time.Duration) {
	if c.apiLogSaver == nil {
		return
	}

	reqBodyStr := ""
	if len(requestBody) > 0 {
		reqBodyStr = truncateBase64InJSON(string(requestBody), 100)
		if len(reqBodyStr) > 10000 {
			reqBodyStr = reqBodyStr[:10000] + "... [truncated]"
		}
	}

	respBodyStr := truncateBase64InJSON(string(responseBody), 100)
	if len(respBodyStr) > 10000 {
		respBodyStr = respBodyStr[:10000] + "... [truncated]"
	}

	apiLog := &entity.APILog{
		Endpoint:     endpoint,
		Method:       method,
		RequestBody:  reqBodyStr,
		ResponseBody: respBodyStr,
		StatusCode:   statusCode,
		Duration:     duration.Milliseconds(),
		CreatedAt:    time.Now(),
	}

	go func() {
		if err := c.apiLogSaver.Save(context.Background(), apiLog); err != nil {
			c.logger.Warn("Failed to save API log to database",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
		}
	}()
}

// setDefaultHeaders applies the headers every BORICA request carries.
func (c *httpClient) setDefaultHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json")
	req.Header.Set("Accept-language", c.config.Borica.Language)
	req.Header.Set("relyingPartyID", c.config.Borica.RelyingPartyID)
}

// statusToError maps a non-2xx response to an APIError when the body parses
// as BORICA's error envelope, else to a StatusError with the raw body.
func statusToError(statusCode int, body []byte) error {
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		return &APIError{StatusCode: statusCode, Code: envelope.Code, Message: envelope.Message}
	}
	return &StatusError{StatusCode: statusCode, Body: string(body)}
}

func (c *httpClient) doRequest(ctx context.Context, method, path string, headers map[string]string, body interface{}, result interface{}) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.setDefaultHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	c.logRequest(method, fullURL, jsonBody)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logResponse(resp.StatusCode, duration, respBody)
	c.saveAPILog(method, fullURL, jsonBody, respBody, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusToError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (c *httpClient) Get(ctx context.Context, path string, result interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, nil, result)
}

func (c *httpClient) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, result)
}

func (c *httpClient) PostWithHeaders(ctx context.Context, path string, headers map[string]string, body interface{}, result interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, headers, body, result)
}

// Download streams the response body instead of decoding it as JSON. Used
// for signed content retrieval, which may be large.
func (c *httpClient) Download(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setDefaultHeaders(req)

	c.logRequest(http.MethodGet, fullURL, nil)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	duration := time.Since(startTime)
	c.logger.Info("BORICA download",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.Int("size", buf.Len()),
	)
	c.saveAPILog(http.MethodGet, fullURL, nil, []byte(fmt.Sprintf("[%d bytes]", buf.Len())), resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusToError(resp.StatusCode, buf.Bytes())
	}

	return buf.Bytes(), nil
}
