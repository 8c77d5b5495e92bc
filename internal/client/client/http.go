package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/common"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient is the Client implementation for the CMS REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, hc *http.Client, log logging.Logger) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		log:     log.With("module", "cms"),
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) AssetURL(assetID string) string {
	return c.baseURL + "/assets/" + assetID
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/auth/login", bytes.NewReader(body), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	var out models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) FetchCollection(ctx context.Context, collection string, headers map[string]string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(collection), nil, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	var out models.CollectionResponse[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	if out.Data == nil {
		return json.RawMessage("[]"), nil
	}
	return json.Marshal(out.Data)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}

	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "cms request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "cms request", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
	return resp, nil
}

// errorMessage extracts errors[0].message from a CMS error body, falling back
// to the status text.
func errorMessage(resp *http.Response) string {
	var e models.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&e); err == nil {
		if msg := e.FirstMessage(); msg != "" {
			return msg
		}
	}
	return statusText(resp)
}

// statusText is the reason phrase of resp, e.g. "Unauthorized".
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

var _ Client = (*HTTPClient)(nil)
