package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketplace-console/internal/domain"
	"marketplace-console/internal/platform/requestid"
	"marketplace-console/internal/ports"
)

type Client struct {
	session    *domain.Session
	httpClient *http.Client
	logger     ports.Logger
}

func NewClient(session *domain.Session, httpClient *http.Client, logger ports.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{session: session, httpClient: httpClient, logger: logger}
}

// Do sends req to the backend configured on the session and decodes the JSON body into out.
// A non-2xx status or an envelope with success=false yields *domain.RequestError.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) error {
	snap := c.session.Snapshot()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := snap.BaseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if snap.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+snap.Token)
	}
	if id := requestid.FromContext(ctx); id != "" && httpReq.Header.Get(requestid.Header) == "" {
		httpReq.Header.Set(requestid.Header, id)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn(ctx, "backend request failed", "method", method, "path", req.Path, "error", err)
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug(ctx, "backend request",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration", time.Since(started).String(),
	)

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &domain.DecodeError{Status: resp.StatusCode, Err: err}
	}
	if failed, message := envelopeFailure(parsed); failed || resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn(ctx, "backend rejected request",
			"method", method,
			"path", req.Path,
			"status", resp.StatusCode,
			"message", message,
		)
		return domain.NewRequestError(resp.StatusCode, message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.DecodeError{Status: resp.StatusCode, Err: err}
	}
	return nil
}

// envelopeFailure reports whether the body carries success=false, and its message if any.
func envelopeFailure(parsed any) (bool, string) {
	obj, ok := parsed.(map[string]any)
	if !ok {
		return false, ""
	}
	message, _ := obj["message"].(string)
	success, ok := obj["success"].(bool)
	return ok && !success, message
}
