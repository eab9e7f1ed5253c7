package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource yields the current bearer token, or "" when no session exists.
type TokenSource func() string

// RequestError is the normalized failure for any non-2xx gateway response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// GatewayClient wraps all outbound calls to the API gateway.
type GatewayClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
}

func NewGatewayClient(baseURL string, timeout time.Duration, tokens TokenSource) *GatewayClient {
	return &GatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Do issues a single request. A non-nil body is sent as JSON. On 2xx the
// response is decoded into out when the gateway declares a JSON content type;
// when out is a *string the raw body text is assigned instead. On any other
// status it returns a *RequestError. Fire-once: no retries.
func (g *GatewayClient) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := g.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Message: extractMessage(resp.StatusCode, data)}
	}

	if out == nil {
		return nil
	}
	if text, ok := out.(*string); ok && !isJSON(resp.Header.Get("Content-Type")) {
		*text = string(data)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

// extractMessage pulls the most readable error message out of a failed
// response: JSON "message" field, then JSON "error" field, then the raw body,
// then a generic status line.
func extractMessage(status int, body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed: %d", status)
}
