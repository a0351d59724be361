// Package api is the typed HTTP client for the SweetDive backend REST API.
//
// Every call attaches the session token from the request context as a
// token-authorization header. Non-2xx responses are mapped onto the domain
// error taxonomy; a 401 surfaces as domain.EUNAUTHORIZED and is handled
// centrally by the handler layer, which clears the session and redirects
// to the login screen. There are no retries: each call is independent and
// at-most-once from the client's perspective.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Meerdlawar/SweetDive/internal/auth"
	"github.com/Meerdlawar/SweetDive/internal/domain"
	"github.com/Meerdlawar/SweetDive/internal/metrics"
)

// Client talks to the SweetDive backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a backend client. The timeout is the per-request budget; a
// request also ends early when its context is cancelled (e.g. the browser
// went away), so an abandoned page view never updates anything.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do performs one request against the backend and decodes a 2xx JSON body
// into out (when out is non-nil). path must start with "/".
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.doRaw(ctx, op, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.Wrap(err, domain.EINTERNAL, op, "Unexpected response from the server.")
	}
	return nil
}

// doRaw performs one request and returns the raw 2xx body.
func (c *Client) doRaw(ctx context.Context, op, method, path string, query url.Values, body interface{}) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to encode request.")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to build request.")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.GetToken(ctx); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	group := pathGroup(path)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(group, method, "error").Inc()
		if errors.Is(err, context.Canceled) {
			return nil, domain.Wrap(err, domain.EUNAVAILABLE, op, "Request cancelled.")
		}
		c.logger.Warn("backend unreachable", "op", op, "method", method, "path", path, "error", err)
		return nil, domain.Unavailable(err, op)
	}
	defer resp.Body.Close()

	metrics.APIRequestDuration.WithLabelValues(group, method).Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(group, method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to read response.")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, c.statusError(op, resp.StatusCode, raw)
}

// backendError is the error body shape the backend uses. Auth endpoints send
// {success, message, errors}; DRF viewsets send {detail} or a bare field map.
type backendError struct {
	Message string                     `json:"message"`
	Detail  string                     `json:"detail"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// statusError maps a non-2xx response onto the domain error taxonomy.
func (c *Client) statusError(op string, status int, raw []byte) error {
	var payload backendError
	_ = json.Unmarshal(raw, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Detail
	}

	switch {
	case status == http.StatusUnauthorized:
		if message == "" {
			message = "Authentication required."
		}
		return domain.Unauthorized(op, message)

	case status == http.StatusForbidden:
		if message == "" {
			message = "You don't have permission to do that."
		}
		return domain.Errorf(domain.EFORBIDDEN, op, "%s", message)

	case status == http.StatusNotFound:
		if message == "" {
			message = "The requested resource was not found."
		}
		return domain.NotFound(op, message)

	case status == http.StatusConflict:
		if message == "" {
			message = "The request conflicts with the current state."
		}
		return domain.Errorf(domain.ECONFLICT, op, "%s", message)

	case status >= 400 && status < 500:
		ve := domain.NewValidationError(op, message)
		if ve.Message == "" {
			ve.Message = "Please check your input and try again."
		}
		for field, v := range payload.Errors {
			ve.Fields[field] = firstErrorString(v)
		}
		// DRF sometimes omits the wrapper and sends the field map directly.
		if len(ve.Fields) == 0 && payload.Message == "" && payload.Detail == "" {
			var bare map[string]json.RawMessage
			if err := json.Unmarshal(raw, &bare); err == nil {
				for field, v := range bare {
					ve.Fields[field] = firstErrorString(v)
				}
			}
		}
		return ve

	default:
		c.logger.Error("backend error", "op", op, "status", status, "body", truncateForLog(raw))
		return domain.Internal(fmt.Errorf("backend returned %d", status), op, "The server reported an error. Please try again.")
	}
}

// firstErrorString extracts a display string from a DRF error value, which
// may be a list of strings or a single string.
func firstErrorString(raw json.RawMessage) string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// pathGroup returns the first path segment for metric labels
// ("/orders/3/products/" -> "orders"), keeping cardinality bounded.
func pathGroup(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func truncateForLog(raw []byte) string {
	const max = 512
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
