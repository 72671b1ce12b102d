package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sachcu/marketplace-client/internal/core/domain"
	"github.com/sachcu/marketplace-client/internal/metrics"
)

// Dispatch issues req and returns the decoded success body: a map, slice,
// string, number or bool, or nil for an empty body. Failures are
// *domain.APIError values; there are no retries.
func (c *Client) Dispatch(ctx context.Context, req Request) (any, error) {
	var out any
	err := c.exec(ctx, req, func(status int, body []byte) error {
		if len(body) == 0 {
			if req.Lenient {
				out = lenientSuccess()
			}
			return nil
		}
		if err := json.Unmarshal(body, &out); err != nil {
			if req.Lenient {
				out = lenientSuccess()
				return nil
			}
			return domain.NewParseError(status, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DispatchInto issues req and decodes the success body into out. An empty
// body leaves out untouched; a nil out only checks that the body is JSON.
func (c *Client) DispatchInto(ctx context.Context, req Request, out any) error {
	return c.exec(ctx, req, func(status int, body []byte) error {
		if len(body) == 0 {
			return nil
		}
		target := out
		if target == nil {
			var discard any
			target = &discard
		}
		if err := json.Unmarshal(body, target); err != nil {
			if req.Lenient {
				return nil
			}
			return domain.NewParseError(status, err)
		}
		return nil
	})
}

func lenientSuccess() map[string]any {
	return map[string]any{"success": true}
}

// exec runs the transport and normalization steps shared by Dispatch and
// DispatchInto, then records the outcome.
func (c *Client) exec(ctx context.Context, req Request, decode func(status int, body []byte) error) error {
	start := time.Now()
	requestID := uuid.NewString()

	status, body, err := c.send(ctx, req, requestID)
	if err == nil {
		err = decode(status, body)
	}

	c.observe(req, requestID, status, time.Since(start), err)
	return err
}

func (c *Client) send(ctx context.Context, req Request, requestID string) (int, []byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, req, requestID)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil, domain.NewUnauthorized()
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, domain.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil, requestFailed(resp.StatusCode, data)
	}
	return resp.StatusCode, data, nil
}

// requestFailed builds the error for a non-2xx, non-401 response. The message
// comes from the body's "message", then "error", then a generic fallback.
func requestFailed(status int, data []byte) *domain.APIError {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		payload = map[string]any{}
	}
	return domain.NewRequestFailed(status, errorMessage(payload), payload)
}

func errorMessage(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func (c *Client) observe(req Request, requestID string, status int, elapsed time.Duration, err error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	role := req.Role.String()

	outcome := "ok"
	if err != nil {
		outcome = domain.KindOf(err).String()
	}
	metrics.RequestsTotal.WithLabelValues(method, role, outcome).Inc()
	metrics.RequestDuration.WithLabelValues(method, role).Observe(elapsed.Seconds())

	var ev *zerolog.Event
	switch kind := domain.KindOf(err); {
	case err == nil:
		ev = c.log.Debug()
	case kind == domain.KindNetwork && errors.Is(err, context.Canceled):
		ev = c.log.Debug().Err(err)
	case kind == domain.KindNetwork, kind == domain.KindParse, kind == domain.KindUnknown:
		ev = c.log.Warn().Err(err)
	default:
		ev = c.log.Debug().Err(err)
	}
	ev.Str("method", method).
		Str("path", req.Path).
		Str("role", role).
		Int("status", status).
		Dur("duration", elapsed).
		Str("request_id", requestID).
		Str("outcome", outcome).
		Msg("api request")
}
