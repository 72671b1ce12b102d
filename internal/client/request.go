package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sachcu/marketplace-client/internal/core/domain"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"
	mimeJSON            = "application/json"
)

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil and Raw is nil.
	Body any
	// Role picks the credential slot for the bearer header; RoleNone sends none.
	Role domain.Role
	// JSON attaches Content-Type: application/json.
	JSON bool
	// Raw is a pre-encoded body (multipart uploads) sent with RawContentType.
	Raw            io.Reader
	RawContentType string
	// Lenient accepts non-JSON success bodies as {"success": true}.
	Lenient bool
}

// BuildHeaders returns the headers for a request: a JSON content type when
// contentTypeJSON is set, and a bearer token when role has a stored
// credential. A missing credential is not an error; the request goes out
// unauthenticated and the server decides.
func (c *Client) BuildHeaders(ctx context.Context, contentTypeJSON bool, role domain.Role) (http.Header, error) {
	h := make(http.Header)
	if contentTypeJSON {
		h.Set(headerContentType, mimeJSON)
	}
	if role == domain.RoleNone {
		return h, nil
	}

	token, ok, err := c.session.Token(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("build headers: %w", err)
	}
	if ok {
		h.Set(headerAuthorization, "Bearer "+token)
	}
	return h, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request, requestID string) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	switch {
	case req.Raw != nil:
		body = req.Raw
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.endpoint(req.Path, req.Query), body)
	if err != nil {
		return nil, fmt.Errorf("new request %s %s: %w", method, req.Path, err)
	}

	headers, err := c.BuildHeaders(ctx, req.JSON, req.Role)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		httpReq.Header[k] = v
	}
	if req.RawContentType != "" {
		httpReq.Header.Set(headerContentType, req.RawContentType)
	}
	httpReq.Header.Set(headerAccept, mimeJSON)
	httpReq.Header.Set(headerRequestID, requestID)
	return httpReq, nil
}
