package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"primini.ma/app/internal/shared/apperr"
)

// Client talks to the primini backend REST API. It is the only component
// allowed to issue requests against the backend; handlers and the console go
// through it. One instance is shared by all sessions, the bearer token is
// passed per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With(slog.String("component", "backend_client")),
	}
}

// BaseURL returns the configured backend origin, used to resolve relative
// media paths into displayable URLs.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one request against the API. path is relative to /api, query
// may be nil, body is JSON-encoded when non-nil, token is the dj-rest-auth
// key ("" for anonymous calls).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, token string) (*http.Response, error) {
	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.Wrap(fmt.Errorf("encode request body: %w", err))
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, apperr.Wrap(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend unreachable", slog.String("method", method), slog.String("path", path), slog.Any("err", err))
		return nil, apperr.NetworkErr(err)
	}
	return resp, nil
}

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.UpstreamErr("", fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// postJSON issues a POST, decoding the response into out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, body any, token string, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.UpstreamErr("", fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

// checkStatus maps a non-2xx response onto the error taxonomy: 401 means the
// token is missing or expired, 403 that it lacks the required rights,
// everything else is an upstream failure carrying the backend's detail text
// when it sent one.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := detailFromBody(raw)

	c.logger.Warn("backend error response",
		slog.String("url", resp.Request.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("detail", detail),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperr.UnauthorizedErr("Votre session a expiré. Veuillez vous reconnecter.")
	case http.StatusForbidden:
		return apperr.ForbiddenErr("Accès refusé. Reconnectez-vous avec un compte autorisé.")
	case http.StatusNotFound:
		return apperr.NotFoundErr("Ressource introuvable.")
	default:
		return apperr.UpstreamErr(detail, fmt.Errorf("backend returned %d: %s", resp.StatusCode, raw))
	}
}

// detailFromBody extracts DRF's "detail" field, or the first field error from
// a validation payload. Non-JSON bodies yield "".
func detailFromBody(raw []byte) string {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	if d, ok := m["detail"].(string); ok {
		return d
	}
	for _, v := range m {
		switch t := v.(type) {
		case string:
			return t
		case []any:
			if len(t) > 0 {
				if s, ok := t[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}
