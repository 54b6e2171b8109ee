// Package backend is the HTTP client for the Wolfly REST API. The storefront
// never talks to a database; every read and every state transition goes
// through this client with the user's bearer token.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wolfly.in/app/internal/shared/apperr"
)

type Client struct {
	baseURL string
	hc      *http.Client
	log     *slog.Logger
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// newRequest builds an API request. token may be empty for public endpoints.
func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do runs the request and splits failures into the transport classes the rest
// of the app cares about: no response at all (network/timeout) versus a
// response with a non-2xx status (application error with a body message).
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, transportError(req, err)
	}
	return resp, nil
}

func transportError(req *http.Request, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.TimeoutErr("The request timed out. Please try again.", err)
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return apperr.TimeoutErr("The request timed out. Please try again.", err)
	}
	return apperr.NetworkErr("Could not reach the server. Please try again.", fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err))
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Detail  string `json:"detail"`
}

// apiError converts a non-2xx response into an AppError. The body's error
// message wins when present; otherwise a status-derived fallback is used.
func (c *Client) apiError(resp *http.Response) error {
	defer resp.Body.Close()

	msg := ""
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && len(raw) > 0 {
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			for _, s := range []string{eb.Error, eb.Message, eb.Msg, eb.Detail} {
				if s != "" {
					msg = s
					break
				}
			}
		}
	}

	if c.log != nil {
		c.log.Warn("backend error response",
			slog.String("path", resp.Request.URL.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("message", msg),
		)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperr.InvalidErr(orDefault(msg, "The request was rejected."), nil)
	case http.StatusUnauthorized:
		return apperr.UnauthorizedErr(orDefault(msg, "Please log in to continue."))
	case http.StatusForbidden:
		return apperr.ForbiddenErr(orDefault(msg, "You do not have access to this."))
	case http.StatusNotFound:
		return apperr.NotFoundErr(orDefault(msg, "Not found."))
	case http.StatusConflict:
		return apperr.ConflictErr(orDefault(msg, "Conflicting state."))
	default:
		return &apperr.AppError{
			Kind:      apperr.Internal,
			PublicMsg: orDefault(msg, "The server reported an error."),
			Err:       fmt.Errorf("backend status %d on %s", resp.StatusCode, resp.Request.URL.Path),
		}
	}
}

// getJSON issues a GET and decodes a 200 JSON body into out.
func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
