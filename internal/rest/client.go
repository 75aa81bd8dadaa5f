package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jobmatch_errors "jobmatch-client/pkg/errors"
	"jobmatch-client/pkg/logger"
)

// error bodies are small; anything past this is noise
const maxErrorBody = 64 << 10

// TokenSource resolves the Authorization header for authenticated calls.
type TokenSource interface {
	AuthHeader() (string, bool)
}

// Client is the REST boundary to the platform backend. All endpoint
// methods live in sibling files grouped by resource.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

type requestOpts struct {
	query   url.Values
	headers http.Header
	auth    bool
}

// do runs one JSON round trip. When opts.auth is set and no Authorization
// header is resolvable it fails before touching the network, which callers
// treat the same as a failed call.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, opts requestOpts) error {
	endpoint := c.baseURL + path
	if len(opts.query) > 0 {
		endpoint += "?" + opts.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range opts.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if opts.auth {
		header, ok := c.tokens.AuthHeader()
		if !ok {
			return jobmatch_errors.ErrAuthRequired
		}
		req.Header.Set("Authorization", header)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError best-effort parses the body as {message: string}, falling
// back to the HTTP status text, and wraps everything in an APIError.
func (c *Client) decodeError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := http.StatusText(resp.StatusCode)
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			message = body.Message
		} else if body.Error != "" {
			message = body.Error
		}
	}

	c.log.Warnf("request failed: status=%d message=%s", resp.StatusCode, message)
	return &jobmatch_errors.APIError{
		Message: message,
		Status:  resp.StatusCode,
		Payload: payload,
	}
}
