// Package gemini calls the Gemini generateContent endpoint with a JSON
// response schema and decodes the structured reply.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
)

var (
	ErrMissingAPIKey     = errors.New("gemini: api key is required")
	ErrMalformedResponse = errors.New("gemini: malformed response")
)

// APIError is a non-success reply from the endpoint.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini API error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini API error: %s (code: %d, status: %s)", e.Message, e.Code, e.Status)
}

type ClientOptions struct {
	// https://generativelanguage.googleapis.com/v1beta
	BaseURL string
	APIKey  string
	Model   string
	Headers map[string]string

	HTTPClient *http.Client
	// Paces outbound calls when set. Shared across clients made by WithAPIKey.
	Limiter *rate.Limiter
}

type Client struct {
	opts ClientOptions
}

func NewClient(opts ClientOptions) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Client{opts: opts}
}

// WithAPIKey returns a client identical to c but authenticating with key.
func (c *Client) WithAPIKey(key string) *Client {
	opts := c.opts
	opts.APIKey = key
	return &Client{opts: opts}
}

// generate sends prompt with schema and decodes the first candidate's text
// into out.
func (c *Client) generate(ctx context.Context, prompt string, schema *Schema, out any) error {
	if c.opts.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	in := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}
	payload, err := sonic.Marshal(in)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.opts.BaseURL, url.PathEscape(c.opts.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	q := req.URL.Query()
	q.Set("key", c.opts.APIKey)
	req.URL.RawQuery = q.Encode()
	for k, v := range c.opts.Headers {
		req.Header.Set(k, v)
	}

	res, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var gr generateResponse
	decodeErr := sonic.Unmarshal(body, &gr)
	if gr.Error != nil {
		gr.Error.StatusCode = res.StatusCode
		return gr.Error
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{StatusCode: res.StatusCode}
	}
	if decodeErr != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, decodeErr)
	}

	text, ok := gr.text()
	if !ok {
		return fmt.Errorf("%w: no candidate content", ErrMalformedResponse)
	}
	if err := sonic.UnmarshalString(text, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
