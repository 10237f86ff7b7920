package gauth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	defaultTimeout = 15 * time.Second
)

// Client exchanges signed assertions for access tokens. It never caches a
// token, every AccessToken call signs and exchanges a new assertion.
type Client struct {
	cred     Credential
	http     *http.Client
	tokenURL string
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for the exchange request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTokenURL overrides the endpoint the assertion is posted to. The
// assertion audience stays TokenURL.
func WithTokenURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.tokenURL = u
		}
	}
}

// WithClock replaces time.Now for assertion timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient returns a Client for cred that posts to TokenURL unless an
// Option says otherwise.
func NewClient(cred Credential, opts ...Option) *Client {
	c := &Client{
		cred:     cred,
		http:     &http.Client{Timeout: defaultTimeout},
		tokenURL: TokenURL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccessToken signs a fresh assertion for scope and exchanges it.
func (c *Client) AccessToken(ctx context.Context, scope string) (string, error) {
	assertion, err := BuildAssertion(c.cred, scope, TokenURL, c.now().UTC())
	if err != nil {
		return "", err
	}
	return c.Exchange(ctx, assertion)
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange posts the assertion with the JWT-bearer grant and returns the
// access token from the reply.
func (c *Client) Exchange(ctx context.Context, assertion string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", GrantTypeJWTBearer)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TokenExchangeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TokenExchangeError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Err: err}
	}
	raw := strings.TrimSpace(string(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: raw}
	}

	var payload tokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: raw, Err: err}
	}
	if payload.Error != "" {
		return "", &TokenExchangeError{StatusCode: resp.StatusCode, Body: raw}
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", &TokenExchangeError{
			StatusCode: resp.StatusCode,
			Body:       raw,
			Err:        errors.New("response missing access_token"),
		}
	}
	return payload.AccessToken, nil
}
