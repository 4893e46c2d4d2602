// internal/device/client.go
package device

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Credentials is the HTTP Basic pair read once at startup. Read-only
// for the process lifetime.
type Credentials struct {
	Username string
	Password string
}

// Page is one completed exchange with a channel's web UI.
type Page struct {
	StatusCode int
	Body       string
}

// PageFetcher is the read side of the client, split out so the
// readiness checker can be tested against a fake.
type PageFetcher interface {
	Fetch(ctx context.Context, channel string) (Page, error)
}

// Client talks to the instrument's per-channel web UIs.
// The instrument is a physical device that can hang mid-request, so
// every call carries the configured finite timeout.
type Client struct {
	ip    string
	http  *http.Client
	creds *Credentials

	endpoint func(ip, channel string) (string, error) // test seam
}

var _ PageFetcher = (*Client)(nil)

const defaultTimeout = 30 * time.Second

// NewClient builds a client for the device at ip. creds may be nil for
// firmware that does not authenticate.
func NewClient(ip string, timeout time.Duration, creds *Credentials) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		ip:       ip,
		http:     &http.Client{Timeout: timeout},
		creds:    creds,
		endpoint: EndpointURL,
	}
}

// Fetch GETs the channel's form page.
func (c *Client) Fetch(ctx context.Context, channel string) (Page, error) {
	endpoint, err := c.endpoint(c.ip, channel)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, errors.Wrap(err, "device: create request")
	}

	return c.do(req)
}

// Submit POSTs a measurement form to the channel.
func (c *Client) Submit(ctx context.Context, channel string, form url.Values) (Page, error) {
	endpoint, err := c.endpoint(c.ip, channel)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Page{}, errors.Wrap(err, "device: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (Page, error) {
	if c.creds != nil {
		req.SetBasicAuth(c.creds.Username, c.creds.Password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, errors.Wrapf(err, "device: %s %s", req.Method, req.URL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, errors.Wrapf(err, "device: read response from %s", req.URL)
	}

	return Page{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
