package flickr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dixieflatline76/wallflower/pkg/oauth1"
	"github.com/dixieflatline76/wallflower/util/log"
)

// Client holds the application credentials. It can run the authorization
// flow but cannot call the API on a user's behalf; see AuthenticatedClient.
type Client struct {
	key        ConsumerKey
	secret     ConsumerSecret
	endpoints  Endpoints
	httpClient *http.Client
	now        oauth1.Clock
	nonce      oauth1.NonceFunc
	perms      string
	photoSize  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoints overrides the provider URLs.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithClock overrides the timestamp source.
func WithClock(now oauth1.Clock) Option {
	return func(c *Client) { c.now = now }
}

// WithNonce overrides the nonce source.
func WithNonce(nonce oauth1.NonceFunc) Option {
	return func(c *Client) { c.nonce = nonce }
}

// WithPerms sets the permission scope requested during authorization.
func WithPerms(perms string) Option {
	return func(c *Client) { c.perms = perms }
}

// WithPhotoSize sets the size suffix whose url/height/width fields are read
// from photo listings.
func WithPhotoSize(size string) Option {
	return func(c *Client) { c.photoSize = size }
}

// NewClient creates a Client for the given application credentials.
func NewClient(key ConsumerKey, secret ConsumerSecret, opts ...Option) *Client {
	c := &Client{
		key:        key,
		secret:     secret,
		endpoints:  DefaultEndpoints(),
		httpClient: http.DefaultClient,
		now:        time.Now,
		nonce:      oauth1.NewNonce,
		perms:      PermsRead,
		photoSize:  DefaultPhotoSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PhotoSize returns the configured size suffix.
func (c *Client) PhotoSize() string {
	return c.photoSize
}

// protocolParams returns the oauth_* parameters every signed call carries.
func (c *Client) protocolParams() url.Values {
	return oauth1.Protocol(string(c.key), c.now, c.nonce)
}

// get signs params for endpoint with the consumer secret and tokenSecret,
// issues the GET and returns the body.
func (c *Client) get(ctx context.Context, op, endpoint string, params url.Values, tokenSecret TokenSecret) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, NewError(KindTransport, op, fmt.Errorf("invalid endpoint %q: %w", endpoint, err))
	}
	base := *u
	base.RawQuery = ""
	base.Fragment = ""

	signed := oauth1.SignParams(http.MethodGet, base.String(), params, string(c.secret), string(tokenSecret))
	base.RawQuery = oauth1.EncodeQuery(signed)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, NewError(KindTransport, op, err)
	}

	log.Debugf("flickr: %s GET %s", op, u.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewError(KindTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewError(KindTransport, op, &StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(KindTransport, op, err)
	}
	return body, nil
}

// parseForm decodes an application/x-www-form-urlencoded token response.
func parseForm(op string, body []byte) (url.Values, error) {
	form, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, NewError(KindDecode, op, err)
	}
	return form, nil
}

// tokenFromForm extracts oauth_token and oauth_token_secret.
func tokenFromForm(op string, form url.Values) (string, TokenSecret, error) {
	token := form.Get(oauth1.ParamToken)
	if token == "" {
		return "", "", NewError(KindProtocol, op, fmt.Errorf("%w: response has no %s", ErrAuthentication, oauth1.ParamToken))
	}
	secret, ok := form[oauth1.ParamTokenSecret]
	if !ok || len(secret) == 0 {
		return "", "", NewError(KindProtocol, op, fmt.Errorf("%w: response has no %s", ErrAuthentication, oauth1.ParamTokenSecret))
	}
	return token, TokenSecret(secret[0]), nil
}
