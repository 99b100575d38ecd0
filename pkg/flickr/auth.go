package flickr

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dixieflatline76/wallflower/pkg/oauth1"
	"github.com/dixieflatline76/wallflower/util/log"
)

// AuthState is a step of the three-legged authorization flow.
type AuthState int

const (
	Unauthenticated AuthState = iota
	RequestTokenObtained
	UserAuthorized
	AccessTokenObtained
)

func (s AuthState) String() string {
	switch s {
	case Unauthenticated:
		return "Unauthenticated"
	case RequestTokenObtained:
		return "RequestTokenObtained"
	case UserAuthorized:
		return "UserAuthorized"
	case AccessTokenObtained:
		return "AccessTokenObtained"
	default:
		return fmt.Sprintf("AuthState(%d)", int(s))
	}
}

// Verifier shows the authorization URL to the user and returns the
// verification code they were given after approving access. It blocks until
// the code is available.
type Verifier interface {
	Verify(ctx context.Context, authURL *url.URL) (string, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, authURL *url.URL) (string, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, authURL *url.URL) (string, error) {
	return f(ctx, authURL)
}

// Authorization walks one attempt through the flow. It is not safe for
// concurrent use.
type Authorization struct {
	client       *Client
	state        AuthState
	requestToken RequestToken
	verifier     string
	accessToken  AccessToken

	// User is the identity Flickr returned with the access token.
	User User
}

// NewAuthorization starts a new attempt in the Unauthenticated state.
func (c *Client) NewAuthorization() *Authorization {
	return &Authorization{client: c}
}

// State returns the current step.
func (a *Authorization) State() AuthState {
	return a.state
}

func (a *Authorization) expect(op string, s AuthState) error {
	if a.state != s {
		return fmt.Errorf("%s: authorization is %s, want %s", op, a.state, s)
	}
	return nil
}

// ObtainRequestToken performs the request-token call.
func (a *Authorization) ObtainRequestToken(ctx context.Context) (RequestToken, error) {
	const op = "request token"
	if err := a.expect(op, Unauthenticated); err != nil {
		return RequestToken{}, err
	}

	params := a.client.protocolParams()
	params.Set(oauth1.ParamCallback, oauth1.CallbackOOB)

	body, err := a.client.get(ctx, op, a.client.endpoints.RequestToken, params, "")
	if err != nil {
		return RequestToken{}, err
	}
	form, err := parseForm(op, body)
	if err != nil {
		return RequestToken{}, err
	}
	token, secret, err := tokenFromForm(op, form)
	if err != nil {
		return RequestToken{}, err
	}
	if form.Get(oauth1.ParamCallbackOK) != "true" {
		log.Debugf("flickr: request token without %s=true", oauth1.ParamCallbackOK)
	}

	a.requestToken = RequestToken{Token: token, Secret: secret}
	a.state = RequestTokenObtained
	return a.requestToken, nil
}

// AuthorizeURL is the page where the user approves access for the request
// token.
func (a *Authorization) AuthorizeURL() (*url.URL, error) {
	if a.state < RequestTokenObtained {
		return nil, fmt.Errorf("authorize url: authorization is %s, want %s", a.state, RequestTokenObtained)
	}
	u, err := url.Parse(a.client.endpoints.Authorize)
	if err != nil {
		return nil, fmt.Errorf("authorize url: %w", err)
	}
	q := u.Query()
	q.Set(oauth1.ParamToken, a.requestToken.Token)
	q.Set("perms", a.client.perms)
	u.RawQuery = q.Encode()
	return u, nil
}

// Authorize hands the authorization URL to v and waits for the
// verification code. It performs no network I/O itself.
func (a *Authorization) Authorize(ctx context.Context, v Verifier) error {
	const op = "authorize"
	if err := a.expect(op, RequestTokenObtained); err != nil {
		return err
	}
	u, err := a.AuthorizeURL()
	if err != nil {
		return err
	}

	code, err := v.Verify(ctx, u)
	if err != nil {
		return NewError(KindProtocol, op, fmt.Errorf("%w: no verification code: %v", ErrAuthentication, err))
	}
	if code == "" {
		return NewError(KindProtocol, op, fmt.Errorf("%w: empty verification code", ErrAuthentication))
	}

	a.verifier = code
	a.state = UserAuthorized
	return nil
}

// ObtainAccessToken exchanges the authorized request token for an access
// token, signing with the request token's secret.
func (a *Authorization) ObtainAccessToken(ctx context.Context) (AccessToken, error) {
	const op = "access token"
	if err := a.expect(op, UserAuthorized); err != nil {
		return AccessToken{}, err
	}

	params := a.client.protocolParams()
	params.Set(oauth1.ParamToken, a.requestToken.Token)
	params.Set(oauth1.ParamVerifier, a.verifier)

	body, err := a.client.get(ctx, op, a.client.endpoints.AccessToken, params, a.requestToken.Secret)
	if err != nil {
		return AccessToken{}, err
	}
	form, err := parseForm(op, body)
	if err != nil {
		return AccessToken{}, err
	}
	token, secret, err := tokenFromForm(op, form)
	if err != nil {
		return AccessToken{}, err
	}

	a.User = User{
		NSID:     form.Get("user_nsid"),
		Username: form.Get("username"),
		Fullname: form.Get("fullname"),
	}
	a.accessToken = AccessToken{Token: token, Secret: secret}
	a.state = AccessTokenObtained
	return a.accessToken, nil
}

// Authenticate runs the whole flow and returns a client for the new token.
func (c *Client) Authenticate(ctx context.Context, v Verifier) (*AuthenticatedClient, error) {
	a := c.NewAuthorization()
	if _, err := a.ObtainRequestToken(ctx); err != nil {
		return nil, err
	}
	if err := a.Authorize(ctx, v); err != nil {
		return nil, err
	}
	token, err := a.ObtainAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if a.User.Username != "" {
		log.Printf("Authorized as %s (%s)", a.User.Username, a.User.NSID)
	}
	return NewAuthenticatedClient(c, token), nil
}
