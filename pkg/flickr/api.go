package flickr

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/dixieflatline76/wallflower/pkg/oauth1"
)

// AuthenticatedClient signs API calls with the application credentials and
// a user's access token. It is read-only after construction and safe for
// concurrent use.
type AuthenticatedClient struct {
	client *Client
	token  AccessToken
}

// NewAuthenticatedClient pairs c with an existing access token.
func NewAuthenticatedClient(c *Client, token AccessToken) *AuthenticatedClient {
	return &AuthenticatedClient{client: c, token: token}
}

// AccessToken returns the token the client signs with.
func (a *AuthenticatedClient) AccessToken() AccessToken {
	return a.token
}

// PhotoSize returns the size suffix photo listings are normalized with.
func (a *AuthenticatedClient) PhotoSize() string {
	return a.client.photoSize
}

// envelope is the part of every REST response that reports success.
type envelope struct {
	Stat    string `json:"stat"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Call invokes an API method and decodes the JSON body into out. extra is
// merged over the standard parameter set and the signature covers the union.
// A "stat":"fail" body is returned as a protocol error wrapping *APIError.
func (a *AuthenticatedClient) Call(ctx context.Context, method string, extra url.Values, out any) error {
	params := a.client.protocolParams()
	params.Set("api_key", string(a.client.key))
	params.Set(oauth1.ParamToken, a.token.Token)
	params.Set("format", "json")
	params.Set("nojsoncallback", "1")
	params.Set("method", method)
	for k, vs := range extra {
		params[k] = append([]string(nil), vs...)
	}

	body, err := a.client.get(ctx, method, a.client.endpoints.REST, params, a.token.Secret)
	if err != nil {
		return err
	}
	return decodeResponse(method, body, out)
}

func decodeResponse(op string, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return NewError(KindDecode, op, err)
	}
	if !strings.EqualFold(env.Stat, "ok") {
		return NewError(KindProtocol, op, &APIError{Code: env.Code, Message: env.Message})
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return NewError(KindDecode, op, err)
	}
	return nil
}

type content struct {
	Content string `json:"_content"`
}

type checkTokenResponse struct {
	OAuth struct {
		Token content `json:"token"`
		Perms content `json:"perms"`
		User  User    `json:"user"`
	} `json:"oauth"`
}

// CheckToken verifies the access token and reports who it belongs to.
func (a *AuthenticatedClient) CheckToken(ctx context.Context) (*OauthToken, error) {
	var resp checkTokenResponse
	if err := a.Call(ctx, MethodCheckToken, nil, &resp); err != nil {
		return nil, err
	}
	return &OauthToken{
		Token: resp.OAuth.Token.Content,
		Perms: resp.OAuth.Perms.Content,
		User:  resp.OAuth.User,
	}, nil
}
