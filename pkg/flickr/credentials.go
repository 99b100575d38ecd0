package flickr

import (
	"encoding/json"
	"fmt"
)

// ConsumerKey identifies the application to Flickr.
type ConsumerKey string

// ConsumerSecret is the application's signing secret. It is never persisted.
type ConsumerSecret string

// TokenSecret is the secret half of a token. The zero value is used to sign
// the request-token call, before any token exists.
type TokenSecret string

// RequestToken is the short-lived token that carries the user through
// authorization. It is never persisted.
type RequestToken struct {
	Token  string
	Secret TokenSecret
}

// AccessToken authorizes API calls on behalf of one user. It is the only
// credential written to disk.
type AccessToken struct {
	Token  string      `json:"token"`
	Secret TokenSecret `json:"secret"`
}

// User is the identity Flickr reports for a token.
type User struct {
	NSID     string `json:"nsid"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// OauthToken is the flattened result of flickr.auth.oauth.checkToken.
type OauthToken struct {
	Token string
	Perms string
	User  User
}

// EncodeAccessToken serializes t as indented JSON.
func EncodeAccessToken(t AccessToken) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// DecodeAccessToken parses a blob written by EncodeAccessToken.
func DecodeAccessToken(blob []byte) (AccessToken, error) {
	var t AccessToken
	if err := json.Unmarshal(blob, &t); err != nil {
		return AccessToken{}, &Error{Kind: KindDecode, Op: "decode access token", Err: err}
	}
	if t.Token == "" {
		return AccessToken{}, &Error{Kind: KindDecode, Op: "decode access token", Err: fmt.Errorf("token is empty")}
	}
	return t, nil
}
