package oauth1

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Protocol parameter names.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamNonce           = "oauth_nonce"
	ParamTimestamp       = "oauth_timestamp"
	ParamSignatureMethod = "oauth_signature_method"
	ParamVersion         = "oauth_version"
	ParamSignature       = "oauth_signature"
	ParamCallback        = "oauth_callback"
	ParamToken           = "oauth_token"
	ParamTokenSecret     = "oauth_token_secret"
	ParamVerifier        = "oauth_verifier"
	ParamCallbackOK      = "oauth_callback_confirmed"
)

const (
	SignatureMethod = "HMAC-SHA1"
	Version         = "1.0"
	// CallbackOOB asks the provider to show the verifier to the user
	// instead of redirecting.
	CallbackOOB = "oob"
)

// NewNonce returns a random single-use value.
func NewNonce() string {
	return uuid.NewString()
}

// Timestamp formats t as seconds since the Unix epoch.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// Clock and NonceFunc are injected by clients so tests can fix their output.
type (
	Clock     func() time.Time
	NonceFunc func() string
)

// Protocol returns the parameters every signed request carries.
func Protocol(consumerKey string, now Clock, nonce NonceFunc) url.Values {
	if now == nil {
		now = time.Now
	}
	if nonce == nil {
		nonce = NewNonce
	}
	return url.Values{
		ParamNonce:           {nonce()},
		ParamTimestamp:       {Timestamp(now())},
		ParamConsumerKey:     {consumerKey},
		ParamSignatureMethod: {SignatureMethod},
		ParamVersion:         {Version},
	}
}
