package oauth1

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// BaseString builds the signature base string for a request:
//
//	METHOD&enc(baseURL)&enc(sorted enc(k)=enc(v) pairs joined by "&")
//
// Every value of a multi-valued key contributes its own pair. The result does
// not depend on the order params were added in.
func BaseString(method, baseURL string, params url.Values) string {
	pairs := make([]string, 0, len(params))
	for k, vs := range params {
		ek := Encode(k)
		for _, v := range vs {
			pairs = append(pairs, ek+"="+Encode(v))
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i] < pairs[j] })

	return strings.ToUpper(method) + "&" + Encode(baseURL) + "&" + Encode(strings.Join(pairs, "&"))
}

// Sign returns the base64 HMAC-SHA1 of baseString keyed by
// enc(consumerSecret)&enc(tokenSecret). tokenSecret is empty while no token exists yet.
func Sign(baseString, consumerSecret, tokenSecret string) string {
	key := Encode(consumerSecret) + "&" + Encode(tokenSecret)
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(baseString))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignParams returns a copy of params with oauth_signature set for a request
// to baseURL. params itself is not modified.
func SignParams(method, baseURL string, params url.Values, consumerSecret, tokenSecret string) url.Values {
	signed := make(url.Values, len(params)+1)
	for k, vs := range params {
		if k == ParamSignature {
			continue
		}
		signed[k] = append([]string(nil), vs...)
	}
	sig := Sign(BaseString(method, baseURL, signed), consumerSecret, tokenSecret)
	signed.Set(ParamSignature, sig)
	return signed
}
