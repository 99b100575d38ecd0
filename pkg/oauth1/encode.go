// Package oauth1 implements the request-signing half of OAuth 1.0a (RFC 5849):
// percent-encoding, signature base strings and HMAC-SHA1 signatures.
package oauth1

import (
	"net/url"
	"sort"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// Encode percent-encodes s using the RFC 3986 unreserved set.
// Only ASCII letters, digits and "-._~" pass through; every other byte,
// including each byte of a multi-byte UTF-8 sequence, becomes %XX.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	b := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b = append(b, c)
			continue
		}
		b = append(b, '%', upperhex[c>>4], upperhex[c&15])
	}
	return string(b)
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// EncodeQuery is url.Values.Encode with Encode applied to keys and values,
// so the query on the wire matches what was signed.
func EncodeQuery(v url.Values) string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		ek := Encode(k)
		for _, val := range v[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(ek)
			b.WriteByte('=')
			b.WriteString(Encode(val))
		}
	}
	return b.String()
}
