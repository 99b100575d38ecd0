// Command signature prints the OAuth 1.0a base string and HMAC-SHA1
// signature for a request, to compare against what the provider expects.
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dixieflatline76/wallflower/pkg/oauth1"
	"github.com/dixieflatline76/wallflower/util/log"
	flag "github.com/spf13/pflag"
)

var (
	method         = flag.StringP("method", "X", "GET", "HTTP method")
	baseURL        = flag.StringP("url", "u", "", "request URL without query")
	params         = flag.StringArrayP("param", "p", nil, "request parameter as key=value, may be repeated")
	consumerSecret = flag.String("consumer-secret", os.Getenv("FLICKR_API_SECRET"), "consumer secret")
	tokenSecret    = flag.String("token-secret", "", "token secret, empty before a token exists")
)

func main() {
	flag.Parse()
	if *baseURL == "" {
		log.Fatal("--url is required")
	}

	values, err := parseParams(*params)
	if err != nil {
		log.Fatal(err)
	}

	base := oauth1.BaseString(*method, *baseURL, values)
	fmt.Printf("base string:\n%s\n\n", base)
	fmt.Printf("signature:\n%s\n", oauth1.Sign(base, *consumerSecret, *tokenSecret))
}

// parseParams turns key=value pairs into values. A key may repeat.
func parseParams(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --param %q, want key=value", pair)
		}
		values.Add(k, v)
	}
	values.Del(oauth1.ParamSignature)
	return values, nil
}
