package flickr

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dixieflatline76/wallflower/pkg/oauth1"
)

const (
	testConsumerKey    = "653e7a6ecc1d528c516cc8f92cf98611"
	testConsumerSecret = "1f11ee3f4a3e7b26"

	testRequestToken  = "72157626737672178-022bbd2f4c2f3432"
	testRequestSecret = "fccb68c4e6103197"
	testVerifier      = "5d1b96a26b494074"
	testAccessToken   = "72157626318069415-087bfc7b5816092c"
	testAccessSecret  = "a202d1f853ec69de"
)

// fakeFlickr is an OAuth provider plus REST endpoint that recomputes the
// signature of every request it receives.
type fakeFlickr struct {
	t      *testing.T
	server *httptest.Server

	requestTokenStatus int
	requestTokenBody   string
	accessTokenBody    string
	restStatus         int
	rest               func(t *testing.T, params url.Values) string

	mu    sync.Mutex
	calls map[string]int
}

func newFakeFlickr(t *testing.T) *fakeFlickr {
	t.Helper()
	f := &fakeFlickr{
		t:                t,
		requestTokenBody: fmt.Sprintf("oauth_callback_confirmed=true&oauth_token=%s&oauth_token_secret=%s", testRequestToken, testRequestSecret),
		accessTokenBody: fmt.Sprintf("fullname=Jamal%%20Fanaian&oauth_token=%s&oauth_token_secret=%s&user_nsid=21207597%%40N07&username=jamalfanaian",
			testAccessToken, testAccessSecret),
		calls: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/services/oauth/request_token", func(w http.ResponseWriter, r *http.Request) {
		f.count("request_token")
		params := f.verify(r, "")
		if got := params.Get(oauth1.ParamCallback); got != oauth1.CallbackOOB {
			t.Errorf("oauth_callback = %q, want oob", got)
		}
		if f.requestTokenStatus != 0 {
			w.WriteHeader(f.requestTokenStatus)
		}
		fmt.Fprint(w, f.requestTokenBody)
	})
	mux.HandleFunc("/services/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		f.count("access_token")
		params := f.verify(r, testRequestSecret)
		if got := params.Get(oauth1.ParamToken); got != testRequestToken {
			t.Errorf("oauth_token = %q, want request token", got)
		}
		if got := params.Get(oauth1.ParamVerifier); got != testVerifier {
			t.Errorf("oauth_verifier = %q, want %q", got, testVerifier)
		}
		fmt.Fprint(w, f.accessTokenBody)
	})
	mux.HandleFunc("/services/rest", func(w http.ResponseWriter, r *http.Request) {
		f.count("rest")
		params := f.verify(r, testAccessSecret)
		if got := params.Get(oauth1.ParamToken); got != testAccessToken {
			t.Errorf("oauth_token = %q, want access token", got)
		}
		if f.restStatus != 0 {
			w.WriteHeader(f.restStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.rest == nil {
			fmt.Fprint(w, `{"stat":"ok"}`)
			return
		}
		fmt.Fprint(w, f.rest(t, params))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeFlickr) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeFlickr) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// verify checks the protocol parameters and the signature of r.
func (f *fakeFlickr) verify(r *http.Request, tokenSecret string) url.Values {
	f.t.Helper()
	params := r.URL.Query()
	for _, p := range []string{oauth1.ParamNonce, oauth1.ParamTimestamp, oauth1.ParamConsumerKey, oauth1.ParamSignatureMethod, oauth1.ParamVersion} {
		if params.Get(p) == "" {
			f.t.Errorf("%s: missing %s", r.URL.Path, p)
		}
	}
	if got := params.Get(oauth1.ParamConsumerKey); got != testConsumerKey {
		f.t.Errorf("%s: consumer key = %q", r.URL.Path, got)
	}

	sig := params.Get(oauth1.ParamSignature)
	params.Del(oauth1.ParamSignature)
	base := oauth1.BaseString(r.Method, "http://"+r.Host+r.URL.Path, params)
	if want := oauth1.Sign(base, testConsumerSecret, tokenSecret); sig != want {
		f.t.Errorf("%s: signature = %q, want %q", r.URL.Path, sig, want)
	}
	return params
}

func (f *fakeFlickr) endpoints() Endpoints {
	return Endpoints{
		RequestToken: f.server.URL + "/services/oauth/request_token",
		Authorize:    "https://www.flickr.com/services/oauth/authorize",
		AccessToken:  f.server.URL + "/services/oauth/access_token",
		REST:         f.server.URL + "/services/rest",
	}
}

func (f *fakeFlickr) client(opts ...Option) *Client {
	base := []Option{
		WithEndpoints(f.endpoints()),
		WithHTTPClient(f.server.Client()),
		WithClock(func() time.Time { return time.Unix(1305586162, 0) }),
	}
	return NewClient(testConsumerKey, testConsumerSecret, append(base, opts...)...)
}

func (f *fakeFlickr) authenticated(opts ...Option) *AuthenticatedClient {
	return NewAuthenticatedClient(f.client(opts...), AccessToken{Token: testAccessToken, Secret: testAccessSecret})
}

// staticVerifier returns code and records the URL it was shown.
func staticVerifier(code string, seen **url.URL) Verifier {
	return VerifierFunc(func(_ context.Context, u *url.URL) (string, error) {
		if seen != nil {
			*seen = u
		}
		return code, nil
	})
}
