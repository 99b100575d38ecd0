package flickr

// Default Flickr endpoints.
const (
	DefaultRequestTokenURL = "https://www.flickr.com/services/oauth/request_token"
	DefaultAuthorizeURL    = "https://www.flickr.com/services/oauth/authorize"
	DefaultAccessTokenURL  = "https://www.flickr.com/services/oauth/access_token"
	DefaultRESTURL         = "https://api.flickr.com/services/rest"
)

// API methods.
const (
	MethodCheckToken = "flickr.auth.oauth.checkToken"
	MethodGetPhotos  = "flickr.people.getPhotos"
)

// Permission scopes for the authorize URL.
const (
	PermsRead   = "read"
	PermsWrite  = "write"
	PermsDelete = "delete"
)

// DefaultPhotoSize is the "Large 2048" size suffix (url_k, height_k, width_k).
const DefaultPhotoSize = "k"

// Endpoints are the provider URLs a Client talks to.
type Endpoints struct {
	RequestToken string
	Authorize    string
	AccessToken  string
	REST         string
}

// DefaultEndpoints returns the production Flickr endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		RequestToken: DefaultRequestTokenURL,
		Authorize:    DefaultAuthorizeURL,
		AccessToken:  DefaultAccessTokenURL,
		REST:         DefaultRESTURL,
	}
}
