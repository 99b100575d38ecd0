package flickr

import (
	"context"
	"errors"

	"github.com/dixieflatline76/wallflower/pkg/store"
	"github.com/dixieflatline76/wallflower/util/log"
)

// LoadOrAuthenticate returns a client for the access token saved under key.
// When nothing usable is saved it runs the authorization flow with v and
// saves the new token under key before returning.
func LoadOrAuthenticate(ctx context.Context, c *Client, s store.Store, key string, v Verifier) (*AuthenticatedClient, error) {
	blob, err := s.Load(key)
	switch {
	case err == nil:
		token, err := DecodeAccessToken(blob)
		if err != nil {
			return nil, err
		}
		log.Debugf("flickr: loaded access token from %s", key)
		return NewAuthenticatedClient(c, token), nil
	case errors.Is(err, store.ErrNotFound):
		log.Printf("No saved Flickr credentials at %s, starting authorization", key)
	default:
		log.Printf("Failed to load Flickr credentials, starting authorization: %v", err)
	}

	ac, err := c.Authenticate(ctx, v)
	if err != nil {
		return nil, err
	}

	blob, err = EncodeAccessToken(ac.AccessToken())
	if err != nil {
		return nil, NewError(KindDecode, "encode access token", err)
	}
	if err := s.Save(key, blob); err != nil {
		return nil, NewError(KindIO, "save access token", err)
	}
	log.Printf("Saved Flickr credentials to %s", key)
	return ac, nil
}
