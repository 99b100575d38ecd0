package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"os/user"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dixieflatline76/wallflower/config"
	"github.com/dixieflatline76/wallflower/pkg/flickr"
	"github.com/dixieflatline76/wallflower/pkg/mirror"
	"github.com/dixieflatline76/wallflower/pkg/store"
	"github.com/dixieflatline76/wallflower/util/log"
	"github.com/urfave/cli/v2"
)

// session is everything a command needs after configuration is loaded.
type session struct {
	cfg    *config.Config
	client *flickr.Client
	store  store.Store
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := tokenStore(cfg)
	if err != nil {
		return nil, err
	}
	client := flickr.NewClient(
		flickr.ConsumerKey(cfg.APIKey),
		flickr.ConsumerSecret(cfg.APISecret),
		flickr.WithPerms(cfg.Perms),
		flickr.WithPhotoSize(cfg.PhotoSize),
	)
	return &session{cfg: cfg, client: client, store: s}, nil
}

// tokenStore picks where the access token lives.
func tokenStore(cfg *config.Config) (store.Store, error) {
	switch cfg.TokenStore {
	case config.TokenStoreKeyring:
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("failed to look up current user for keyring: %w", err)
		}
		return store.NewKeyringStore(strings.ToLower(config.AppName), u.Username), nil
	case config.TokenStoreFile, "":
		return store.NewFileStore(config.GetPath()), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

func (s *session) authenticate(ctx context.Context) (*flickr.AuthenticatedClient, error) {
	return flickr.LoadOrAuthenticate(ctx, s.client, s.store, s.cfg.CredentialKey, promptVerifier(os.Stdin, os.Stdout))
}

// promptVerifier prints the authorization URL to w and reads the code from r.
func promptVerifier(r io.Reader, w io.Writer) flickr.Verifier {
	return flickr.VerifierFunc(func(ctx context.Context, authURL *url.URL) (string, error) {
		fmt.Fprintf(w, "Open this URL in your browser and approve access:\n\n  %s\n\nEnter the verification code: ", authURL)

		line := make(chan string, 1)
		errc := make(chan error, 1)
		go func() {
			text, err := bufio.NewReader(r).ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && text != "") {
				errc <- err
				return
			}
			line <- strings.TrimSpace(text)
		}()

		select {
		case code := <-line:
			return code, nil
		case err := <-errc:
			return "", fmt.Errorf("failed to read verification code: %w", err)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt)
}

// initAction saves defaults merged with any file and environment settings.
// Credentials are never written.
func initAction(c *cli.Context) error {
	path := c.String("config")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return nil
}

func authAction(c *cli.Context) error {
	ctx, cancel := signalContext(c)
	defer cancel()

	s, err := newSession(c)
	if err != nil {
		return err
	}
	ac, err := s.authenticate(ctx)
	if err != nil {
		return err
	}
	tok, err := ac.CheckToken(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Authorized as %s (%s) with %s access\n", tok.User.Username, tok.User.NSID, tok.Perms)
	return nil
}

func checkAction(c *cli.Context) error {
	ctx, cancel := signalContext(c)
	defer cancel()

	s, err := newSession(c)
	if err != nil {
		return err
	}
	blob, err := s.store.Load(s.cfg.CredentialKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("no saved credentials, run `wallflower auth` first")
		}
		return err
	}
	token, err := flickr.DecodeAccessToken(blob)
	if err != nil {
		return err
	}

	tok, err := flickr.NewAuthenticatedClient(s.client, token).CheckToken(ctx)
	if err != nil {
		return err
	}
	if c.Bool("verbose") {
		spew.Fdump(c.App.Writer, tok)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Token is valid for %s (%s), perms %s\n", tok.User.Username, tok.User.NSID, tok.Perms)
	return nil
}

func syncAction(c *cli.Context) error {
	ctx, cancel := signalContext(c)
	defer cancel()

	s, err := newSession(c)
	if err != nil {
		return err
	}
	ac, err := s.authenticate(ctx)
	if err != nil {
		return err
	}
	tok, err := ac.CheckToken(ctx)
	if err != nil {
		return err
	}
	log.Printf("Mirroring photos of %s (%s) into %s", tok.User.Username, tok.User.NSID, s.cfg.PhotoDir)

	m := mirror.New(ac, mirror.Options{
		Dir:           s.cfg.PhotoDir,
		Workers:       s.cfg.Workers,
		MaxPages:      s.cfg.MaxPages,
		PerPage:       s.cfg.PerPage,
		MinTakenDate:  s.cfg.MinTakenDate,
		ContentType:   s.cfg.ContentType,
		PrivacyFilter: s.cfg.PrivacyFilter,
	})
	report, err := m.Run(ctx, tok.User.NSID)
	if report != nil {
		printReport(c.App.Writer, report, c.Bool("verbose"))
	}
	return err
}

func printReport(w io.Writer, r *mirror.Report, verbose bool) {
	fmt.Fprintln(w, r)
	if verbose {
		for _, res := range r.Downloaded() {
			fmt.Fprintf(w, "  + %s\n", res.Path)
		}
	}
	for _, res := range r.Failures() {
		fmt.Fprintf(w, "  ! %s: %v\n", res.Photo.ID, res.Err)
	}
}
