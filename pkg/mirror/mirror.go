// Package mirror copies a user's photostream into a local directory.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dixieflatline76/wallflower/pkg/flickr"
	"github.com/dixieflatline76/wallflower/util"
	"github.com/dixieflatline76/wallflower/util/log"
)

// ErrNoFileName means the photo URL path has no final segment.
var ErrNoFileName = errors.New("URL does not have file name")

// ErrDuplicateName means another photo in the same page maps to the same
// file.
var ErrDuplicateName = errors.New("file name already used by another photo in this page")

// Lister returns one page of a user's photos. PhotoSize is the size suffix
// whose url_<size> field the lister reads.
type Lister interface {
	PhotosPage(ctx context.Context, userID string, extra url.Values) (*flickr.PhotoPage, error)
	PhotoSize() string
}

// Options controls what is listed and where it is written.
type Options struct {
	Dir      string
	Workers  int
	MaxPages int
	PerPage  int
	// MinTakenDate is a unix timestamp; older photos are not listed.
	MinTakenDate  string
	ContentType   string
	PrivacyFilter string
	HTTPClient    *http.Client
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Dir:          "photos",
		Workers:      8,
		MaxPages:     3,
		PerPage:      100,
		MinTakenDate: "1388494800",
		ContentType:  "1",
	}
}

// Mirror downloads listed photos that are not yet on disk.
type Mirror struct {
	lister     Lister
	opts       Options
	httpClient *http.Client
	bytes      util.Counter
}

// New creates a Mirror. Zero-valued options fall back to DefaultOptions.
func New(lister Lister, opts Options) *Mirror {
	def := DefaultOptions()
	if opts.Dir == "" {
		opts.Dir = def.Dir
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = def.MaxPages
	}
	if opts.PerPage <= 0 {
		opts.PerPage = def.PerPage
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Mirror{lister: lister, opts: opts, httpClient: hc}
}

// pageParams returns the listing parameters for page.
func (m *Mirror) pageParams(page int) url.Values {
	params := url.Values{}
	params.Set("extras", "url_"+m.lister.PhotoSize())
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(m.opts.PerPage))
	if m.opts.MinTakenDate != "" {
		params.Set("min_taken_date", m.opts.MinTakenDate)
	}
	if m.opts.ContentType != "" {
		params.Set("content_type", m.opts.ContentType)
	}
	if m.opts.PrivacyFilter != "" {
		params.Set("privacy_filter", m.opts.PrivacyFilter)
	}
	return params
}

// Run mirrors up to MaxPages pages of userID's photos. Per-photo failures are
// recorded in the report; the error is non-nil only if the directory cannot
// be created or a page cannot be listed.
func (m *Mirror) Run(ctx context.Context, userID string) (*Report, error) {
	report := &Report{}
	if err := os.MkdirAll(m.opts.Dir, 0o755); err != nil {
		return report, flickr.NewError(flickr.KindIO, "create photo directory", err)
	}

	start := m.bytes.Value()
	pool := NewPool(ctx, m.opts.Workers, m.ensureLocal)
	defer func() {
		if err := pool.Close(); err != nil {
			log.Printf("mirror: worker error: %v", err)
		}
		report.Bytes = m.bytes.Value() - start
	}()

	for page := 1; page <= m.opts.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		listing, err := m.lister.PhotosPage(ctx, userID, m.pageParams(page))
		if err != nil {
			return report, err
		}
		log.Debugf("mirror: page %d/%d has %d photos", page, listing.Pages, len(listing.Photos))
		if len(listing.Photos) == 0 {
			break
		}

		report.Results = append(report.Results, m.runBatch(ctx, pool, listing.Photos)...)
		if page >= listing.Pages {
			break
		}
	}
	return report, nil
}

// runBatch submits photos from a separate goroutine and drains one result
// per submitted photo before returning. Only the first photo of the page
// with a given file name is submitted; the others fail with
// ErrDuplicateName.
func (m *Mirror) runBatch(ctx context.Context, pool *Pool, photos []flickr.Photo) []Result {
	results := make([]Result, 0, len(photos))
	jobs := make([]flickr.Photo, 0, len(photos))
	seen := make(map[string]bool, len(photos))
	for _, p := range photos {
		if p.URL != nil {
			if name, err := FileName(p.URL); err == nil {
				if seen[name] {
					path := filepath.Join(m.opts.Dir, name)
					err := flickr.NewError(flickr.KindIO, "mirror", fmt.Errorf("%w: %s", ErrDuplicateName, path))
					log.Printf("%s -> failed: %v", p.URL, err)
					results = append(results, Result{Photo: p, Path: path, Status: Failed, Err: err})
					continue
				}
				seen[name] = true
			}
		}
		jobs = append(jobs, p)
	}

	submitted := make(chan int, 1)
	go func() {
		n := 0
		for _, p := range jobs {
			if !pool.Submit(ctx, p) {
				break
			}
			n++
		}
		submitted <- n
	}()

	skipped := len(results)
	want := skipped + len(jobs)
	for len(results) < want {
		select {
		case n := <-submitted:
			want = skipped + n
			submitted = nil
		case res := <-pool.Results():
			results = append(results, res)
		}
	}
	return results
}

// FileName returns the decoded final path component of u. Trailing slashes
// and "." components are ignored; a path that ends in ".." or has no
// components has no file name.
func FileName(u *url.URL) (string, error) {
	const op = "file name"
	p, err := url.PathUnescape(u.EscapedPath())
	if err != nil {
		return "", flickr.NewError(flickr.KindEncoding, op, err)
	}
	if !utf8.ValidString(p) {
		return "", flickr.NewError(flickr.KindEncoding, op, fmt.Errorf("path of %s is not valid UTF-8", u.Redacted()))
	}
	var name string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && seg != "." {
			name = seg
		}
	}
	if name == "" || name == ".." {
		return "", flickr.NewError(flickr.KindIO, op, ErrNoFileName)
	}
	return name, nil
}

// ensureLocal makes sure photo is present in the photo directory.
func (m *Mirror) ensureLocal(ctx context.Context, photo flickr.Photo) Result {
	res := Result{Photo: photo, Status: Failed}
	if photo.URL == nil {
		res.Err = flickr.NewError(flickr.KindIO, "file name", ErrNoFileName)
		return res
	}
	src := photo.URL.String()

	name, err := FileName(photo.URL)
	if err != nil {
		log.Printf("%s -> failed: %v", src, err)
		res.Err = err
		return res
	}
	res.Path = filepath.Join(m.opts.Dir, name)

	if info, err := os.Stat(res.Path); err == nil {
		if !info.Mode().IsRegular() {
			res.Err = flickr.NewError(flickr.KindIO, "mirror", fmt.Errorf("%s exists and is not a regular file", res.Path))
			log.Printf("%s -> failed: %v", src, res.Err)
			return res
		}
		log.Printf("%s -> exists", src)
		res.Status = Existing
		return res
	}

	log.Printf("%s -> downloading", src)
	n, err := m.download(ctx, src, res.Path)
	switch {
	case errors.Is(err, fs.ErrExist):
		log.Printf("%s -> exists", src)
		res.Status = Existing
	case err != nil:
		log.Printf("%s -> failed: %v", src, err)
		res.Err = err
	default:
		m.bytes.Add(n)
		res.Status = Downloaded
	}
	return res
}

// download writes the body of src to a new file at dst. The file is only
// created after a successful response and is removed if the copy fails.
func (m *Mirror) download(ctx context.Context, src, dst string) (int64, error) {
	const op = "download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return 0, flickr.NewError(flickr.KindTransport, op, err)
	}
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, flickr.NewError(flickr.KindTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, flickr.NewError(flickr.KindTransport, op, &flickr.StatusError{Code: resp.StatusCode, Status: resp.Status})
	}

	file, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return 0, err
		}
		return 0, flickr.NewError(flickr.KindIO, op, err)
	}

	n, err := io.Copy(file, resp.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(dst); rerr != nil {
			log.Printf("Failed to remove partial file %s: %v", dst, rerr)
		}
		return 0, flickr.NewError(flickr.KindIO, op, err)
	}
	return n, nil
}
