package flickr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Dimension is a numeric field that Flickr sends either as a JSON number or
// as a JSON string of digits. Decode into it, then call Uint32.
type Dimension struct {
	Number   json.Number
	String   string
	IsString bool
}

// UnmarshalJSON records which of the two forms was sent.
func (d *Dimension) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		d.IsString = true
		return json.Unmarshal(b, &d.String)
	}
	d.IsString = false
	return json.Unmarshal(b, &d.Number)
}

// Uint32 coerces the value to an unsigned integer.
func (d Dimension) Uint32() (uint32, error) {
	s := d.Number.String()
	if d.IsString {
		s = d.String
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
	return uint32(v), nil
}

// Photo is a normalized listing record.
type Photo struct {
	ID     string
	Title  string
	Public bool
	URL    *url.URL
	Height uint32
	Width  uint32
	// Secret is empty when the listing omits it.
	Secret string
}

// PhotoPage is one page of a photo listing.
type PhotoPage struct {
	Page    int
	Pages   int
	PerPage int
	Total   int
	Photos  []Photo
}

// rawPhoto keeps every field so the size-specific keys can be picked at
// normalization time.
type rawPhoto map[string]json.RawMessage

type photosResponse struct {
	Photos struct {
		Page    Dimension  `json:"page"`
		Pages   Dimension  `json:"pages"`
		PerPage Dimension  `json:"perpage"`
		Total   Dimension  `json:"total"`
		Photo   []rawPhoto `json:"photo"`
	} `json:"photos"`
}

func (r rawPhoto) str(key string) (string, bool, error) {
	raw, ok := r[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, fmt.Errorf("field %s: %w", key, err)
	}
	return s, true, nil
}

func (r rawPhoto) dimension(key string) (uint32, error) {
	raw, ok := r[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	var d Dimension
	if err := json.Unmarshal(raw, &d); err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	v, err := d.Uint32()
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return v, nil
}

// normalize converts a raw record using the url/height/width fields for size.
func (r rawPhoto) normalize(size string) (Photo, error) {
	var p Photo
	var err error

	if p.ID, _, err = r.str("id"); err != nil {
		return Photo{}, err
	}
	if p.Title, _, err = r.str("title"); err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	if p.Secret, _, err = r.str("secret"); err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	if _, ok := r["ispublic"]; ok {
		public, err := r.dimension("ispublic")
		if err != nil {
			return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
		}
		p.Public = public != 0
	}

	urlKey := "url_" + size
	raw, ok, err := r.str(urlKey)
	if err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	if !ok || raw == "" {
		return Photo{}, fmt.Errorf("photo %s: missing %s", p.ID, urlKey)
	}
	if p.URL, err = url.Parse(raw); err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	if !p.URL.IsAbs() {
		return Photo{}, fmt.Errorf("photo %s: %s is not absolute: %q", p.ID, urlKey, raw)
	}

	if p.Height, err = r.dimension("height_" + size); err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	if p.Width, err = r.dimension("width_" + size); err != nil {
		return Photo{}, fmt.Errorf("photo %s: %w", p.ID, err)
	}
	return p, nil
}

func counter(d Dimension) (int, error) {
	if !d.IsString && d.Number == "" {
		return 0, nil
	}
	v, err := d.Uint32()
	return int(v), err
}

// PhotosPage lists one page of userID's photos. extra carries paging and
// filter parameters (page, per_page, extras, min_taken_date, ...). If any
// record fails to normalize the whole page is rejected.
func (a *AuthenticatedClient) PhotosPage(ctx context.Context, userID string, extra url.Values) (*PhotoPage, error) {
	params := make(url.Values, len(extra)+1)
	for k, vs := range extra {
		params[k] = vs
	}
	params.Set("user_id", userID)

	var resp photosResponse
	if err := a.Call(ctx, MethodGetPhotos, params, &resp); err != nil {
		return nil, err
	}

	page := &PhotoPage{Photos: make([]Photo, 0, len(resp.Photos.Photo))}
	counters := []struct {
		dst *int
		src Dimension
	}{
		{&page.Page, resp.Photos.Page},
		{&page.Pages, resp.Photos.Pages},
		{&page.PerPage, resp.Photos.PerPage},
		{&page.Total, resp.Photos.Total},
	}
	for _, c := range counters {
		v, err := counter(c.src)
		if err != nil {
			return nil, NewError(KindDecode, MethodGetPhotos, err)
		}
		*c.dst = v
	}

	size := a.PhotoSize()
	for _, raw := range resp.Photos.Photo {
		p, err := raw.normalize(size)
		if err != nil {
			return nil, NewError(KindDecode, MethodGetPhotos, err)
		}
		page.Photos = append(page.Photos, p)
	}
	return page, nil
}

// Photos lists one page of userID's photos.
func (a *AuthenticatedClient) Photos(ctx context.Context, userID string, extra url.Values) ([]Photo, error) {
	page, err := a.PhotosPage(ctx, userID, extra)
	if err != nil {
		return nil, err
	}
	return page.Photos, nil
}
