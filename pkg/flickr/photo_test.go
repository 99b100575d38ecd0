package flickr

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{name: "Number", input: `42`, want: 42},
		{name: "Digit string", input: `"42"`, want: 42},
		{name: "Zero", input: `0`, want: 0},
		{name: "Max", input: `"4294967295"`, want: 4294967295},
		{name: "Overflow", input: `4294967296`, wantErr: true},
		{name: "Letters", input: `"abc"`, wantErr: true},
		{name: "Negative", input: `-1`, wantErr: true},
		{name: "Fraction", input: `"4.2"`, wantErr: true},
		{name: "Empty string", input: `""`, wantErr: true},
		{name: "Bool", input: `true`, wantErr: true},
		{name: "Null", input: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Dimension
			err := json.Unmarshal([]byte(tt.input), &d)
			var got uint32
			if err == nil {
				got, err = d.Uint32()
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const photosBody = `{"photos":{"page":1,"pages":"3","perpage":2,"total":"5","photo":[
	{"id":"1001","owner":"21207597@N07","secret":"abc","title":"Beach","ispublic":1,
	 "url_k":"https://live.staticflickr.com/65535/1001_abc_k.jpg","height_k":1365,"width_k":"2048"},
	{"id":"1002","owner":"21207597@N07","title":"Hills","ispublic":"0",
	 "url_k":"https://live.staticflickr.com/65535/1002_def_k.jpg","height_k":"1536","width_k":2048}
]},"stat":"ok"}`

func TestPhotosPage(t *testing.T) {
	f := newFakeFlickr(t)
	f.rest = func(t *testing.T, params url.Values) string {
		assert.Equal(t, MethodGetPhotos, params.Get("method"))
		assert.Equal(t, "21207597@N07", params.Get("user_id"))
		assert.Equal(t, "url_k", params.Get("extras"))
		assert.Equal(t, "2", params.Get("page"))
		return photosBody
	}

	extra := url.Values{"extras": {"url_k"}, "page": {"2"}}
	page, err := f.authenticated().PhotosPage(context.Background(), "21207597@N07", extra)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Photos, 2)

	first := page.Photos[0]
	assert.Equal(t, "1001", first.ID)
	assert.Equal(t, "Beach", first.Title)
	assert.True(t, first.Public)
	assert.Equal(t, "abc", first.Secret)
	assert.Equal(t, "https://live.staticflickr.com/65535/1001_abc_k.jpg", first.URL.String())
	assert.Equal(t, uint32(1365), first.Height)
	assert.Equal(t, uint32(2048), first.Width)

	second := page.Photos[1]
	assert.False(t, second.Public)
	assert.Empty(t, second.Secret)
	assert.Equal(t, uint32(1536), second.Height)
	assert.Equal(t, uint32(2048), second.Width)

	assert.Empty(t, extra.Get("user_id"), "caller's values are not modified")
}

func TestPhotosPage_RejectsWholePage(t *testing.T) {
	good := `{"id":"1","title":"ok","url_k":"https://live.staticflickr.com/1_k.jpg","height_k":1,"width_k":1}`
	tests := []struct {
		name string
		bad  string
	}{
		{name: "Bad height", bad: `{"id":"2","title":"x","url_k":"https://live.staticflickr.com/2_k.jpg","height_k":"tall","width_k":1}`},
		{name: "Negative width", bad: `{"id":"2","title":"x","url_k":"https://live.staticflickr.com/2_k.jpg","height_k":1,"width_k":-5}`},
		{name: "Missing width", bad: `{"id":"2","title":"x","url_k":"https://live.staticflickr.com/2_k.jpg","height_k":1}`},
		{name: "Missing url", bad: `{"id":"2","title":"x","height_k":1,"width_k":1}`},
		{name: "Relative url", bad: `{"id":"2","title":"x","url_k":"2_k.jpg","height_k":1,"width_k":1}`},
		{name: "Numeric title", bad: `{"id":"2","title":7,"url_k":"https://live.staticflickr.com/2_k.jpg","height_k":1,"width_k":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeFlickr(t)
			f.rest = func(*testing.T, url.Values) string {
				return `{"photos":{"page":1,"pages":1,"perpage":2,"total":2,"photo":[` + good + `,` + tt.bad + `]},"stat":"ok"}`
			}

			photos, err := f.authenticated().Photos(context.Background(), "me", nil)
			require.Error(t, err)
			assert.Nil(t, photos)
			assert.True(t, IsKind(err, KindDecode), "got %v", err)
		})
	}
}

func TestPhotos_BadCounter(t *testing.T) {
	f := newFakeFlickr(t)
	f.rest = func(*testing.T, url.Values) string {
		return `{"photos":{"page":1,"pages":"many","photo":[]},"stat":"ok"}`
	}

	_, err := f.authenticated().PhotosPage(context.Background(), "me", nil)
	assert.True(t, IsKind(err, KindDecode), "got %v", err)
}

func TestPhotos_Size(t *testing.T) {
	f := newFakeFlickr(t)
	f.rest = func(*testing.T, url.Values) string {
		return `{"photos":{"page":1,"pages":1,"photo":[
			{"id":"1","title":"a","url_k":"https://live.staticflickr.com/1_k.jpg","height_k":1,"width_k":2,
			 "url_o":"https://live.staticflickr.com/1_o.jpg","height_o":"3000","width_o":"4000"}]},"stat":"ok"}`
	}

	ac := f.authenticated(WithPhotoSize("o"))
	assert.Equal(t, "o", ac.PhotoSize())
	photos, err := ac.Photos(context.Background(), "me", nil)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "/1_o.jpg", photos[0].URL.Path)
	assert.Equal(t, uint32(3000), photos[0].Height)
	assert.Equal(t, uint32(4000), photos[0].Width)
}

func TestPhotos_Empty(t *testing.T) {
	f := newFakeFlickr(t)
	f.rest = func(*testing.T, url.Values) string {
		return `{"photos":{"page":1,"pages":0,"perpage":100,"total":0,"photo":[]},"stat":"ok"}`
	}

	page, err := f.authenticated().PhotosPage(context.Background(), "me", nil)
	require.NoError(t, err)
	assert.Empty(t, page.Photos)
	assert.Equal(t, 0, page.Pages)
}
