package mirror

import (
	"fmt"

	"github.com/dixieflatline76/wallflower/pkg/flickr"
)

// Status is the outcome for one photo.
type Status int

const (
	Failed Status = iota
	Existing
	Downloaded
)

func (s Status) String() string {
	switch s {
	case Failed:
		return "failed"
	case Existing:
		return "exists"
	case Downloaded:
		return "downloaded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what happened to one photo.
type Result struct {
	Photo  flickr.Photo
	Path   string
	Status Status
	// Err is set only when Status is Failed.
	Err error
}

// Report collects the results of a run in completion order.
type Report struct {
	Results []Result
	// Bytes is the total written by downloads in this run.
	Bytes int64
}

func (r *Report) filter(s Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == s {
			out = append(out, res)
		}
	}
	return out
}

// Downloaded returns the photos written by this run.
func (r *Report) Downloaded() []Result {
	return r.filter(Downloaded)
}

// Existing returns the photos that were already on disk.
func (r *Report) Existing() []Result {
	return r.filter(Existing)
}

// Failures returns the photos that could not be mirrored.
func (r *Report) Failures() []Result {
	return r.filter(Failed)
}

func (r *Report) String() string {
	return fmt.Sprintf("%d downloaded (%d bytes), %d already present, %d failed",
		len(r.Downloaded()), r.Bytes, len(r.Existing()), len(r.Failures()))
}
