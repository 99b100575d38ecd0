package mirror

import (
	"context"

	"github.com/dixieflatline76/wallflower/pkg/flickr"
	"github.com/dixieflatline76/wallflower/util/log"
	"golang.org/x/sync/errgroup"
)

// ProcessFunc mirrors a single photo. It must always return a Result, even
// when ctx is done.
type ProcessFunc func(ctx context.Context, photo flickr.Photo) Result

// Pool is a fixed set of workers fed through one job channel. Every
// submitted photo produces exactly one Result on Results.
type Pool struct {
	jobs    chan flickr.Photo
	results chan Result
	group   errgroup.Group
	process ProcessFunc
}

// NewPool starts workers goroutines that run process until Close.
func NewPool(ctx context.Context, workers int, process ProcessFunc) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		jobs:    make(chan flickr.Photo),
		results: make(chan Result),
		process: process,
	}

	log.Debugf("mirror: starting %d workers", workers)
	for i := 0; i < workers; i++ {
		id := i
		p.group.Go(func() error {
			return p.workerLoop(ctx, id)
		})
	}
	return p
}

func (p *Pool) workerLoop(ctx context.Context, id int) error {
	for photo := range p.jobs {
		p.results <- p.process(ctx, photo)
	}
	log.Debugf("mirror: worker %d stopping", id)
	return nil
}

// Submit hands photo to the next free worker. It returns false if ctx is
// done before a worker accepts it.
func (p *Pool) Submit(ctx context.Context, photo flickr.Photo) bool {
	select {
	case p.jobs <- photo:
		return true
	case <-ctx.Done():
		return false
	}
}

// Results is the channel every worker reports on.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting jobs and waits for the workers to exit. All
// submitted results must have been received first.
func (p *Pool) Close() error {
	close(p.jobs)
	err := p.group.Wait()
	close(p.results)
	return err
}
