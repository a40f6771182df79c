package highlight

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

type PoolConfig struct {
	Workers  int
	CacheTTL time.Duration
	// Highlighter defaults to Default().
	Highlighter *Highlighter
}

// Pool highlights requests on background workers and caches results by
// text and syntax error mode. Requests carrying a tree are never cached.
type Pool struct {
	hl      *Highlighter
	cache   *cache.Cache
	tasks   chan Request
	workers int

	pendingMu sync.Mutex
	pending   map[string]struct{}
	closed    bool
}

func NewPool(cfg PoolConfig) *Pool {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	hl := cfg.Highlighter
	if hl == nil {
		hl = Default()
	}

	p := &Pool{
		hl:      hl,
		cache:   cache.New(ttl, 2*ttl),
		tasks:   make(chan Request, workers*256),
		workers: workers,
		pending: make(map[string]struct{}),
	}

	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func cacheKey(req Request) string {
	return strconv.FormatBool(req.SyntaxErrors) + "\x00" + req.Text
}

// Lookup returns a cached result without doing any work. Cached results
// are shared and must not be modified.
func (p *Pool) Lookup(req Request) (Result, bool) {
	if req.Tree != nil {
		return Result{}, false
	}
	v, ok := p.cache.Get(cacheKey(req))
	if !ok {
		return Result{}, false
	}
	return v.(Result), true
}

// Queue schedules req for background highlighting. It never blocks; when
// the queue is full or the pool is closed the request is dropped.
func (p *Pool) Queue(req Request) {
	if req.Text == "" || req.Tree != nil {
		return
	}

	key := cacheKey(req)
	if _, ok := p.cache.Get(key); ok {
		return
	}

	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	if _, ok := p.pending[key]; ok || p.closed {
		return
	}

	select {
	case p.tasks <- req:
		p.pending[key] = struct{}{}
	default:
	}
}

func (p *Pool) worker() {
	for req := range p.tasks {
		key := cacheKey(req)
		if res, err := p.hl.Annotations(req); err == nil {
			p.cache.SetDefault(key, res)
		}

		p.pendingMu.Lock()
		delete(p.pending, key)
		p.pendingMu.Unlock()
	}
}

// Do highlights reqs concurrently, at most Workers at a time, and returns
// results in request order. Cached results are reused.
func (p *Pool) Do(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	errs := make([]error, len(reqs))
	sem := make(chan struct{}, p.workers)

	var wg sync.WaitGroup
	for i, req := range reqs {
		if res, ok := p.Lookup(req); ok {
			results[i] = res
			continue
		}

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}

		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := p.hl.Annotations(req)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = res
			if req.Tree == nil {
				p.cache.SetDefault(cacheKey(req), res)
			}
		}(i, req)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Close stops the background workers. Later calls to Queue are ignored.
func (p *Pool) Close() {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}
