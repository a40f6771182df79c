package highlight

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestPoolDoMatchesDirectCalls(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 2})
	defer p.Close()

	reqs := []Request{
		{Text: "sum(1:8)"},
		{Text: "f(x", SyntaxErrors: true},
		{Text: "x::Int"},
		{Text: "sum(1:8)"},
	}
	got, err := p.Do(context.Background(), reqs)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(got) != len(reqs) {
		t.Fatalf("results = %d, want %d", len(got), len(reqs))
	}
	for i, req := range reqs {
		want, err := Default().Annotations(req)
		if err != nil {
			t.Fatalf("Annotations: %v", err)
		}
		if !reflect.DeepEqual(got[i].Annotations, want.Annotations) {
			t.Fatalf("result %d = %v, want %v", i, got[i].Annotations, want.Annotations)
		}
	}

	if _, ok := p.Lookup(Request{Text: "x::Int"}); !ok {
		t.Fatalf("Do did not populate the cache")
	}
	if _, ok := p.Lookup(Request{Text: "x::Int", SyntaxErrors: true}); ok {
		t.Fatalf("cache ignores the syntax error mode")
	}
}

func TestPoolQueueFillsCache(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1, CacheTTL: time.Minute})
	defer p.Close()

	req := Request{Text: "typeof(x)"}
	p.Queue(req)
	p.Queue(req)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := p.Lookup(req); ok {
			if len(res.Annotations) == 0 {
				t.Fatalf("cached result is empty")
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("queued request never reached the cache")
}

func TestPoolDoCanceled(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Do(ctx, []Request{{Text: "a"}, {Text: "b"}}); err != context.Canceled {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
}

func TestPoolQueueAfterCloseIsIgnored(t *testing.T) {
	p := NewPool(PoolConfig{Workers: 1})
	p.Close()
	p.Close()

	req := Request{Text: "x"}
	p.Queue(req)
	if _, ok := p.Lookup(req); ok {
		t.Fatalf("closed pool cached a queued request")
	}
}
