package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/storekit/internal/query"
)

func TestSetGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	e := query.Entry{Value: []byte(`[1,2]`), FetchedAt: time.Now()}
	if err := s.Set(ctx, `"products"/"list"`, e); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := s.Get(ctx, `"products"/"list"`)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got.Value) != `[1,2]` {
		t.Errorf("unexpected value: %s", got.Value)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	s := New()
	ctx := context.Background()

	keys := []string{
		`"products"/"list"`,
		`"products"/"list"/{"q":"foo"}`,
		`"products"/"detail"/"1"`,
		`"productsets"/"list"`,
		`"orders"/"list"`,
	}
	for _, k := range keys {
		if err := s.Set(ctx, k, query.Entry{Value: []byte("{}"), FetchedAt: time.Now()}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := s.InvalidatePrefix(ctx, `"products"/`)
	if err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 removed, got %d", n)
	}
	if s.Len() != 2 {
		t.Errorf("expected 2 remaining, got %d", s.Len())
	}

	if _, ok, _ := s.Get(ctx, `"productsets"/"list"`); !ok {
		t.Error("prefix invalidation removed an unrelated resource")
	}
	if _, ok, _ := s.Get(ctx, `"orders"/"list"`); !ok {
		t.Error("prefix invalidation removed an unrelated resource")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf(`"products"/"detail"/"%d-%d"`, n, j)
				_ = s.Set(ctx, key, query.Entry{Value: []byte("{}"), FetchedAt: time.Now()})
				_, _, _ = s.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 1600 {
		t.Errorf("expected 1600 entries, got %d", s.Len())
	}
}
