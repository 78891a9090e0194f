// End-to-end exercise of the whole protocol: resource services over the real
// transport against the reference server, reads through the query cache,
// and prefix invalidation after a successful create.
package server_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/vietddude/storekit/internal/api/apierror"
	"github.com/vietddude/storekit/internal/api/resource"
	"github.com/vietddude/storekit/internal/api/transport"
	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/infra/storage/memory"
	"github.com/vietddude/storekit/internal/query"
	"github.com/vietddude/storekit/internal/query/memstore"
	"github.com/vietddude/storekit/internal/server"
)

type clientStack struct {
	cache    *query.Cache
	products *resource.Service[domain.Product, domain.ProductInput]
	orders   *resource.Service[domain.Order, domain.OrderInput]
}

func newStack(t *testing.T) *clientStack {
	t.Helper()

	store := memory.NewMemoryStorage()
	s := server.New(server.Config{Port: 0},
		memory.NewProductRepo(store),
		memory.NewOrderRepo(store))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client := transport.New(transport.Config{
		BaseURL: ts.URL,
		Retry: transport.RetryConfig{
			MaxAttempts:  1,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
		},
	})
	t.Cleanup(func() { _ = client.Close() })

	return &clientStack{
		cache:    query.NewCache(memstore.New()),
		products: resource.NewService[domain.Product, domain.ProductInput](client, domain.ResourceProducts, apierror.FieldMessage),
		orders:   resource.NewService[domain.Order, domain.OrderInput](client, domain.ResourceOrders, apierror.FieldMessage),
	}
}

func TestCreateInvalidatesCachedList(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()
	staleTime := time.Minute

	list := query.ListQuery(stack.products, url.Values{}, staleTime)

	before, err := query.Run(ctx, stack.cache, list)
	if err != nil {
		t.Fatalf("initial list: %v", err)
	}
	if len(before) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(before))
	}

	m := query.CreateMutation(stack.cache, stack.products)
	created, err := m.Execute(ctx, domain.ProductInput{Name: "Widget", PriceCents: 500})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// The cached empty list must not survive the successful write.
	after, err := query.Run(ctx, stack.cache, list)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(after) != 1 || after[0].ID != created.ID {
		t.Errorf("expected the new product in the list, got %+v", after)
	}

	// Unrelated resources keep their cached results.
	orderList := query.ListQuery(stack.orders, url.Values{}, staleTime)
	if _, err := query.Run(ctx, stack.cache, orderList); err != nil {
		t.Fatalf("order list: %v", err)
	}
}

func TestTypedErrorReachesCaller(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()

	m := query.CreateMutation(stack.cache, stack.products)
	_, err := m.Execute(ctx, domain.ProductInput{Name: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "name is required" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}
}

func TestDetailReadThroughCache(t *testing.T) {
	stack := newStack(t)
	ctx := context.Background()

	m := query.CreateMutation(stack.cache, stack.products)
	created, err := m.Execute(ctx, domain.ProductInput{Name: "Widget"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	d := query.GetQuery(stack.products, created.ID.String(), time.Minute)
	for i := 0; i < 2; i++ {
		got, err := query.Run(ctx, stack.cache, d)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if got.ID != created.ID {
			t.Errorf("get %d: expected id %s, got %s", i, created.ID, got.ID)
		}
	}
}
