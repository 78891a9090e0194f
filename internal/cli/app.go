package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vietddude/storekit/internal/api/apierror"
	"github.com/vietddude/storekit/internal/api/resource"
	"github.com/vietddude/storekit/internal/api/transport"
	"github.com/vietddude/storekit/internal/core/config"
	"github.com/vietddude/storekit/internal/core/domain"
	"github.com/vietddude/storekit/internal/query"
	"github.com/vietddude/storekit/internal/query/memstore"
	"github.com/vietddude/storekit/internal/query/redistore"
)

// app bundles the client stack every command needs: the transport, the
// resource services, and the query cache. The cache store is chosen by
// config; the redis backend shares one cache across invocations.
type app struct {
	cfg      *config.AppConfig
	cache    *query.Cache
	client   *transport.Client
	products *resource.Service[domain.Product, domain.ProductInput]
	orders   *resource.Service[domain.Order, domain.OrderInput]
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	field, err := apierror.ParseField(cfg.API.ErrorField)
	if err != nil {
		return nil, err
	}

	client := transport.New(transport.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Retry: transport.RetryConfig{
			MaxAttempts:  cfg.API.Retry.MaxAttempts,
			InitialDelay: cfg.API.Retry.InitialDelay,
			MaxDelay:     cfg.API.Retry.MaxDelay,
		},
	})

	var store query.Store
	switch cfg.Cache.Backend {
	case "redis":
		store, err = redistore.New(cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("init redis cache: %w", err)
		}
	case "memory":
		store = memstore.New()
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}

	return &app{
		cfg:      cfg,
		cache:    query.NewCache(store),
		client:   client,
		products: resource.NewService[domain.Product, domain.ProductInput](client, domain.ResourceProducts, field),
		orders:   resource.NewService[domain.Order, domain.OrderInput](client, domain.ResourceOrders, field),
	}, nil
}

func (a *app) Close() {
	if err := a.cache.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close cache: %v\n", err)
	}
	_ = a.client.Close()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
