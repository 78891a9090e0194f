package resource_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/vietddude/storekit/internal/api/apierror"
	"github.com/vietddude/storekit/internal/api/resource"
	"github.com/vietddude/storekit/internal/api/transport"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type widgetInput struct {
	Name string `json:"name"`
}

func newService(t *testing.T, handler http.HandlerFunc) *resource.Service[widget, widgetInput] {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := transport.New(transport.Config{
		BaseURL: server.URL,
		Retry: transport.RetryConfig{
			MaxAttempts:  1,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
		},
	})
	t.Cleanup(func() { _ = client.Close() })

	return resource.NewService[widget, widgetInput](client, "widgets", apierror.FieldMessage)
}

func TestListReturnsDataUnchanged(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/widgets" {
			t.Errorf("expected path /widgets, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "foo" {
			t.Errorf("expected q=foo, got %q", got)
		}
		w.Write([]byte(`[{"id":"1","name":"Widget"}]`))
	})

	widgets, err := svc.List(context.Background(), url.Values{"q": {"foo"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(widgets) != 1 || widgets[0].ID != "1" || widgets[0].Name != "Widget" {
		t.Errorf("unexpected result: %+v", widgets)
	}
}

func TestListRecognizedError(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid filter"}`))
	})

	_, err := svc.List(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "invalid filter" {
		t.Errorf("expected message %q, got %q", "invalid filter", apiErr.Message)
	}
}

func TestCreateOpaqueError(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html><body>Internal Server Error</body></html>`))
	})

	_, err := svc.Create(context.Background(), widgetInput{Name: ""})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("an HTML body must stay opaque, got APIError %q", apiErr.Message)
	}
	var herr *transport.Error
	if !errors.As(err, &herr) {
		t.Fatalf("expected the original transport failure, got %T: %v", err, err)
	}
	if herr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", herr.Status)
	}
}

func TestGet(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/widgets/1" {
			t.Errorf("expected path /widgets/1, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"1","name":"Widget"}`))
	})

	got, err := svc.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Widget" {
		t.Errorf("unexpected result: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"widget not found"}`))
	})

	_, err := svc.Get(context.Background(), "nope")
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "widget not found" || apiErr.Status != http.StatusNotFound {
		t.Errorf("unexpected classification: %+v", apiErr)
	}
}

func TestCreateSuccess(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"9","name":"Gadget"}`))
	})

	got, err := svc.Create(context.Background(), widgetInput{Name: "Gadget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "9" || got.Name != "Gadget" {
		t.Errorf("unexpected result: %+v", got)
	}
}
