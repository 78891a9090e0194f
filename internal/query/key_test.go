package query

import (
	"net/url"
	"strings"
	"testing"
)

func TestKeyEqualityIgnoresMapOrder(t *testing.T) {
	a := map[string]any{}
	a["q"] = "foo"
	a["page"] = "2"

	b := map[string]any{}
	b["page"] = "2"
	b["q"] = "foo"

	k1 := NewKey("products", "list", a)
	k2 := NewKey("products", "list", b)

	if !k1.Equal(k2) {
		t.Errorf("keys should be structurally equal:\n%s\n%s", k1.Canonical(), k2.Canonical())
	}
}

func TestKeyInequality(t *testing.T) {
	k1 := NewKey("products", "list", map[string]any{"q": "foo"})
	k2 := NewKey("products", "list", map[string]any{"q": "bar"})
	if k1.Equal(k2) {
		t.Error("different filters must produce different keys")
	}

	k3 := NewKey("products", "detail", "1")
	k4 := NewKey("orders", "detail", "1")
	if k3.Equal(k4) {
		t.Error("different resources must produce different keys")
	}
}

func TestValuesMapOrderIndependent(t *testing.T) {
	f1 := url.Values{}
	f1.Set("q", "foo")
	f1.Set("sort", "name")

	f2 := url.Values{}
	f2.Set("sort", "name")
	f2.Set("q", "foo")

	k1 := NewKey("products", "list", valuesMap(f1))
	k2 := NewKey("products", "list", valuesMap(f2))
	if !k1.Equal(k2) {
		t.Errorf("url.Values assembly order leaked into the key:\n%s\n%s", k1.Canonical(), k2.Canonical())
	}
}

func TestResourcePrefixBoundary(t *testing.T) {
	k := NewKey("products", "list", map[string]any{"q": "foo"})
	if !strings.HasPrefix(k.Canonical(), ResourcePrefix("products")) {
		t.Errorf("key %s should match its own resource prefix", k.Canonical())
	}

	other := NewKey("productsets", "list")
	if strings.HasPrefix(other.Canonical(), ResourcePrefix("products")) {
		t.Errorf("prefix match must not cross resource boundaries: %s", other.Canonical())
	}
}

func TestKeyResource(t *testing.T) {
	if got := NewKey("orders", "detail", "7").Resource(); got != "orders" {
		t.Errorf("expected resource orders, got %q", got)
	}
	if got := (Key{}).Resource(); got != "" {
		t.Errorf("expected empty resource for empty key, got %q", got)
	}
}
