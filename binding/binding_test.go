package binding

import "testing"

func sample() map[string]any {
	return map[string]any{
		"user": map[string]any{"name": "Ada"},
		"items": []map[string]any{
			{"name": "pen", "qty": int64(2)},
			{"name": "ink", "qty": int64(0)},
		},
	}
}

func TestInterpolate(t *testing.T) {
	got := Interpolate("Hello, ${user.name}! ${items[1].name} ${missing}", sample())
	if want := "Hello, Ada! ink ${missing}"; got != want {
		t.Fatalf("Interpolate = %q, want %q", got, want)
	}
	if got := Interpolate("${user.name}", nil); got != "${user.name}" {
		t.Fatalf("nil data should leave placeholders, got %q", got)
	}
}

func TestResolveTraversesTypedValues(t *testing.T) {
	type line struct{ Name string }
	data := map[string]any{"lines": []line{{Name: "a"}, {Name: "b"}}}
	v, ok := Resolve(data, "lines[1].Name")
	if !ok || v != "b" {
		t.Fatalf("Resolve = %v, %v", v, ok)
	}
	if _, ok := Resolve(data, "lines[5].Name"); ok {
		t.Fatalf("out of range index should not resolve")
	}
}

func TestScope(t *testing.T) {
	root := NewScope(sample())
	items, ok := root.Resolve("data.items")
	if !ok {
		t.Fatalf("data.items should resolve")
	}
	list, ok := Items(items)
	if !ok || len(list) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
	inner := root.With("item", list[0])
	if got := inner.Interpolate("${item.name} x${item.qty} for ${user.name}"); got != "pen x2 for Ada" {
		t.Fatalf("scoped interpolation = %q", got)
	}
	if got := root.Interpolate("${item.name}"); got != "${item.name}" {
		t.Fatalf("loop variables must not leak to the parent scope, got %q", got)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{int64(0), false},
		{3.5, true},
		{[]any{}, false},
		{map[string]any{"a": 1}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}
