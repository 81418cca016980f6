package lco

import (
	"context"
	"net/http"
	"testing"
)

type rawStub struct {
	responses map[string]any
	calls     []string
}

func (s *rawStub) GetRaw(ctx context.Context, url string) (any, error) {
	s.calls = append(s.calls, url)
	v, ok := s.responses[url]
	if !ok {
		return nil, &FetchError{URL: url, Kind: KindStatus, StatusCode: http.StatusUnauthorized}
	}
	return v, nil
}

func TestProbeStopsAtFirstSuccess(t *testing.T) {
	urls := []string{"u1", "u2", "u3", "u4"}
	stub := &rawStub{responses: map[string]any{
		"u3": map[string]any{"results": []any{1.0, 2.0}},
		"u4": map[string]any{"ok": true},
	}}

	res := NewProber(stub, nil, nil).Probe(context.Background(), urls)
	if !res.Reachable || res.URL != "u3" {
		t.Fatalf("expected reachable via u3, got %+v", res)
	}
	if len(stub.calls) != 3 {
		t.Fatalf("expected 3 attempts, got %v", stub.calls)
	}
	if len(res.Attempted) != 3 {
		t.Fatalf("expected trace of 3 urls, got %v", res.Attempted)
	}
	if !res.HasItems || res.Items != 2 {
		t.Fatalf("expected 2 items, got %+v", res)
	}
}

func TestProbeEmptyPayloadsDoNotCount(t *testing.T) {
	stub := &rawStub{responses: map[string]any{
		"a": map[string]any{},
		"b": []any{},
		"c": nil,
		"d": "",
	}}

	res := NewProber(stub, nil, nil).Probe(context.Background(), []string{"a", "b", "c", "d"})
	if res.Reachable {
		t.Fatalf("empty payloads must not count as reachable: %+v", res)
	}
	if len(stub.calls) != 4 {
		t.Fatalf("expected every url attempted, got %v", stub.calls)
	}
}

func TestProbeAllFail(t *testing.T) {
	stub := &rawStub{}
	res := NewProber(stub, nil, nil).Probe(context.Background(), []string{"a", "b"})
	if res.Reachable || res.URL != "" {
		t.Fatalf("expected unreachable, got %+v", res)
	}
}

func TestProbePayloadWithoutResults(t *testing.T) {
	stub := &rawStub{responses: map[string]any{"a": []any{"frame"}}}
	res := NewProber(stub, nil, nil).Probe(context.Background(), []string{"a"})
	if !res.Reachable || res.HasItems {
		t.Fatalf("expected reachable without item count, got %+v", res)
	}
}

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, false},
		{map[string]any{}, false},
		{map[string]any{"a": 1.0}, true},
		{[]any{}, false},
		{[]any{nil}, true},
		{"", false},
		{"x", true},
		{0.0, false},
		{1.5, true},
		{false, false},
		{true, true},
	}
	for _, tc := range tests {
		if got := nonEmpty(tc.in); got != tc.want {
			t.Errorf("nonEmpty(%#v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
