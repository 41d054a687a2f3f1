package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func params(t *testing.T, target string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContext_Defaults(t *testing.T) {
	p := params(t, "/")

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := params(t, "/?limit=50&offset=10")

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := params(t, "/?limit=500")

	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestWindow_Clamps(t *testing.T) {
	cases := []struct {
		name       string
		p          Params
		total      int
		start, end int
	}{
		{"full page", Params{Limit: 10, Offset: 0}, 25, 0, 10},
		{"partial tail", Params{Limit: 10, Offset: 20}, 25, 20, 25},
		{"offset past end", Params{Limit: 10, Offset: 40}, 25, 25, 25},
		{"empty list", Params{Limit: 10, Offset: 0}, 0, 0, 0},
	}
	for _, tc := range cases {
		w := tc.p.Window(tc.total)
		if w.Start != tc.start || w.End != tc.end {
			t.Errorf("%s: expected [%d,%d), got [%d,%d)", tc.name, tc.start, tc.end, w.Start, w.End)
		}
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	r := NewResponse([]int{1, 2, 3}, 30, 10, 0)
	if !r.HasMore {
		t.Error("expected HasMore for first page of 30")
	}

	r = NewResponse([]int{1, 2, 3}, 30, 10, 20)
	if r.HasMore {
		t.Error("expected no more pages past offset 20 of 30")
	}
}
