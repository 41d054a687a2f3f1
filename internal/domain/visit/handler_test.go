package visit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// brokenRepo fails every write, standing in for a store outage.
type brokenRepo struct {
	Repository
}

var errStoreDown = errors.New("connection refused")

func (brokenRepo) Create(ctx context.Context, v *Visit) error { return errStoreDown }
func (brokenRepo) Update(ctx context.Context, v *Visit) error { return errStoreDown }

func postVisit(h *Handler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/patients/p001/visits", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/patients/:pid/visits")
	c.SetParamNames("pid")
	c.SetParamValues("p001")

	if err := h.CreateVisit(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreateVisit_StoreFailureIsServerError(t *testing.T) {
	h := NewHandler(NewService(brokenRepo{}), testComposer(brokenRepo{}))

	rec := postVisit(h, `{"doctorId":"doc1","diagnosis":"Viral fever"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on store failure, got %d", rec.Code)
	}
}

func TestCreateVisit_MalformedBodyIsBadRequest(t *testing.T) {
	h := NewHandler(NewService(brokenRepo{}), testComposer(brokenRepo{}))

	rec := postVisit(h, `{"diagnosis":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 on malformed body, got %d", rec.Code)
	}
}

func TestCreateVisit_Created(t *testing.T) {
	repo := NewMemRepo(0)
	h := NewHandler(NewService(repo), testComposer(repo))

	rec := postVisit(h, `{"doctorId":"doc1","diagnosis":"Viral fever"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	visits, err := repo.ListByPatient(context.Background(), "p001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visits) != 1 || visits[0].Diagnosis != "Viral fever" {
		t.Errorf("expected stored visit, got %+v", visits)
	}
}
