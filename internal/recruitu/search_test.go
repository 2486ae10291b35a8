package recruitu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, -1, zap.NewNop())
	return client, server
}

func TestSearchIDsPageSendsBothPageParams(t *testing.T) {
	var query url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	params := &SearchParams{Sector: "FINANCE", Title: "Analyst", CurrentCompany: "Acme"}
	if _, err := client.SearchIDsPage(context.Background(), params, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if query.Get("page_num") != "3" || query.Get("page") != "3" {
		t.Fatalf("expected both page params set to 3, got page_num=%q page=%q", query.Get("page_num"), query.Get("page"))
	}

	if query.Get("sector") != "FINANCE" || query.Get("title") != "Analyst" {
		t.Fatalf("base params missing: %v", query)
	}

	if query.Get("current_company") != "Acme" {
		t.Fatalf("expected current_company=Acme, got %q", query.Get("current_company"))
	}

	if query.Has("previous_company") {
		t.Fatalf("previous_company must not be sent alongside current_company")
	}

	if query.Has("undergraduate_year") {
		t.Fatalf("zero undergraduate year must be omitted, got %q", query.Get("undergraduate_year"))
	}
}

func TestSearchIDsPageBareArrayShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id": "a"}, {"id": "b"}, {"name": "no id"}, "junk"]`))
	})

	page, err := client.SearchIDsPage(context.Background(), &SearchParams{Title: "Analyst"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.IDs) != 2 || page.IDs[0] != "a" || page.IDs[1] != "b" {
		t.Fatalf("unexpected ids: %v", page.IDs)
	}

	if page.TotalPages != 0 {
		t.Fatalf("bare array declares no page count, got %d", page.TotalPages)
	}
}

func TestSearchIDsPageWrappedShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": [{"id": "x"}], "num_pages": 7}`))
	})

	page, err := client.SearchIDsPage(context.Background(), &SearchParams{Title: "Analyst"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.IDs) != 1 || page.IDs[0] != "x" {
		t.Fatalf("unexpected ids: %v", page.IDs)
	}

	if page.TotalPages != 7 {
		t.Fatalf("expected 7 declared pages, got %d", page.TotalPages)
	}
}

func TestSearchIDsPageMalformedBodyIsEmptyNotError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": not-json`))
	})

	page, err := client.SearchIDsPage(context.Background(), &SearchParams{Title: "Analyst"}, 1)
	if err != nil {
		t.Fatalf("malformed body must not be an error, got: %v", err)
	}

	if len(page.IDs) != 0 {
		t.Fatalf("expected no usable ids, got %v", page.IDs)
	}
}

func TestSearchIDsPageBadStatusIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.SearchIDsPage(context.Background(), &SearchParams{Title: "Analyst"}, 1); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestBuildParamsSkipsEmptyAndZero(t *testing.T) {
	q := buildParams(&SearchParams{
		Sector:            "CONSULTING",
		Title:             "Consultant",
		UndergraduateYear: 2026,
		PreviousCompany:   "Beta",
	})

	expected := url.Values{
		"sector":             {"CONSULTING"},
		"title":              {"Consultant"},
		"undergraduate_year": {"2026"},
		"previous_company":   {"Beta"},
	}

	if q.Encode() != expected.Encode() {
		t.Fatalf("unexpected query: %s", q.Encode())
	}
}
