package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// roundTrip records a view and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, store *RecentStore, req *http.Request, slug string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := store.RecordView(rec, req, slug); err != nil {
		t.Fatalf("RecordView failed: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestRecentStore_RecordAndRead(t *testing.T) {
	store := NewRecentStore("test-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = roundTrip(t, store, req, "ala-moana-towers")
	req = roundTrip(t, store, req, "diamond-head-vista")

	recent := store.Recent(req)
	if len(recent) != 2 {
		t.Fatalf("expected 2 slugs, got %v", recent)
	}
	if recent[0] != "diamond-head-vista" || recent[1] != "ala-moana-towers" {
		t.Errorf("expected most recent first, got %v", recent)
	}
}

func TestRecentStore_DeduplicatesAndCaps(t *testing.T) {
	store := NewRecentStore("test-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	slugs := []string{"a", "b", "c", "d", "e", "f", "b"}
	for _, s := range slugs {
		req = roundTrip(t, store, req, s)
	}

	recent := store.Recent(req)
	if len(recent) != recentLimit {
		t.Fatalf("expected %d slugs, got %v", recentLimit, recent)
	}
	if recent[0] != "b" {
		t.Errorf("revisited slug must move to front, got %v", recent)
	}
	for i, s := range recent {
		for j := i + 1; j < len(recent); j++ {
			if recent[j] == s {
				t.Errorf("duplicate slug %q in %v", s, recent)
			}
		}
	}
}

func TestRecentStore_MissingCookie(t *testing.T) {
	store := NewRecentStore("test-secret", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if got := store.Recent(req); len(got) != 0 {
		t.Errorf("expected empty list without a cookie, got %v", got)
	}
}
