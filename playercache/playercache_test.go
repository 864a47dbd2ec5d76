package playercache

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/amolgulati/LeagueLegacy/platforms/sleeper"
	"github.com/amolgulati/LeagueLegacy/testutils"
)

func TestLoadAndName(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	cache := New(sleeper.NewForTest(fakeSleeper.URL()), clock.NewMock(), t.TempDir())
	if err := cache.Load(); err != nil {
		t.Fatalf("unexpected error loading cache: %v", err)
	}

	if name := cache.Name("2374"); name != "Tyler Lockett" {
		t.Errorf("expected Tyler Lockett, got %q", name)
	}
	if name := cache.Name("nope"); name != "Player nope" {
		t.Errorf("expected placeholder name, got %q", name)
	}
}

func TestLoad_usesFreshFile(t *testing.T) {
	var calls atomic.Int32
	fakeSleeper := testutils.NewFakeSleeperServer()
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Redirect(w, r, fakeSleeper.URL()+r.URL.Path, http.StatusTemporaryRedirect)
	}))
	defer counting.Close()
	defer fakeSleeper.Close()

	mock := clock.NewMock()
	dir := t.TempDir()

	cache := New(sleeper.NewForTest(counting.URL), mock, dir)
	if err := cache.Load(); err != nil {
		t.Fatalf("unexpected error loading cache: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 fetch, got %d", calls.Load())
	}

	// A second load inside the TTL reads the file instead of sleeper.
	mock.Add(1 * time.Hour)
	cache2 := New(sleeper.NewForTest(counting.URL), mock, dir)
	if err := cache2.Load(); err != nil {
		t.Fatalf("unexpected error loading cache: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected no new fetches, got %d", calls.Load())
	}
	if name := cache2.Name("6904"); name != "Jalen Hurts" {
		t.Errorf("expected Jalen Hurts, got %q", name)
	}

	// Past the TTL the cache goes back to sleeper.
	mock.Add(25 * time.Hour)
	cache3 := New(sleeper.NewForTest(counting.URL), mock, dir)
	if err := cache3.Load(); err != nil {
		t.Fatalf("unexpected error loading cache: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected a refresh fetch, got %d calls", calls.Load())
	}
}

func TestLoad_staleFileFallback(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()

	mock := clock.NewMock()
	dir := t.TempDir()

	cache := New(sleeper.NewForTest(fakeSleeper.URL()), mock, dir)
	if err := cache.Load(); err != nil {
		t.Fatalf("unexpected error loading cache: %v", err)
	}

	// Sleeper going away after the TTL expires leaves the stale data
	// in place rather than failing.
	fakeSleeper.Close()
	mock.Add(48 * time.Hour)

	cache2 := New(sleeper.NewForTest("http://127.0.0.1:1"), mock, dir)
	if err := cache2.Load(); err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if name := cache2.Name("2374"); name != "Tyler Lockett" {
		t.Errorf("expected Tyler Lockett from stale cache, got %q", name)
	}
}
