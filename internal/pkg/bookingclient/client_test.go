package bookingclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/festhub/festival-api/internal/domain/booking"
)

type offlineChecker struct{}

func (offlineChecker) Online(context.Context) bool { return false }

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/submitForm" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSubmitSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusCreated, `{"success":true,"data":{"booking_id":"abc-123"}}`)
	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{})

	st, err := client.Submit(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusSuccess {
		t.Fatalf("status = %s (%s)", st.Status, st.LastError)
	}
	if st.BookingID != "abc-123" {
		t.Fatalf("booking id = %q", st.BookingID)
	}
}

func TestSubmitOfflineSkipsPost(t *testing.T) {
	posted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted = true
	}))
	t.Cleanup(srv.Close)

	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), offlineChecker{}, Options{})

	st, err := client.Submit(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusOffline {
		t.Fatalf("status = %s", st.Status)
	}
	if posted {
		t.Fatal("POST sent while offline")
	}
}

func TestSubmitUnauthorizedClearsToken(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"success":false}`)
	tokens := NewMemoryTokenStore("stale-token")
	client := New(srv.Client(), srv.URL, tokens, nil, Options{})

	st, err := client.Submit(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusFailure {
		t.Fatalf("status = %s", st.Status)
	}
	if tokens.Token() != "" {
		t.Fatal("token not cleared after 401")
	}
}

func TestSubmitFailureSurfacesServerMessage(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"success":false,"error":{"code":"BAD_REQUEST","message":"Each priority must reference a distinct timeslot"}}`)
	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{})

	st, err := client.Submit(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusFailure {
		t.Fatalf("status = %s", st.Status)
	}
	if st.LastError != "Each priority must reference a distinct timeslot" {
		t.Fatalf("last error = %q", st.LastError)
	}
}

func TestSubmitTwiceRejected(t *testing.T) {
	srv := newTestServer(t, http.StatusCreated, `{"success":true,"data":{"booking_id":"abc"}}`)
	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{})

	if _, err := client.Submit(context.Background(), booking.NewDraft()); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Submit(context.Background(), booking.NewDraft()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestRetryAfterFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"booking_id":"second-try"}}`))
	}))
	t.Cleanup(srv.Close)

	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{})

	st, err := client.Submit(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusFailure {
		t.Fatalf("first attempt status = %s", st.Status)
	}

	st, err = client.Retry(context.Background(), booking.NewDraft())
	if err != nil {
		t.Fatal(err)
	}
	if st.Status != StatusSuccess || st.BookingID != "second-try" {
		t.Fatalf("retry status = %s, id = %q", st.Status, st.BookingID)
	}
	if calls.Load() != 2 {
		t.Fatalf("server called %d times", calls.Load())
	}
}

func TestRetryAfterSuccessRejected(t *testing.T) {
	srv := newTestServer(t, http.StatusCreated, `{"success":true,"data":{"booking_id":"abc"}}`)
	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{})

	if _, err := client.Submit(context.Background(), booking.NewDraft()); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Retry(context.Background(), booking.NewDraft()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestInvalidationTimerFiresAfterSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusCreated, `{"success":true,"data":{"booking_id":"abc"}}`)

	invalidated := make(chan struct{})
	client := New(srv.Client(), srv.URL, NewMemoryTokenStore("token"), nil, Options{
		InvalidateAfterSuccess: 10 * time.Millisecond,
		OnInvalidate:           func() { close(invalidated) },
	})

	if _, err := client.Submit(context.Background(), booking.NewDraft()); err != nil {
		t.Fatal(err)
	}

	select {
	case <-invalidated:
	case <-time.After(time.Second):
		t.Fatal("invalidation timer never fired")
	}
}

func TestHealthChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	checker := NewHealthChecker(srv.Client(), srv.URL)
	if !checker.Online(context.Background()) {
		t.Fatal("healthy server reported offline")
	}

	srv.Close()
	if checker.Online(context.Background()) {
		t.Fatal("closed server reported online")
	}
}
