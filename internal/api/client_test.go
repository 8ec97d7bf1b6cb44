package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jlindgren/wayfarer/internal/domain"
)

func TestLoginSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"token":"abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Login(context.Background(), "a@b.se", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("Expected no Authorization header before login, got %q", gotAuth)
	}
	if result.Token != "abc123" {
		t.Errorf("Expected token abc123, got %q", result.Token)
	}
}

func TestBearerHeaderAttachedAfterSetToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	client.SetToken("abc123")

	if _, err := client.Trips(context.Background()); err != nil {
		t.Fatalf("Trips failed: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Expected Bearer abc123, got %q", gotAuth)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	if _, err := client.Trips(context.Background()); err != nil {
		t.Fatalf("Trips failed: %v", err)
	}
	if gotID == "" {
		t.Error("Expected X-Request-ID header to be set")
	}
}

func TestUnauthorizedFiresHookAndClearsCredential(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	client.SetToken("expired")

	hookCalls := 0
	client.OnUnauthorized(func() {
		hookCalls++
		client.ClearToken()
	})

	_, err := client.Trips(context.Background())
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("Expected ErrAuthRequired, got %v", err)
	}
	if hookCalls != 1 {
		t.Errorf("Expected hook fired once, got %d", hookCalls)
	}

	// Next call carries no credential and succeeds.
	if _, err := client.Trips(context.Background()); err != nil {
		t.Fatalf("Expected second call to succeed without credential: %v", err)
	}
	if requests != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
}

func TestLoginValidatesBeforeNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)

	_, err := client.Login(context.Background(), "", "hunter2")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}

	_, err = client.Signup(context.Background(), "Jo", "a@b.se", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}

	if requests != 0 {
		t.Errorf("Expected no network calls, got %d", requests)
	}
}

func TestServerErrorSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"already saved"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	err := client.SaveTrip(context.Background(), "trip-7")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusConflict {
		t.Errorf("Expected code 409, got %d", statusErr.Code)
	}
	if statusErr.Message != "already saved" {
		t.Errorf("Expected server message, got %q", statusErr.Message)
	}
}

func TestUnreachableHostIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Trips(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("Expected ErrNetwork, got %v", err)
	}
}

func TestTimeoutIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Trips(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("Expected ErrNetwork on timeout, got %v", err)
	}
}

func TestMalformedResponseIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Trips(context.Background())
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("Expected ErrNetwork on malformed body, got %v", err)
	}
}

func TestSavedTripsFallsBackToMyTrips(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/saved-trips" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[{"id":"trip-7","name":"Fjords","location":"Norway"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	trips, err := client.SavedTrips(context.Background())
	if err != nil {
		t.Fatalf("SavedTrips failed: %v", err)
	}

	if len(paths) != 2 || paths[0] != "/api/saved-trips" || paths[1] != "/api/my-trips" {
		t.Errorf("Expected primary-then-fallback, got %v", paths)
	}
	if len(trips) != 1 || trips[0].ID != "trip-7" {
		t.Errorf("Expected trip-7 from fallback, got %+v", trips)
	}
}

func TestSavedTripsDoesNotFallBackOnAuthFailure(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.SavedTrips(context.Background())
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("Expected ErrAuthRequired, got %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("Expected no fallback after auth failure, got %v", paths)
	}
}

func TestTripRecordIdentifiers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":42,"name":"A"},{"id":"trip-7","name":"B"},{"_id":"66f0a","name":"C"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	trips, err := client.Trips(context.Background())
	if err != nil {
		t.Fatalf("Trips failed: %v", err)
	}

	want := []string{"42", "trip-7", "66f0a"}
	if len(trips) != len(want) {
		t.Fatalf("Expected %d trips, got %d", len(want), len(trips))
	}
	for i, id := range want {
		if trips[i].ID != id {
			t.Errorf("Trip %d: expected id %q, got %q", i, id, trips[i].ID)
		}
	}
}

func TestSignupWithoutTokenIsRegisteredOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"account created"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	result, err := client.Signup(context.Background(), "Jo", "a@b.se", "hunter2")
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if !result.Success {
		t.Error("Expected success")
	}
	if result.Token != "" {
		t.Errorf("Expected no token, got %q", result.Token)
	}
}
