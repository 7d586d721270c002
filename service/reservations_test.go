package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lumiere-booking-cli/model"
)

func newTestClient(server *httptest.Server, maxAttempts int) *Client {
	client := NewClient(server.Client(), Options{BaseURL: server.URL, MaxAttempts: maxAttempts})
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond
	return client
}

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := newTestClient(server, 3)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := newTestClient(server, 3)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/bad", &out); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestAPIError_UsesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "Seats already reserved"}`))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	_, err := client.CreateReservation(context.Background(), model.ReservationRequest{
		ShowId:  "show-1",
		SeatIds: []string{"seat-1"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "Seats already reserved" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}
}

func TestGetMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "m1", "title": "Dune", "shows": [{"id": "s1", "start_time": "2024-06-01T10:00"}]},
			{"id": "m2", "title": "Heat"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	movies, err := client.GetMovies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Title != "Dune" || len(movies[0].Shows) != 1 {
		t.Fatalf("unexpected movie: %+v", movies[0])
	}
	if movies[0].Shows[0].StartTime != "2024-06-01T10:00" {
		t.Fatalf("unexpected show: %+v", movies[0].Shows[0])
	}
}

func TestGetMovieById_FiltersCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "m1", "title": "Dune"}, {"id": "m2", "title": "Heat"}]`))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	movie, err := client.GetMovieById(context.Background(), "m2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie.Title != "Heat" {
		t.Fatalf("unexpected movie: %+v", movie)
	}

	if _, err := client.GetMovieById(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestGetSeatsByShow_EscapesShowId(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": "seat-1", "label": "A1", "reservationStatus": true}]`))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	seats, err := client.GetSeatsByShow(context.Background(), "show/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/seats/by-show/show%2F1" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if len(seats) != 1 || seats[0].Available() {
		t.Fatalf("unexpected seats: %+v", seats)
	}
}

func TestCreateReservation_SingleAttempt(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server, 3)

	_, err := client.CreateReservation(context.Background(), model.ReservationRequest{
		ShowId:  "show-1",
		SeatIds: []string{"seat-1"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", attempts)
	}
}

func TestCreateReservation_SendsRequestBody(t *testing.T) {
	var got model.ReservationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/reservations" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "res-1"}`))
	}))
	defer server.Close()

	client := newTestClient(server, 1)

	req := model.ReservationRequest{
		ShowId:  "show-1",
		SeatIds: []string{"seat-2", "seat-1"},
		User:    model.ReservationUser{Name: "Jane", Email: "jane@example.com", Nic: "12345"},
	}
	res, err := client.CreateReservation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Id != "res-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if got.ShowId != "show-1" || len(got.SeatIds) != 2 || got.SeatIds[0] != "seat-2" {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if got.User.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", got.User)
	}
}

func TestCreateReservation_RequiresContext(t *testing.T) {
	client := NewClient(nil, Options{})
	if _, err := client.CreateReservation(context.Background(), model.ReservationRequest{}); err == nil {
		t.Fatal("expected error for empty request")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{StatusCode: http.StatusNotFound}) {
		t.Fatal("expected 404 to be not found")
	}
	if IsNotFound(&APIError{StatusCode: http.StatusInternalServerError}) {
		t.Fatal("expected 500 not to be not found")
	}
}
