package ticket

import (
	"bytes"
	"strings"
	"testing"

	"lumiere-booking-cli/model"
)

func testReservation() model.Reservation {
	return model.Reservation{
		Id:        "res-1",
		ShowId:    "show-1",
		SeatIds:   []string{"seat-2", "seat-1"},
		User:      model.ReservationUser{Name: "Jane", Email: "jane@example.com", Nic: "12345"},
		CreatedAt: "2024-06-01T10:00:00Z",
	}
}

func TestBuild(t *testing.T) {
	payload := Build(testReservation())

	if payload.ReservationId != "res-1" || payload.ShowId != "show-1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if len(payload.SeatIds) != 2 || payload.SeatIds[0] != "seat-2" {
		t.Fatalf("unexpected seat ids: %v", payload.SeatIds)
	}
}

func TestBuild_NilSeatIdsEncodeAsEmptyArray(t *testing.T) {
	r := testReservation()
	r.SeatIds = nil

	data, err := Build(r).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"seatIds":[]`) {
		t.Fatalf("expected empty array, got %s", data)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	first, err := Build(testReservation()).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Build(testReservation()).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("encodings differ: %s vs %s", first, second)
	}
}

func TestEncode_ExcludesCustomerIdentity(t *testing.T) {
	data, err := Build(testReservation()).Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := string(data)
	for _, secret := range []string{"Jane", "jane@example.com", "12345"} {
		if strings.Contains(payload, secret) {
			t.Fatalf("payload leaks %q: %s", secret, payload)
		}
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	original := Build(testReservation())
	data, err := original.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.ReservationId != original.ReservationId ||
		decoded.ShowId != original.ShowId ||
		decoded.CreatedAt != original.CreatedAt ||
		len(decoded.SeatIds) != len(original.SeatIds) {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, original)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestQRCodeTerminal(t *testing.T) {
	text, err := Build(testReservation()).QRCodeTerminal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "\n") {
		t.Fatal("expected a multi-line rendering")
	}
}

func TestQRCodePNG(t *testing.T) {
	data, err := Build(testReservation()).QRCodePNG(DefaultQRSize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected PNG bytes")
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatal("expected PNG signature")
	}
}
