package seatmap

import (
	"testing"

	"lumiere-booking-cli/model"
)

func TestRows_SortsRowsAndSeats(t *testing.T) {
	seats := []model.Seat{
		{Id: "1", Label: "B1"},
		{Id: "2", Label: "A10"},
		{Id: "3", Label: "A2"},
	}

	rows := Rows(seats)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Label != "A" || rows[1].Label != "B" {
		t.Fatalf("rows not sorted: %+v", rows)
	}
	// Numeric ordering, not lexicographic: A2 before A10.
	if rows[0].Seats[0].Label != "A2" || rows[0].Seats[1].Label != "A10" {
		t.Fatalf("seats not sorted numerically: %+v", rows[0].Seats)
	}
}

func TestSections_SplitsCeilOverThree(t *testing.T) {
	row := Row{Seats: make([]model.Seat, 8)}

	sections := row.Sections()
	if len(sections[0]) != 3 || len(sections[1]) != 3 || len(sections[2]) != 2 {
		t.Fatalf("unexpected split: %d/%d/%d",
			len(sections[0]), len(sections[1]), len(sections[2]))
	}

	small := Row{Seats: make([]model.Seat, 2)}
	sections = small.Sections()
	if len(sections[0]) != 1 || len(sections[1]) != 1 || len(sections[2]) != 0 {
		t.Fatalf("unexpected split: %d/%d/%d",
			len(sections[0]), len(sections[1]), len(sections[2]))
	}
}

func TestSelection_TogglePreservesOrder(t *testing.T) {
	s := NewSelection()

	if !s.Toggle(model.Seat{Id: "c5", Label: "C5"}) {
		t.Fatal("expected toggle to succeed")
	}
	if !s.Toggle(model.Seat{Id: "a1", Label: "A1"}) {
		t.Fatal("expected toggle to succeed")
	}

	ids := s.Ids()
	if len(ids) != 2 || ids[0] != "c5" || ids[1] != "a1" {
		t.Fatalf("expected insertion order, got %v", ids)
	}
}

func TestSelection_ToggleTwiceRemoves(t *testing.T) {
	s := NewSelection()
	seat := model.Seat{Id: "a1", Label: "A1"}

	s.Toggle(seat)
	s.Toggle(seat)

	if s.Len() != 0 || s.Has("a1") {
		t.Fatalf("expected empty selection, got %v", s.Ids())
	}
}

func TestSelection_RejectsOccupiedSeat(t *testing.T) {
	s := NewSelection()

	if s.Toggle(model.Seat{Id: "a1", Label: "A1", ReservationStatus: true}) {
		t.Fatal("expected occupied seat to be rejected")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty selection, got %v", s.Ids())
	}
}

func TestSelection_RemovesSeatTakenAfterPick(t *testing.T) {
	s := NewSelection()
	s.Toggle(model.Seat{Id: "a1", Label: "A1"})

	// The seat flipped to occupied server-side after it was picked. It must
	// still be removable.
	if !s.Toggle(model.Seat{Id: "a1", Label: "A1", ReservationStatus: true}) {
		t.Fatal("expected removal of a selected seat to succeed")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty selection, got %v", s.Ids())
	}
}

func TestSelection_Labels(t *testing.T) {
	seats := []model.Seat{
		{Id: "1", Label: "A1"},
		{Id: "2", Label: "A2"},
	}

	s := NewSelection()
	s.Toggle(seats[1])
	s.Toggle(seats[0])

	labels := s.Labels(seats)
	if len(labels) != 2 || labels[0] != "A2" || labels[1] != "A1" {
		t.Fatalf("unexpected labels: %v", labels)
	}
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle(model.Seat{Id: "a1", Label: "A1"})
	s.Clear()

	if s.Len() != 0 || s.Has("a1") {
		t.Fatal("expected cleared selection")
	}
	if !s.Toggle(model.Seat{Id: "a1", Label: "A1"}) {
		t.Fatal("expected toggle after clear to succeed")
	}
}
