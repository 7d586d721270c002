package seatmap

import (
	"sort"

	"lumiere-booking-cli/model"
)

// Row is one physical row of seats, identified by the leading letter run of
// the seat labels and sorted by the numeric suffix.
type Row struct {
	Label string
	Seats []model.Seat
}

// Rows groups a show's seats into rows sorted alphabetically, with seats
// inside each row sorted by seat number ("A2" before "A10").
func Rows(seats []model.Seat) []Row {
	byRow := map[string][]model.Seat{}
	for _, seat := range seats {
		row := model.SeatRow(seat.Label)
		byRow[row] = append(byRow[row], seat)
	}

	rows := make([]Row, 0, len(byRow))
	for label, rowSeats := range byRow {
		sorted := append([]model.Seat{}, rowSeats...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return model.SeatNumber(sorted[i].Label) < model.SeatNumber(sorted[j].Label)
		})
		rows = append(rows, Row{Label: label, Seats: sorted})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// Sections splits a row into three contiguous blocks for spatial layout only:
// ceil(n/3) seats in the first two, the remainder in the third. The split
// carries no pricing or availability meaning.
func (r Row) Sections() [3][]model.Seat {
	perSection := (len(r.Seats) + 2) / 3
	var sections [3][]model.Seat
	for i := 0; i < 3; i++ {
		start := i * perSection
		if start > len(r.Seats) {
			start = len(r.Seats)
		}
		end := start + perSection
		if i == 2 || end > len(r.Seats) {
			end = len(r.Seats)
		}
		sections[i] = r.Seats[start:end]
	}
	return sections
}

// Selection is the user's in-progress set of chosen seat ids for one show.
// Insertion order is preserved for display and for the submitted seat list.
type Selection struct {
	order []string
	ids   map[string]bool
}

func NewSelection() *Selection {
	return &Selection{ids: map[string]bool{}}
}

// Toggle flips a seat in or out of the selection. Occupied seats cannot be
// added, but an already-selected seat can always be removed, even when its
// status flipped server-side after it was picked. Returns false when the
// toggle was rejected.
func (s *Selection) Toggle(seat model.Seat) bool {
	if s.ids[seat.Id] {
		s.remove(seat.Id)
		return true
	}
	if !seat.Available() {
		return false
	}
	s.ids[seat.Id] = true
	s.order = append(s.order, seat.Id)
	return true
}

func (s *Selection) remove(id string) {
	delete(s.ids, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Ids returns the selected seat ids in the order they were picked.
func (s *Selection) Ids() []string {
	return append([]string{}, s.order...)
}

func (s *Selection) Len() int {
	return len(s.order)
}

func (s *Selection) Clear() {
	s.order = nil
	s.ids = map[string]bool{}
}

// Labels resolves the selected ids against the seat list, in selection order.
// Ids with no matching seat are skipped.
func (s *Selection) Labels(seats []model.Seat) []string {
	byId := make(map[string]string, len(seats))
	for _, seat := range seats {
		byId[seat.Id] = seat.Label
	}
	labels := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if label, ok := byId[id]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}
