package model

type ReservationUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Nic   string `json:"nic"`
}

type ReservationRequest struct {
	ShowId  string          `json:"showId"`
	SeatIds []string        `json:"seatIds"`
	User    ReservationUser `json:"user"`
}

// ReservationResponse mirrors the wire shape of POST /reservations. The server
// is allowed to omit any field; booking.Normalize fills the gaps from the
// locally known request.
type ReservationResponse struct {
	Id        string           `json:"id"`
	ShowId    string           `json:"showId"`
	SeatIds   []string         `json:"seatIds"`
	User      *ReservationUser `json:"user"`
	CreatedAt string           `json:"createdAt"`
}

// Reservation is the fully populated booking record held after a successful
// submission. Immutable for the rest of the session.
type Reservation struct {
	Id        string
	ShowId    string
	SeatIds   []string
	User      ReservationUser
	CreatedAt string
}
