package model

import "strings"

// Seat is a bookable position within a theatre, scoped to one show's
// availability. ReservationStatus true means the seat is taken for that show.
type Seat struct {
	Id                string `json:"id"`
	TheatreId         string `json:"theatre_id"`
	Label             string `json:"label"`
	CreatedAt         string `json:"created_at"`
	ReservationStatus bool   `json:"reservationStatus"`
}

func (s Seat) Available() bool {
	return !s.ReservationStatus
}

// SeatRow returns the leading letter run of a seat label ("AB12" -> "AB").
func SeatRow(label string) string {
	for i := 0; i < len(label); i++ {
		if label[i] < 'A' || (label[i] > 'Z' && label[i] < 'a') || label[i] > 'z' {
			return label[:i]
		}
	}
	return label
}

// SeatNumber returns the numeric suffix of a seat label ("C5" -> 5), or 0 when
// the label carries no number.
func SeatNumber(label string) int {
	digits := strings.TrimLeft(label, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	n := 0
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0
		}
		n = n*10 + int(digits[i]-'0')
	}
	return n
}
