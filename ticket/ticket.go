package ticket

import (
	"bytes"
	"encoding/json"
	"image/png"

	"github.com/skip2/go-qrcode"

	"lumiere-booking-cli/model"
)

// DefaultQRSize is the pixel edge of the generated square ticket code.
const DefaultQRSize = 256

// Payload is the verification payload embedded in the scannable ticket code:
// the minimal subset of the reservation a scanner needs, deliberately
// excluding the customer's name, email and NIC.
type Payload struct {
	ReservationId string   `json:"reservationId"`
	ShowId        string   `json:"showId"`
	SeatIds       []string `json:"seatIds"`
	CreatedAt     string   `json:"createdAt"`
}

// Build derives the payload from a confirmed reservation. Recomputed on
// demand, never stored separately.
func Build(r model.Reservation) Payload {
	seatIds := r.SeatIds
	if seatIds == nil {
		seatIds = []string{}
	}
	return Payload{
		ReservationId: r.Id,
		ShowId:        r.ShowId,
		SeatIds:       seatIds,
		CreatedAt:     r.CreatedAt,
	}
}

// Encode serializes the payload with stable key order, so repeated builds
// from the same reservation are byte-identical and survive an encode, scan,
// decode round trip.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// Decode parses a scanned payload back into its fields.
func Decode(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// QRCodeTerminal renders the payload as a half-height text QR code suitable
// for direct terminal display.
func (p Payload) QRCodeTerminal() (string, error) {
	content, err := p.Encode()
	if err != nil {
		return "", err
	}
	qr, err := qrcode.New(string(content), qrcode.Medium)
	if err != nil {
		return "", err
	}
	return qr.ToSmallString(false), nil
}

// QRCodePNG renders the payload as a PNG-encoded QR code, size pixels square.
func (p Payload) QRCodePNG(size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	content, err := p.Encode()
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.New(string(content), qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
