package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"lumiere-booking-cli/model"
)

// ErrMissingContext means the caller reached submission without a show and a
// non-empty seat selection. That is a navigation bug, not a remote failure:
// route the user back to seat selection instead of surfacing it as an error.
var ErrMissingContext = errors.New("booking: show and seat selection required")

// FallbackId stands in for a reservation id the server failed to return.
const FallbackId = "N/A"

// API is the slice of the service client that submission needs.
type API interface {
	CreateReservation(ctx context.Context, req model.ReservationRequest) (model.ReservationResponse, error)
}

// Submitter turns a frozen selection plus validated customer details into a
// confirmed reservation. One Submit call per user-initiated click; callers
// must keep the form locked while a call is outstanding and never retry
// automatically.
type Submitter struct {
	api    API
	logger *zap.Logger
	now    func() time.Time
}

func NewSubmitter(api API, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{api: api, logger: logger, now: time.Now}
}

func (s *Submitter) Submit(ctx context.Context, showId string, seatIds []string, user model.ReservationUser) (model.Reservation, error) {
	if showId == "" || len(seatIds) == 0 {
		return model.Reservation{}, ErrMissingContext
	}

	req := model.ReservationRequest{
		ShowId:  showId,
		SeatIds: seatIds,
		User:    user,
	}
	res, err := s.api.CreateReservation(ctx, req)
	if err != nil {
		s.logger.Warn("reservation submission failed",
			zap.String("show_id", showId),
			zap.Int("seats", len(seatIds)),
			zap.Error(err),
		)
		return model.Reservation{}, err
	}

	reservation := Normalize(res, req, s.now())
	s.logger.Info("reservation confirmed",
		zap.String("reservation_id", reservation.Id),
		zap.String("show_id", reservation.ShowId),
		zap.Int("seats", len(reservation.SeatIds)),
	)
	return reservation, nil
}

// Normalize merges a possibly partial server response with the locally known
// request. Every omitted field falls back: id to a sentinel, createdAt to the
// local submission time, the rest to the submitted values. The seat order of
// the original selection is preserved when the server omits seatIds.
func Normalize(res model.ReservationResponse, req model.ReservationRequest, submittedAt time.Time) model.Reservation {
	reservation := model.Reservation{
		Id:        res.Id,
		ShowId:    res.ShowId,
		SeatIds:   res.SeatIds,
		CreatedAt: res.CreatedAt,
	}
	if reservation.Id == "" {
		reservation.Id = FallbackId
	}
	if reservation.ShowId == "" {
		reservation.ShowId = req.ShowId
	}
	if len(reservation.SeatIds) == 0 {
		reservation.SeatIds = append([]string{}, req.SeatIds...)
	}
	if res.User != nil {
		reservation.User = *res.User
	} else {
		reservation.User = req.User
	}
	if reservation.CreatedAt == "" {
		reservation.CreatedAt = submittedAt.UTC().Format(time.RFC3339)
	}
	return reservation
}
