package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
)

// UseCase отмена бронирования: confirmed/pending -> cancelled
// При restoreSeats места возвращаются поездке в той же транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	rideRepo     RideRepository
	txManager    TransactionManager
	restoreSeats bool
	now          func() time.Time
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rideRepo RideRepository,
	txManager TransactionManager,
	restoreSeats bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		rideRepo:     rideRepo,
		txManager:    txManager,
		restoreSeats: restoreSeats,
		now:          time.Now,
		logger:       logger,
	}
}

// Execute выполняет отмену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.BookingID == uuid.Nil || req.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID and userID are required", ErrInvalidInput)
	}

	uc.logger.Info("CancelBooking: booking=%s, user=%s", req.BookingID, req.UserID)

	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Отменить может только сам пассажир
		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: user=%s is not the rider of booking id=%s", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%s has status=%s", req.BookingID, booking.Status)
			return ErrCannotCancel
		}

		// 3. Статус cancelled
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 4. Возврат мест
		restored := 0
		if uc.restoreSeats {
			if err := uc.rideRepo.IncrementSeats(txCtx, booking.RideID, booking.Seats); err != nil {
				uc.logger.Error("CancelBooking: failed to restore %d seat(s) of ride id=%s: %v",
					booking.Seats, booking.RideID, err)
				return fmt.Errorf("%w: failed to restore seats: %v", ErrInternal, err)
			}
			restored = booking.Seats
		}

		resp = &Response{
			ID:            booking.ID,
			RideID:        booking.RideID,
			Status:        string(domain.StatusCancelled),
			SeatsRestored: restored,
			CancelledAt:   uc.now(),
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrCannotCancel), errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("CancelBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: booking id=%s cancelled, %d seat(s) returned to ride id=%s",
		resp.ID, resp.SeatsRestored, resp.RideID)
	return resp, nil
}
