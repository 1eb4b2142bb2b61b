package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
	rideRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/ride"
	"github.com/m04kA/SMC-RideBookingService/internal/service/bookings/models"
)

// Service сервис для чтения и сопровождения бронирований
type Service struct {
	bookingRepo BookingRepository
	rideRepo    RideRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	rideRepo RideRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		rideRepo:    rideRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может пассажир или владелец поездки
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		if err := s.checkRideOwner(ctx, booking.RideID, userID, "GetByID"); err != nil {
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetMyBookings возвращает бронирования пассажира со сводкой поездки, новые первыми
func (s *Service) GetMyBookings(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetMyBookings: fetching bookings for user=%s", userID)

	bookings, err := s.bookingRepo.ListByUserWithRide(ctx, userID)
	if err != nil {
		s.logger.Error("GetMyBookings: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMyBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingWithRideList(bookings), nil
}

// GetRideBookings входящие бронирования поездки, доступно только владельцу
func (s *Service) GetRideBookings(ctx context.Context, rideID, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetRideBookings: fetching bookings of ride=%s for user=%s", rideID, userID)

	if err := s.checkRideOwner(ctx, rideID, userID, "GetRideBookings"); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByRide(ctx, rideID)
	if err != nil {
		s.logger.Error("GetRideBookings: repository error for ride=%s: %v", rideID, err)
		return nil, fmt.Errorf("%w: GetRideBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// MarkRead отмечает бронирование прочитанным водителем
func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("MarkRead: booking id=%s by user=%s", id, userID)

	booking, err := s.getBooking(ctx, id, "MarkRead")
	if err != nil {
		return err
	}

	if err := s.checkRideOwner(ctx, booking.RideID, userID, "MarkRead"); err != nil {
		return err
	}

	if err := s.bookingRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkRead: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Complete переводит подтвержденное бронирование в completed
// Доступно только владельцу поездки
func (s *Service) Complete(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("Complete: booking id=%s by user=%s", id, userID)

	booking, err := s.getBooking(ctx, id, "Complete")
	if err != nil {
		return err
	}

	if err := s.checkRideOwner(ctx, booking.RideID, userID, "Complete"); err != nil {
		return err
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%s cannot be completed, status=%s", id, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: booking id=%s completed", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id uuid.UUID, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkRideOwner проверяет, что пользователь опубликовал поездку
func (s *Service) checkRideOwner(ctx context.Context, rideID, userID uuid.UUID, op string) error {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		if errors.Is(err, rideRepo.ErrRideNotFound) {
			s.logger.Warn("%s: ride id=%s not found", op, rideID)
			return ErrRideNotFound
		}
		s.logger.Error("%s: failed to get ride id=%s: %v", op, rideID, err)
		return fmt.Errorf("%w: %s - failed to get ride: %v", ErrInternal, op, err)
	}

	if !ride.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of ride=%s", op, userID, rideID)
		return ErrAccessDenied
	}
	return nil
}
