package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUserWithRide(ctx context.Context, userID uuid.UUID) ([]*domain.BookingWithRide, error)
	ListByRide(ctx context.Context, rideID uuid.UUID) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// RideRepository нужен для проверки, что пользователь владелец поездки
type RideRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
