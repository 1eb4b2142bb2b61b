package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	"github.com/m04kA/SMC-RideBookingService/internal/integrations/notification"
)

// RideRepository интерфейс хранилища поездок
type RideRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Ride, error)
	DecrementSeats(ctx context.Context, id uuid.UUID, n int) error
}

// UserRepository интерфейс чтения пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	FindActive(ctx context.Context, rideID, userID uuid.UUID) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// RideLocker распределенная блокировка поездки (опционально, может быть nil)
type RideLocker interface {
	WithRideLock(ctx context.Context, rideID string, fn func(ctx context.Context) error) error
}

// Notifier отправляет подтверждение пассажиру
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, msg notification.BookingConfirmation) error
}

// MetricsRecorder учитывает исход бронирования (может быть nil)
type MetricsRecorder interface {
	RecordBooking(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
