package rides

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
)

// RideRepository интерфейс хранилища поездок
type RideRepository interface {
	Create(ctx context.Context, ride *domain.Ride) (*domain.Ride, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Ride, error)
	List(ctx context.Context) ([]*domain.Ride, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Ride, error)
	Search(ctx context.Context, filter domain.RideFilter) ([]*domain.Ride, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.RideUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository нужен, чтобы не удалить поездку с активными бронированиями
type BookingRepository interface {
	CountActiveByRide(ctx context.Context, rideID uuid.UUID) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
