package get_ride

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type RideService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.RideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
