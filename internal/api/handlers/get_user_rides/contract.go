package get_user_rides

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type RideService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) (*models.RideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
