package list_rides

import (
	"context"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type RideService interface {
	List(ctx context.Context) (*models.RideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
