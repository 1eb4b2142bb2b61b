package publish_ride

import (
	"context"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type RideService interface {
	Publish(ctx context.Context, req *models.PublishRideRequest) (*models.RideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
