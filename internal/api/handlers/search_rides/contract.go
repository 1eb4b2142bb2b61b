package search_rides

import (
	"context"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type RideService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.RideListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
