package delete_ride

import (
	"context"

	"github.com/google/uuid"
)

type RideService interface {
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
