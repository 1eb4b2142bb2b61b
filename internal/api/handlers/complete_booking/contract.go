package complete_booking

import (
	"context"

	"github.com/google/uuid"
)

type BookingService interface {
	Complete(ctx context.Context, id, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
