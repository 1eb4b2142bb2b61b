package mark_booking_read

import (
	"context"

	"github.com/google/uuid"
)

type BookingService interface {
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
