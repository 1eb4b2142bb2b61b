package get_me

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/service/users"
)

type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*users.ProfileResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
