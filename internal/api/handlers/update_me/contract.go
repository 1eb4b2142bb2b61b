package update_me

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/service/users"
)

type UserService interface {
	UpdateProfile(ctx context.Context, id uuid.UUID, req *users.UpdateProfileRequest) (*users.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
