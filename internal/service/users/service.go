package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/user"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input data")
	ErrInternal     = errors.New("service: internal error")
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ProfileResponse публичный профиль пользователя
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Rating    float64   `json:"rating"`
	RideCount int       `json:"rideCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateProfileRequest правка собственного профиля
// Email не меняется: он служит логином
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}

// Service профили пользователей
type Service struct {
	userRepo UserRepository
	validate *validator.Validate
	logger   Logger
}

func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{userRepo: userRepo, validate: validator.New(), logger: logger}
}

// GetProfile возвращает профиль по ID
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetProfile: user id=%s not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetProfile: repository error for user id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	return &ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Bio:       user.Bio,
		Rating:    user.Rating,
		RideCount: user.RideCount,
		CreatedAt: user.CreatedAt,
	}, nil
}

// UpdateProfile меняет имя, телефон и описание; незаданные поля остаются прежними
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("UpdateProfile: validation failed for user id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	upd := domain.ProfileUpdate{Name: trimmed(req.Name), Phone: trimmed(req.Phone), Bio: trimmed(req.Bio)}
	if upd.Name != nil && *upd.Name == "" {
		s.logger.Warn("UpdateProfile: empty name for user id=%s", id)
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}

	if !upd.IsEmpty() {
		if err := s.userRepo.UpdateProfile(ctx, id, upd); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				s.logger.Warn("UpdateProfile: user id=%s not found", id)
				return nil, ErrUserNotFound
			}
			s.logger.Error("UpdateProfile: repository error for user id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("UpdateProfile: user id=%s updated", id)
	}

	return s.GetProfile(ctx, id)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
