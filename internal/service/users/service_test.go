package users

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RideBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubRepo struct {
	user *domain.User
	err  error
}

func (s stubRepo) GetByID(context.Context, uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func (s stubRepo) UpdateProfile(context.Context, uuid.UUID, domain.ProfileUpdate) error {
	return s.err
}

// memUsers применяет правки к одному пользователю в памяти
type memUsers struct {
	user    domain.User
	updates int
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if id != m.user.ID {
		return nil, userRepo.ErrUserNotFound
	}
	u := m.user
	return &u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id uuid.UUID, upd domain.ProfileUpdate) error {
	if id != m.user.ID {
		return userRepo.ErrUserNotFound
	}
	m.updates++
	if upd.Name != nil {
		m.user.Name = *upd.Name
	}
	if upd.Phone != nil {
		m.user.Phone = *upd.Phone
	}
	if upd.Bio != nil {
		m.user.Bio = *upd.Bio
	}
	return nil
}

func TestGetProfile(t *testing.T) {
	id := uuid.New()
	svc := NewService(stubRepo{user: &domain.User{ID: id, Name: "Asha", Rating: 4.8, RideCount: 12}}, nopLogger{})

	p, err := svc.GetProfile(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, 4.8, p.Rating)
	assert.Equal(t, 12, p.RideCount)
}

func TestGetProfileErrors(t *testing.T) {
	_, err := NewService(stubRepo{err: userRepo.ErrUserNotFound}, nopLogger{}).GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = NewService(stubRepo{err: errors.New("conn reset")}, nopLogger{}).GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdateProfile(t *testing.T) {
	id := uuid.New()
	repo := &memUsers{user: domain.User{ID: id, Name: "Asha", Email: "asha@example.com", Phone: "+91 90000 00000"}}
	svc := NewService(repo, nopLogger{})

	p, err := svc.UpdateProfile(context.Background(), id, &UpdateProfileRequest{
		Name: ptr.Ptr("  Asha K "),
		Bio:  ptr.Ptr("Weekend driver"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha K", p.Name)
	assert.Equal(t, "Weekend driver", p.Bio)
	assert.Equal(t, "+91 90000 00000", p.Phone)
	assert.Equal(t, "asha@example.com", p.Email)
}

func TestUpdateProfileEmptyBodyReturnsProfile(t *testing.T) {
	id := uuid.New()
	repo := &memUsers{user: domain.User{ID: id, Name: "Asha"}}

	p, err := NewService(repo, nopLogger{}).UpdateProfile(context.Background(), id, &UpdateProfileRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Name)
	assert.Zero(t, repo.updates)
}

func TestUpdateProfileErrors(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name string
		repo UserRepository
		req  *UpdateProfileRequest
		want error
	}{
		{name: "blank name", repo: &memUsers{user: domain.User{ID: id}}, req: &UpdateProfileRequest{Name: ptr.Ptr("   ")}, want: ErrInvalidInput},
		{name: "phone too long", repo: &memUsers{user: domain.User{ID: id}}, req: &UpdateProfileRequest{Phone: ptr.Ptr("+91 90000 00000 00000 0")}, want: ErrInvalidInput},
		{name: "unknown user", repo: &memUsers{}, req: &UpdateProfileRequest{Bio: ptr.Ptr("hi")}, want: ErrUserNotFound},
		{name: "repository failure", repo: stubRepo{err: errors.New("conn reset")}, req: &UpdateProfileRequest{Bio: ptr.Ptr("hi")}, want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.repo, nopLogger{}).UpdateProfile(context.Background(), id, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
