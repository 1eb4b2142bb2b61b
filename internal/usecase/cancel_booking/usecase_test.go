package cancel_booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookings) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRides struct {
	mock.Mock
}

func (m *mockRides) IncrementSeats(ctx context.Context, id uuid.UUID, n int) error {
	return m.Called(ctx, id, n).Error(0)
}

type passTx struct {
	calls int
}

func (p *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

var (
	bookingID = uuid.MustParse("9b2f4c6e-1a3d-4e5f-8a7b-0c1d2e3f4a5b")
	rideID    = uuid.MustParse("6f1c2b1e-8d3a-4f55-9a52-1b2c3d4e5f60")
	riderID   = uuid.MustParse("3c4d5e6f-7a8b-4c9d-8e0f-a1b2c3d4e5f6")
)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{ID: bookingID, RideID: rideID, UserID: riderID, Seats: 2, Status: domain.StatusConfirmed}
}

func TestExecute_RestoresSeats(t *testing.T) {
	bookings, rides, tx := &mockBookings{}, &mockRides{}, &passTx{}
	bookings.On("GetByIDForUpdate", mock.Anything, bookingID).Return(confirmedBooking(), nil)
	bookings.On("Cancel", mock.Anything, bookingID).Return(nil)
	rides.On("IncrementSeats", mock.Anything, rideID, 2).Return(nil)

	uc := NewUseCase(bookings, rides, tx, true, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{BookingID: bookingID, UserID: riderID})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, 2, resp.SeatsRestored)
	assert.Equal(t, 1, tx.calls)
	bookings.AssertExpectations(t)
	rides.AssertExpectations(t)
}

func TestExecute_KeepsSeatsWhenRestoreDisabled(t *testing.T) {
	bookings, rides := &mockBookings{}, &mockRides{}
	bookings.On("GetByIDForUpdate", mock.Anything, bookingID).Return(confirmedBooking(), nil)
	bookings.On("Cancel", mock.Anything, bookingID).Return(nil)

	uc := NewUseCase(bookings, rides, &passTx{}, false, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{BookingID: bookingID, UserID: riderID})

	require.NoError(t, err)
	assert.Zero(t, resp.SeatsRestored)
	rides.AssertNotCalled(t, "IncrementSeats", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	cancelled := confirmedBooking()
	cancelled.Status = domain.StatusCancelled

	tests := []struct {
		name    string
		userID  uuid.UUID
		booking *domain.Booking
		getErr  error
		want    error
	}{
		{name: "not found", userID: riderID, getErr: bookingRepo.ErrBookingNotFound, want: ErrBookingNotFound},
		{name: "repository failure", userID: riderID, getErr: errors.New("conn reset"), want: ErrInternal},
		{name: "someone else", userID: uuid.New(), booking: confirmedBooking(), want: ErrAccessDenied},
		{name: "already cancelled", userID: riderID, booking: cancelled, want: ErrCannotCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings, rides := &mockBookings{}, &mockRides{}
			if tt.getErr != nil {
				bookings.On("GetByIDForUpdate", mock.Anything, bookingID).Return(nil, tt.getErr)
			} else {
				bookings.On("GetByIDForUpdate", mock.Anything, bookingID).Return(tt.booking, nil)
			}

			uc := NewUseCase(bookings, rides, &passTx{}, true, nopLogger{})
			_, err := uc.Execute(context.Background(), &Request{BookingID: bookingID, UserID: tt.userID})

			assert.ErrorIs(t, err, tt.want)
			bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
			rides.AssertNotCalled(t, "IncrementSeats", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_CancelRaceLost(t *testing.T) {
	bookings := &mockBookings{}
	bookings.On("GetByIDForUpdate", mock.Anything, bookingID).Return(confirmedBooking(), nil)
	bookings.On("Cancel", mock.Anything, bookingID).Return(bookingRepo.ErrCannotCancel)

	uc := NewUseCase(bookings, &mockRides{}, &passTx{}, true, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: bookingID, UserID: riderID})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&mockBookings{}, &mockRides{}, &passTx{}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: riderID})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
