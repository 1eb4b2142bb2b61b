package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
	rideRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/ride"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookings) ListByUserWithRide(ctx context.Context, userID uuid.UUID) ([]*domain.BookingWithRide, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BookingWithRide), args.Error(1)
}

func (m *mockBookings) ListByRide(ctx context.Context, rideID uuid.UUID) ([]*domain.Booking, error) {
	args := m.Called(ctx, rideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookings) MarkRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockRides struct {
	mock.Mock
}

func (m *mockRides) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ride), args.Error(1)
}

var (
	bookingID = uuid.MustParse("9b2f4c6e-1a3d-4e5f-8a7b-0c1d2e3f4a5b")
	rideID    = uuid.MustParse("6f1c2b1e-8d3a-4f55-9a52-1b2c3d4e5f60")
	riderID   = uuid.MustParse("3c4d5e6f-7a8b-4c9d-8e0f-a1b2c3d4e5f6")
	ownerID   = uuid.MustParse("0a7e6f3c-2b1d-4c8e-9f00-112233445566")
)

func sampleBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         bookingID,
		RideID:     rideID,
		UserID:     riderID,
		Seats:      2,
		TotalPrice: 900,
		Status:     status,
		Contact:    domain.ContactInfo{Name: "Asha", Email: "asha@example.com"},
	}
}

func sampleRide() *domain.Ride {
	return &domain.Ride{ID: rideID, UserID: ownerID, Time: "09:00"}
}

func newService() (*Service, *mockBookings, *mockRides) {
	b, r := &mockBookings{}, &mockRides{}
	return NewService(b, r, nopLogger{}), b, r
}

func TestGetByID_Rider(t *testing.T) {
	svc, b, r := newService()
	b.On("GetByID", mock.Anything, bookingID).Return(sampleBooking(domain.StatusConfirmed), nil)

	resp, err := svc.GetByID(context.Background(), bookingID, riderID)

	require.NoError(t, err)
	assert.Equal(t, int64(900), resp.TotalPrice)
	assert.Equal(t, "Asha", resp.ContactInfo.Name)
	r.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetByID_RideOwnerAndStranger(t *testing.T) {
	svc, b, r := newService()
	b.On("GetByID", mock.Anything, bookingID).Return(sampleBooking(domain.StatusConfirmed), nil)
	r.On("GetByID", mock.Anything, rideID).Return(sampleRide(), nil)

	_, err := svc.GetByID(context.Background(), bookingID, ownerID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), bookingID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, b, _ := newService()
	b.On("GetByID", mock.Anything, bookingID).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.GetByID(context.Background(), bookingID, riderID)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetMyBookings(t *testing.T) {
	svc, b, _ := newService()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	list := []*domain.BookingWithRide{{
		Booking: *sampleBooking(domain.StatusConfirmed),
		Ride: domain.RideSummary{
			ID:           rideID,
			PickupPoint:  domain.Location{City: "Pune"},
			DropoffPoint: domain.Location{City: "Mumbai"},
			Date:         day,
			Time:         "09:00",
			PricePerSeat: 450,
		},
	}}
	b.On("ListByUserWithRide", mock.Anything, riderID).Return(list, nil)

	resp, err := svc.GetMyBookings(context.Background(), riderID)

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, resp.Bookings[0].Ride)
	assert.Equal(t, "2025-03-14", resp.Bookings[0].Ride.Date)
	assert.Equal(t, "09:00", resp.Bookings[0].Ride.Time)
	assert.Equal(t, "Mumbai", resp.Bookings[0].Ride.DropoffPoint.City)
}

func TestGetMyBookings_EmptyIsNotNil(t *testing.T) {
	svc, b, _ := newService()
	b.On("ListByUserWithRide", mock.Anything, riderID).Return([]*domain.BookingWithRide{}, nil)

	resp, err := svc.GetMyBookings(context.Background(), riderID)

	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestGetMyBookings_RepositoryError(t *testing.T) {
	svc, b, _ := newService()
	b.On("ListByUserWithRide", mock.Anything, riderID).Return(nil, errors.New("conn reset"))

	_, err := svc.GetMyBookings(context.Background(), riderID)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetRideBookings(t *testing.T) {
	svc, b, r := newService()
	r.On("GetByID", mock.Anything, rideID).Return(sampleRide(), nil)
	b.On("ListByRide", mock.Anything, rideID).Return([]*domain.Booking{sampleBooking(domain.StatusConfirmed)}, nil)

	resp, err := svc.GetRideBookings(context.Background(), rideID, ownerID)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetRideBookings(context.Background(), rideID, riderID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetRideBookings_RideNotFound(t *testing.T) {
	svc, _, r := newService()
	r.On("GetByID", mock.Anything, rideID).Return(nil, rideRepo.ErrRideNotFound)

	_, err := svc.GetRideBookings(context.Background(), rideID, ownerID)

	assert.ErrorIs(t, err, ErrRideNotFound)
}

func TestMarkRead(t *testing.T) {
	svc, b, r := newService()
	b.On("GetByID", mock.Anything, bookingID).Return(sampleBooking(domain.StatusConfirmed), nil)
	r.On("GetByID", mock.Anything, rideID).Return(sampleRide(), nil)
	b.On("MarkRead", mock.Anything, bookingID).Return(nil)

	require.NoError(t, svc.MarkRead(context.Background(), bookingID, ownerID))
	assert.ErrorIs(t, svc.MarkRead(context.Background(), bookingID, riderID), ErrAccessDenied)
	b.AssertNumberOfCalls(t, "MarkRead", 1)
}

func TestComplete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		svc, b, r := newService()
		b.On("GetByID", mock.Anything, bookingID).Return(sampleBooking(domain.StatusConfirmed), nil)
		r.On("GetByID", mock.Anything, rideID).Return(sampleRide(), nil)
		b.On("UpdateStatus", mock.Anything, bookingID, domain.StatusCompleted).Return(nil)

		require.NoError(t, svc.Complete(context.Background(), bookingID, ownerID))
		b.AssertExpectations(t)
	})

	t.Run("cancelled", func(t *testing.T) {
		svc, b, r := newService()
		b.On("GetByID", mock.Anything, bookingID).Return(sampleBooking(domain.StatusCancelled), nil)
		r.On("GetByID", mock.Anything, rideID).Return(sampleRide(), nil)

		assert.ErrorIs(t, svc.Complete(context.Background(), bookingID, ownerID), ErrCannotComplete)
		b.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
