package publish_ride

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	mock.Mock
}

func (m *mockService) Publish(ctx context.Context, req *models.PublishRideRequest) (*models.RideResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RideResponse), args.Error(1)
}

const body = `{
	"userId": "00000000-0000-0000-0000-000000000001",
	"pickupPoint": {"name": "Shivajinagar", "city": "Pune"},
	"dropoffPoint": {"name": "Dadar", "city": "Mumbai"},
	"date": "2025-03-14",
	"time": "09:00",
	"passengerCount": 3,
	"pricePerSeat": 450
}`

func serve(svc RideService, userID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rides", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_OwnerFromToken(t *testing.T) {
	userID := uuid.New()
	svc := &mockService{}
	svc.On("Publish", mock.Anything, mock.MatchedBy(func(req *models.PublishRideRequest) bool {
		return req.UserID == userID && req.PickupPoint.City == "Pune" && req.PassengerCount == 3
	})).Return(&models.RideResponse{ID: uuid.New(), UserID: userID}, nil)

	rec := serve(svc, userID)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: rides.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: rides.ErrOwnerNotFound, wantStatus: http.StatusNotFound},
		{err: rides.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("Publish", mock.Anything, mock.Anything).Return(nil, tt.err)

		assert.Equal(t, tt.wantStatus, serve(svc, uuid.New()).Code, tt.err.Error())
	}
}
