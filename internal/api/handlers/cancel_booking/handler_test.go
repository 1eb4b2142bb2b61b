package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SMC-RideBookingService/internal/usecase/cancel_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelBooking.Response), args.Error(1)
}

func serve(h *Handler, bookingID string, userID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	bookingID, userID := uuid.New(), uuid.New()
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &cancelBooking.Request{BookingID: bookingID, UserID: userID}).
		Return(&cancelBooking.Response{
			ID:            bookingID,
			RideID:        uuid.New(),
			Status:        "cancelled",
			SeatsRestored: 2,
			CancelledAt:   time.Now(),
		}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), bookingID.String(), userID)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data CancelBookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Data.Status)
	assert.Equal(t, 2, body.Data.SeatsRestored)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: cancelBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantCode: handlers.CodeNotFound},
		{name: "not rider", err: cancelBooking.ErrAccessDenied, wantStatus: http.StatusForbidden, wantCode: handlers.CodeForbidden},
		{name: "already cancelled", err: cancelBooking.ErrCannotCancel, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeCannotCancel},
		{name: "internal", err: cancelBooking.ErrInternal, wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(uc, nopLogger{}), uuid.NewString(), uuid.New())

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	uc := &mockUseCase{}

	rec := serve(NewHandler(uc, nopLogger{}), "42", uuid.New())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
