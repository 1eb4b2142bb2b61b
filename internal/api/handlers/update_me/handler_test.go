package update_me

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/users"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateProfile(ctx context.Context, id uuid.UUID, req *users.UpdateProfileRequest) (*users.ProfileResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.ProfileResponse), args.Error(1)
}

func serve(svc UserService, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/me", strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_UpdatesOwnProfile(t *testing.T) {
	userID := uuid.New()
	svc := &mockService{}
	svc.On("UpdateProfile", mock.Anything, userID, mock.MatchedBy(func(req *users.UpdateProfileRequest) bool {
		return req.Name != nil && *req.Name == "Asha K" && req.Phone == nil && req.Bio != nil && *req.Bio == "Weekend driver"
	})).Return(&users.ProfileResponse{ID: userID, Name: "Asha K", Bio: "Weekend driver"}, nil)

	rec := serve(svc, userID, `{"name": "Asha K", "bio": "Weekend driver"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                  `json:"success"`
		Data    users.ProfileResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Asha K", body.Data.Name)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid", err: users.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeInvalidRequest},
		{name: "not found", err: users.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: handlers.CodeNotFound},
		{name: "internal", err: users.ErrInternal, wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(svc, uuid.New(), `{"bio": "hi"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	svc := &mockService{}

	rec := serve(svc, uuid.New(), `{"name": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_Unauthorized(t *testing.T) {
	svc := &mockService{}

	rec := serve(svc, uuid.Nil, `{"bio": "hi"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}
