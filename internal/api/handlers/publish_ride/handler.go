package publish_ride

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "authorization required"
	msgInvalidRide        = "invalid ride: check cities, date (YYYY-MM-DD), time (HH:MM), seats and price"
	msgOwnerNotFound      = "user not found"
)

type Handler struct {
	service RideService
	logger  Logger
}

func NewHandler(service RideService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /rides - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.PublishRideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// владелец всегда из токена
	req.UserID = userID

	ride, err := h.service.Publish(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rides.ErrInvalidInput):
			h.logger.Warn("POST /rides - Invalid ride: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRide)

		case errors.Is(err, rides.ErrOwnerNotFound):
			h.logger.Warn("POST /rides - Owner not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgOwnerNotFound)

		default:
			h.logger.Error("POST /rides - Failed to publish ride: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rides - Ride published successfully: ride_id=%s, user_id=%s", ride.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, ride)
}
