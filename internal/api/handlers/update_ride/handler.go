package update_ride

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

const (
	msgInvalidRideID      = "invalid ride ID"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "authorization required"
	msgInvalidUpdate      = "invalid ride update"
	msgNotFound           = "ride not found"
	msgForbidden          = "only the ride owner can update it"
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

// Handle PUT /api/v1/rides/{rideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rideID, err := handlers.PathUUID(r, "rideId")
	if err != nil {
		h.logger.Warn("PUT /rides/{id} - Invalid ride ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRideID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /rides/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateRideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rides/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	ride, err := h.service.Update(r.Context(), rideID, &req)
	if err != nil {
		switch {
		case errors.Is(err, rides.ErrInvalidInput):
			h.logger.Warn("PUT /rides/{id} - Invalid update: ride_id=%s, error=%v", rideID, err)
			handlers.RespondBadRequest(w, msgInvalidUpdate)

		case errors.Is(err, rides.ErrRideNotFound):
			h.logger.Warn("PUT /rides/{id} - Ride not found: ride_id=%s", rideID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rides.ErrAccessDenied):
			h.logger.Warn("PUT /rides/{id} - Access denied: ride_id=%s, user_id=%s", rideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /rides/{id} - Failed to update ride: ride_id=%s, error=%v", rideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /rides/{id} - Ride updated successfully: ride_id=%s", rideID)
	handlers.RespondJSON(w, http.StatusOK, ride)
}
