package get_user_rides

import (
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
)

const msgInvalidUserID = "invalid user ID"

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

// Handle GET /api/v1/users/{userId}/rides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathUUID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{id}/rides - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/{id}/rides - Failed to list rides: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/rides - Retrieved %d rides for user_id=%s", len(result.Rides), userID)
	handlers.RespondList(w, result.Rides, len(result.Rides))
}
