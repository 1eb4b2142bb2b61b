package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RideBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RideBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "Please provide all required fields"
	msgInvalidRideID      = "Invalid ride ID format"
	msgInvalidInput       = "Invalid booking request"
	msgMissingUserID      = "authorization required"
	msgRideNotFound       = "Ride not found"
	msgUserNotFound       = "User not found"
	msgSelfBooking        = "You cannot book your own ride"
	msgDuplicate          = "You have already booked this ride"
	msgRideBusy           = "Ride is being booked by someone else, please retry"
)

type Handler struct {
	useCase      CreateBookingUseCase
	logger       Logger
	exposeErrors bool
}

// NewHandler exposeErrors добавляет текст внутренней ошибки в ответ (не для production)
func NewHandler(useCase CreateBookingUseCase, logger Logger, exposeErrors bool) *Handler {
	return &Handler{
		useCase:      useCase,
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	riderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(riderID))
	if err != nil {
		var capErr *createBooking.CapacityError

		switch {
		case errors.Is(err, createBooking.ErrMissingFields):
			h.logger.Warn("POST /bookings - Missing fields: user_id=%s", riderID)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createBooking.ErrInvalidRideID):
			h.logger.Warn("POST /bookings - Invalid ride ID: ride_id=%q", req.RideID)
			handlers.RespondBadRequest(w, msgInvalidRideID)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrRideNotFound):
			h.logger.Warn("POST /bookings - Ride not found: ride_id=%s", req.RideID)
			handlers.RespondNotFound(w, msgRideNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%s", riderID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.As(err, &capErr):
			h.logger.Warn("POST /bookings - Capacity exceeded: ride_id=%s, requested=%d, available=%d",
				req.RideID, req.Seats.Value, capErr.Available)
			available := capErr.Available
			handlers.RespondErrorBody(w, http.StatusBadRequest, handlers.ErrorResponse{
				Code:      handlers.CodeCapacity,
				Msg:       capErr.Error(),
				Available: &available,
			})

		case errors.Is(err, createBooking.ErrSelfBooking):
			h.logger.Warn("POST /bookings - Self booking: user_id=%s, ride_id=%s", riderID, req.RideID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeSelfBooking, msgSelfBooking)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%s, ride_id=%s", riderID, req.RideID)
			handlers.RespondError(w, http.StatusBadRequest, handlers.CodeDuplicate, msgDuplicate)

		case errors.Is(err, createBooking.ErrRideBusy):
			h.logger.Warn("POST /bookings - Ride busy: ride_id=%s", req.RideID)
			handlers.RespondError(w, http.StatusServiceUnavailable, handlers.CodeRideBusy, msgRideBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, ride_id=%s, error=%v",
				riderID, req.RideID, err)
			handlers.RespondInternalErrorDetail(w, err, h.exposeErrors)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, ride_id=%s",
		result.ID, riderID, result.RideID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
