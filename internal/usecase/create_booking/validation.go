package create_booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// validateRequest проверяет наличие полей и формат ID поездки
// Порядок важен: сначала отсутствующие поля, затем формат
func validateRequest(req *Request) (uuid.UUID, error) {
	if req == nil {
		return uuid.Nil, ErrMissingFields
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				return uuid.Nil, ErrMissingFields
			}
		}

		fe := fieldErrs[0]
		return uuid.Nil, fmt.Errorf("%w: field %s failed on %s=%s", ErrInvalidInput, fe.Field(), fe.Tag(), fe.Param())
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidRideID, err)
	}

	return rideID, nil
}
