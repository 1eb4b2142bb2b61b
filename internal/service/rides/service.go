package rides

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	rideRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/ride"
	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
	"github.com/m04kA/SMC-RideBookingService/pkg/types"
)

// Service сервис публикации и поиска поездок
type Service struct {
	rideRepo    RideRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса поездок
func NewService(rideRepo RideRepository, bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		rideRepo:    rideRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Publish публикует поездку от имени аутентифицированного пользователя
func (s *Service) Publish(ctx context.Context, req *models.PublishRideRequest) (*models.RideResponse, error) {
	s.logger.Info("Publish: user=%s, %s -> %s on %s %s",
		req.UserID, req.PickupPoint.City, req.DropoffPoint.City, req.Date, req.Time)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Publish: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	rideTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		s.logger.Warn("Publish: invalid time=%q: %v", req.Time, err)
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}

	ride, err := s.rideRepo.Create(ctx, &domain.Ride{
		UserID:         req.UserID,
		PickupPoint:    models.ToDomainLocation(req.PickupPoint),
		DropoffPoint:   models.ToDomainLocation(req.DropoffPoint),
		Date:           date,
		Time:           rideTime,
		PassengerCount: req.PassengerCount,
		PricePerSeat:   req.PricePerSeat,
		SelectedRoute:  models.ToDomainRoute(req.SelectedRoute),
		Status:         domain.RideStatusActive,
	})
	if err != nil {
		if errors.Is(err, rideRepo.ErrOwnerNotFound) {
			s.logger.Warn("Publish: owner id=%s not found", req.UserID)
			return nil, ErrOwnerNotFound
		}
		s.logger.Error("Publish: repository error: %v", err)
		return nil, fmt.Errorf("%w: Publish - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Publish: ride id=%s published with %d seat(s)", ride.ID, ride.PassengerCount)
	return models.FromDomainRide(ride), nil
}

// GetByID получает поездку по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.RideResponse, error) {
	ride, err := s.getRide(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainRide(ride), nil
}

// List все поездки, новые первыми
func (s *Service) List(ctx context.Context) (*models.RideListResponse, error) {
	rides, err := s.rideRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRideList(rides), nil
}

// ListByUser поездки, опубликованные пользователем
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) (*models.RideListResponse, error) {
	rides, err := s.rideRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainRideList(rides), nil
}

// Search ищет активные поездки по городам, дате, числу мест и цене
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.RideListResponse, error) {
	s.logger.Info("Search: pickup=%q, dropoff=%q, date=%q", req.PickupCity, req.DropoffCity, req.Date)

	filter := domain.RideFilter{
		PickupCity:  strings.TrimSpace(req.PickupCity),
		DropoffCity: strings.TrimSpace(req.DropoffCity),
		MinSeats:    req.PassengerCount,
		MaxPrice:    req.MaxPrice,
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &date
	}
	if filter.MinSeats != nil && *filter.MinSeats < 0 {
		return nil, fmt.Errorf("%w: passengerCount must not be negative", ErrInvalidInput)
	}
	if filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, fmt.Errorf("%w: maxPrice must not be negative", ErrInvalidInput)
	}

	rides, err := s.rideRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d ride(s)", len(rides))
	return models.FromDomainRideList(rides), nil
}

// Update изменяет поездку, доступно только владельцу
// Строка поездки блокируется до коммита, в UPDATE попадают только заданные поля.
// Цена уже созданных бронирований не пересчитывается
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateRideRequest) (*models.RideResponse, error) {
	s.logger.Info("Update: ride id=%s by user=%s", id, req.UserID)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	upd, err := toRideUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid update for ride id=%s: %v", id, err)
		return nil, err
	}

	err = s.inTx(ctx, "Update", id, func(txCtx context.Context) error {
		if _, err := s.getOwnedRide(txCtx, id, req.UserID, "Update"); err != nil {
			return err
		}
		if upd.IsEmpty() {
			return nil
		}

		if err := s.rideRepo.Update(txCtx, id, upd); err != nil {
			if errors.Is(err, rideRepo.ErrRideNotFound) {
				return ErrRideNotFound
			}
			s.logger.Error("Update: repository error for ride id=%s: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет поездку владельца, если на нее нет активных бронирований
// Проверка и удаление идут в одной транзакции под блокировкой строки поездки
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("Delete: ride id=%s by user=%s", id, userID)

	err := s.inTx(ctx, "Delete", id, func(txCtx context.Context) error {
		if _, err := s.getOwnedRide(txCtx, id, userID, "Delete"); err != nil {
			return err
		}

		active, err := s.bookingRepo.CountActiveByRide(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to count bookings of ride id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - count bookings: %v", ErrInternal, err)
		}
		if active > 0 {
			s.logger.Warn("Delete: ride id=%s has %d active booking(s)", id, active)
			return ErrRideHasBookings
		}

		if err := s.rideRepo.Delete(txCtx, id); err != nil {
			switch {
			case errors.Is(err, rideRepo.ErrRideNotFound):
				return ErrRideNotFound
			case errors.Is(err, rideRepo.ErrRideReferenced):
				s.logger.Warn("Delete: ride id=%s is still referenced by bookings", id)
				return ErrRideHasBookings
			}
			s.logger.Error("Delete: repository error for ride id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: ride id=%s deleted", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getRide(ctx context.Context, id uuid.UUID, op string) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rideRepo.ErrRideNotFound) {
			s.logger.Warn("%s: ride id=%s not found", op, id)
			return nil, ErrRideNotFound
		}
		s.logger.Error("%s: repository error for ride id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return ride, nil
}

// getOwnedRide читает поездку с блокировкой строки и проверяет владельца
func (s *Service) getOwnedRide(ctx context.Context, id, userID uuid.UUID, op string) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, rideRepo.ErrRideNotFound) {
			s.logger.Warn("%s: ride id=%s not found", op, id)
			return nil, ErrRideNotFound
		}
		s.logger.Error("%s: repository error for ride id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if !ride.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of ride id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}
	return ride, nil
}

// inTx возвращает ошибки сервиса как есть, сбой самой транзакции становится ErrInternal
func (s *Service) inTx(ctx context.Context, op string, id uuid.UUID, fn func(ctx context.Context) error) error {
	err := s.txManager.Do(ctx, fn)
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrRideNotFound, ErrAccessDenied, ErrRideHasBookings, ErrInternal} {
		if errors.Is(err, known) {
			return err
		}
	}
	s.logger.Error("%s: transaction failed for ride id=%s: %v", op, id, err)
	return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
}

func toRideUpdate(req *models.UpdateRideRequest) (domain.RideUpdate, error) {
	var upd domain.RideUpdate
	if req.PickupPoint != nil {
		loc := models.ToDomainLocation(*req.PickupPoint)
		upd.PickupPoint = &loc
	}
	if req.DropoffPoint != nil {
		loc := models.ToDomainLocation(*req.DropoffPoint)
		upd.DropoffPoint = &loc
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return upd, err
		}
		upd.Date = &date
	}
	if req.Time != nil {
		t, err := types.NewTimeStringFromString(*req.Time)
		if err != nil {
			return upd, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
		}
		upd.Time = &t
	}
	upd.PassengerCount = req.PassengerCount
	upd.PricePerSeat = req.PricePerSeat
	upd.SelectedRoute = models.ToDomainRoute(req.SelectedRoute)
	if req.Status != nil {
		status := domain.RideStatus(*req.Status)
		upd.Status = &status
	}
	return upd, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return date, nil
}
