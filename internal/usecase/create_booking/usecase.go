package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
	rideRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/ride"
	userRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RideBookingService/internal/integrations/notification"
	"github.com/m04kA/SMC-RideBookingService/pkg/ridelock"
)

// Исходы бронирования для метрик
const (
	ResultCreated     = "created"
	ResultInvalid     = "invalid"
	ResultNotFound    = "not_found"
	ResultCapacity    = "capacity_exceeded"
	ResultSelfBooking = "self_booking"
	ResultDuplicate   = "duplicate"
	ResultBusy        = "busy"
	ResultInternal    = "internal"
)

const defaultNotifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования поездки
type UseCase struct {
	rideRepo      RideRepository
	userRepo      UserRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	locker        RideLocker
	notifier      Notifier
	metrics       MetricsRecorder
	notifyTimeout time.Duration
	logger        Logger
}

// Option опциональная зависимость use case
type Option func(uc *UseCase)

// WithRideLocker включает распределенную блокировку поездки поверх транзакции
func WithRideLocker(locker RideLocker) Option {
	return func(uc *UseCase) { uc.locker = locker }
}

// WithMetrics включает учет исходов бронирования
func WithMetrics(metrics MetricsRecorder) Option {
	return func(uc *UseCase) { uc.metrics = metrics }
}

// WithNotifyTimeout задает таймаут отправки уведомления
func WithNotifyTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) {
		if timeout > 0 {
			uc.notifyTimeout = timeout
		}
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	rideRepo RideRepository,
	userRepo UserRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		rideRepo:      rideRepo,
		userRepo:      userRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		notifier:      notifier,
		notifyTimeout: defaultNotifyTimeout,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// bookingResult то, что транзакция отдает наружу после коммита
type bookingResult struct {
	booking *domain.Booking
	ride    *domain.Ride
	rider   *domain.User
}

// Execute выполняет use case создания бронирования
// Проверки 3-7 и обе записи идут в одной транзакции под блокировкой строки поездки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req != nil {
		uc.logger.Info("CreateBooking: ride=%s, rider=%s, seats=%d", req.RideID, req.RiderID, req.Seats)
	}

	// 1-2. Валидация входных данных
	rideID, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.record(ResultInvalid)
		return nil, err
	}

	// 3-7. Проверки и запись в транзакции
	result, err := uc.book(ctx, rideID, req)
	if err != nil {
		uc.record(resultOf(err))
		return nil, err
	}

	booking, ride := result.booking, result.ride
	uc.logger.Info("CreateBooking: booking id=%s created, ride=%s, seats=%d, total=%d, remaining=%d",
		booking.ID, ride.ID, booking.Seats, booking.TotalPrice, ride.PassengerCount-booking.Seats)
	uc.record(ResultCreated)

	// 10. Уведомление пассажира, ошибка не влияет на бронирование
	uc.notify(ctx, result)

	return &Response{
		ID:             booking.ID,
		RideID:         booking.RideID,
		UserID:         booking.UserID,
		Seats:          booking.Seats,
		TotalPrice:     booking.TotalPrice,
		Status:         string(booking.Status),
		Message:        booking.Message,
		IsRead:         booking.IsRead,
		RideSummary:    ride.Summary(),
		RideDate:       ride.Date,
		RideTime:       ride.Time,
		PricePerSeat:   ride.PricePerSeat,
		RemainingSeats: ride.PassengerCount - booking.Seats,
		CreatedAt:      booking.CreatedAt,
		UpdatedAt:      booking.UpdatedAt,
	}, nil
}

// book берет блокировку поездки (если настроена) и выполняет транзакцию
func (uc *UseCase) book(ctx context.Context, rideID uuid.UUID, req *Request) (*bookingResult, error) {
	var result *bookingResult
	run := func(ctx context.Context) error {
		res, err := uc.bookInTx(ctx, rideID, req)
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	if uc.locker == nil {
		err := run(ctx)
		return result, err
	}

	err := uc.locker.WithRideLock(ctx, rideID.String(), run)
	switch {
	case errors.Is(err, ridelock.ErrBusy):
		uc.logger.Warn("CreateBooking: ride id=%s is locked by another request: %v", rideID, err)
		return nil, ErrRideBusy
	case errors.Is(err, ridelock.ErrUnavailable):
		// Строка поездки все равно блокируется в БД
		uc.logger.Warn("CreateBooking: ride lock unavailable, continuing without it: %v", err)
		err = run(ctx)
	}
	return result, err
}

func (uc *UseCase) bookInTx(ctx context.Context, rideID uuid.UUID, req *Request) (*bookingResult, error) {
	var result bookingResult

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3. Поездка с блокировкой строки (FOR UPDATE)
		ride, err := uc.rideRepo.GetByIDForUpdate(txCtx, rideID)
		if err != nil {
			if errors.Is(err, rideRepo.ErrRideNotFound) {
				uc.logger.Warn("CreateBooking: ride id=%s not found", rideID)
				return ErrRideNotFound
			}
			uc.logger.Error("CreateBooking: failed to get ride id=%s: %v", rideID, err)
			return fmt.Errorf("%w: failed to get ride: %v", ErrInternal, err)
		}
		if ride.Status != domain.RideStatusActive {
			uc.logger.Warn("CreateBooking: ride id=%s is %s, not bookable", rideID, ride.Status)
			return ErrRideNotFound
		}

		// 4. Пассажир
		rider, err := uc.userRepo.GetByID(txCtx, req.RiderID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: rider id=%s not found", req.RiderID)
				return ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get rider id=%s: %v", req.RiderID, err)
			return fmt.Errorf("%w: failed to get rider: %v", ErrInternal, err)
		}

		// 5. Свободные места
		if !ride.HasSeats(req.Seats) {
			uc.logger.Warn("CreateBooking: ride id=%s has %d seat(s), requested %d",
				rideID, ride.PassengerCount, req.Seats)
			return &CapacityError{Available: ride.PassengerCount}
		}

		// 6. Владелец не может бронировать свою поездку
		if ride.IsOwnedBy(req.RiderID) {
			uc.logger.Warn("CreateBooking: user id=%s tried to book own ride id=%s", req.RiderID, rideID)
			return ErrSelfBooking
		}

		// 7. Активное бронирование этой пары
		existing, err := uc.bookingRepo.FindActive(txCtx, rideID, req.RiderID)
		switch {
		case err == nil:
			uc.logger.Warn("CreateBooking: user id=%s already has booking id=%s on ride id=%s",
				req.RiderID, existing.ID, rideID)
			return ErrDuplicateBooking
		case !errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Error("CreateBooking: failed to check existing booking: %v", err)
			return fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
		}

		// 8. Бронирование с зафиксированной ценой и контактами пассажира
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			RideID:     rideID,
			UserID:     req.RiderID,
			Seats:      req.Seats,
			TotalPrice: ride.PricePerSeat * int64(req.Seats),
			Status:     domain.StatusConfirmed,
			Contact:    rider.Contact(),
			Message:    req.Message,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				uc.logger.Warn("CreateBooking: concurrent duplicate booking for user id=%s on ride id=%s",
					req.RiderID, rideID)
				return ErrDuplicateBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 9. Условное списание мест
		if err := uc.rideRepo.DecrementSeats(txCtx, rideID, req.Seats); err != nil {
			if errors.Is(err, rideRepo.ErrNotEnoughSeats) {
				uc.logger.Warn("CreateBooking: seats of ride id=%s changed concurrently", rideID)
				return &CapacityError{Available: ride.PassengerCount}
			}
			uc.logger.Error("CreateBooking: failed to decrement seats of ride id=%s: %v", rideID, err)
			return fmt.Errorf("%w: failed to decrement seats: %v", ErrInternal, err)
		}

		result = bookingResult{booking: booking, ride: ride, rider: rider}
		return nil
	})
	if err != nil {
		if isKnown(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &result, nil
}

// notify отправляет подтверждение с собственным таймаутом, отвязанным от отмены запроса
func (uc *UseCase) notify(ctx context.Context, result *bookingResult) {
	if uc.notifier == nil {
		return
	}

	ride := result.ride
	msg := notification.BookingConfirmation{
		BookingID:   result.booking.ID.String(),
		RideID:      ride.ID.String(),
		RiderName:   result.rider.Name,
		RiderEmail:  result.rider.Email,
		PickupCity:  ride.PickupPoint.City,
		DropoffCity: ride.DropoffPoint.City,
		Date:        ride.Date.Format(domain.DateFormat),
		Time:        ride.Time.String(),
		RideSummary: ride.Summary(),
		Seats:       result.booking.Seats,
		TotalPrice:  result.booking.TotalPrice,
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.notifyTimeout)
	defer cancel()

	if err := uc.notifier.NotifyBookingConfirmed(notifyCtx, msg); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify rider id=%s about booking id=%s: %v",
			result.rider.ID, result.booking.ID, err)
	}
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordBooking(result)
	}
}

// isKnown сообщает, что ошибка уже переведена в ошибку use case
func isKnown(err error) bool {
	for _, target := range []error{
		ErrRideNotFound, ErrUserNotFound, ErrCapacityExceeded,
		ErrSelfBooking, ErrDuplicateBooking, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrRideNotFound), errors.Is(err, ErrUserNotFound):
		return ResultNotFound
	case errors.Is(err, ErrCapacityExceeded):
		return ResultCapacity
	case errors.Is(err, ErrSelfBooking):
		return ResultSelfBooking
	case errors.Is(err, ErrDuplicateBooking):
		return ResultDuplicate
	case errors.Is(err, ErrRideBusy):
		return ResultBusy
	default:
		return ResultInternal
	}
}
