package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	"github.com/m04kA/SMC-RideBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RideBookingService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
// uq_bookings_active_ride_user (одно активное бронирование на пару поездка/пассажир)
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"ride_id",
	"user_id",
	"seats",
	"total_price",
	"status",
	"contact_name",
	"contact_phone",
	"contact_email",
	"message",
	"is_read",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository журнал бронирований (Booking Ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Вторая активная запись для той же пары (поездка, пассажир) отклоняется уникальным индексом,
// что закрывает гонку между проверкой FindActive и вставкой
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"ride_id",
			"user_id",
			"seats",
			"total_price",
			"status",
			"contact_name",
			"contact_phone",
			"contact_email",
			"message",
		).
		Values(
			booking.RideID,
			booking.UserID,
			booking.Seats,
			booking.TotalPrice,
			booking.Status,
			booking.Contact.Name,
			booking.Contact.Phone,
			booking.Contact.Email,
			booking.Message,
		).
		Suffix("RETURNING id, is_read, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.IsRead,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, psqlbuilder.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": id}), "GetByID")
}

// GetByIDForUpdate получает бронирование с блокировкой строки (внутри транзакции)
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings").Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}
	return r.getOne(ctx, selectBuilder, "GetByIDForUpdate")
}

// FindActive ищет неотмененное бронирование пассажира на поездку
// Возвращает ErrBookingNotFound, если такого нет
func (r *Repository) FindActive(ctx context.Context, rideID, userID uuid.UUID) (*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"ride_id": rideID, "user_id": userID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1)

	return r.getOne(ctx, selectBuilder, "FindActive")
}

func (r *Repository) getOne(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&booking)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return &booking, nil
}

// ListByUserWithRide возвращает бронирования пассажира вместе с краткими данными поездки,
// сначала самые новые
func (r *Repository) ListByUserWithRide(ctx context.Context, userID uuid.UUID) ([]*domain.BookingWithRide, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(bookingColumns)+9)
	for _, c := range bookingColumns {
		columns = append(columns, "b."+c)
	}
	columns = append(columns,
		"r.id",
		"r.pickup_name",
		"r.pickup_city",
		"r.pickup_address",
		"r.dropoff_name",
		"r.dropoff_city",
		"r.dropoff_address",
		"r.ride_date",
		"r.ride_time",
		"r.price_per_seat",
	)

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		Join("rides r ON r.id = b.ride_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserWithRide - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUserWithRide - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithRide, 0)
	for rows.Next() {
		var item domain.BookingWithRide
		dest := append(bookingDest(&item.Booking),
			&item.Ride.ID,
			&item.Ride.PickupPoint.Name,
			&item.Ride.PickupPoint.City,
			&item.Ride.PickupPoint.Address,
			&item.Ride.DropoffPoint.Name,
			&item.Ride.DropoffPoint.City,
			&item.Ride.DropoffPoint.Address,
			&item.Ride.Date,
			&item.Ride.Time,
			&item.Ride.PricePerSeat,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListByUserWithRide - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUserWithRide - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListByRide возвращает все бронирования поездки (входящие заявки водителя), сначала новые
func (r *Repository) ListByRide(ctx context.Context, rideID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"ride_id": rideID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRide - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRide - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveByRide считает неотмененные бронирования поездки
func (r *Repository) CountActiveByRide(ctx context.Context, rideID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"ride_id": rideID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByRide - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByRide - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, query, args, ErrBookingNotFound, "UpdateStatus")
}

// Cancel переводит бронирование в cancelled
// Обновляются только pending и confirmed, иначе ErrCannotCancel
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, query, args, ErrCannotCancel, "Cancel")
}

// MarkRead отмечает заявку прочитанной владельцем поездки
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("is_read", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, query, args, ErrBookingNotFound, "MarkRead")
}

func (r *Repository) execAffectingOne(ctx context.Context, query string, args []interface{}, notAffected error, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return notAffected
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(bookingDest(&booking)...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// bookingDest указатели на поля в порядке bookingColumns
func bookingDest(b *domain.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.RideID,
		&b.UserID,
		&b.Seats,
		&b.TotalPrice,
		&b.Status,
		&b.Contact.Name,
		&b.Contact.Phone,
		&b.Contact.Email,
		&b.Message,
		&b.IsRead,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}
