package ride

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RideBookingService/internal/domain"
	"github.com/m04kA/SMC-RideBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RideBookingService/pkg/psqlbuilder"
)

const foreignKeyViolation = "23503"

var rideColumns = []string{
	"id",
	"user_id",
	"pickup_name",
	"pickup_city",
	"pickup_address",
	"dropoff_name",
	"dropoff_city",
	"dropoff_address",
	"ride_date",
	"ride_time",
	"passenger_count",
	"price_per_seat",
	"route_distance",
	"route_duration",
	"route_toll",
	"status",
	"published_at",
	"updated_at",
}

// Repository хранилище поездок (Ride Inventory Store)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория поездок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create публикует поездку
// Статус по умолчанию active, id и published_at проставляет БД
func (r *Repository) Create(ctx context.Context, ride *domain.Ride) (*domain.Ride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if ride.Status == "" {
		ride.Status = domain.RideStatusActive
	}
	distance, duration, toll := routeValues(ride.SelectedRoute)

	query, args, err := psqlbuilder.Insert("rides").
		Columns(
			"user_id",
			"pickup_name",
			"pickup_city",
			"pickup_address",
			"dropoff_name",
			"dropoff_city",
			"dropoff_address",
			"ride_date",
			"ride_time",
			"passenger_count",
			"price_per_seat",
			"route_distance",
			"route_duration",
			"route_toll",
			"status",
		).
		Values(
			ride.UserID,
			ride.PickupPoint.Name,
			ride.PickupPoint.City,
			ride.PickupPoint.Address,
			ride.DropoffPoint.Name,
			ride.DropoffPoint.City,
			ride.DropoffPoint.Address,
			ride.Date,
			ride.Time,
			ride.PassengerCount,
			ride.PricePerSeat,
			distance,
			duration,
			toll,
			ride.Status,
		).
		Suffix("RETURNING id, published_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&ride.ID, &ride.PublishedAt, &ride.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return ride, nil
}

// GetByID получает поездку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ride, error) {
	return r.getByID(ctx, id, false, "GetByID")
}

// GetByIDForUpdate получает поездку и блокирует строку до конца транзакции
// Вне транзакции работает как GetByID
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Ride, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx), "GetByIDForUpdate")
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, forUpdate bool, op string) (*domain.Ride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rideColumns...).
		From("rides").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	ride, err := scanRide(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan ride: %v", ErrScanRow, op, err)
	}

	return ride, nil
}

// List возвращает все поездки, сначала недавно опубликованные
func (r *Repository) List(ctx context.Context) ([]*domain.Ride, error) {
	return r.list(ctx, psqlbuilder.Select(rideColumns...).From("rides"), "List")
}

// ListByUser возвращает поездки, опубликованные пользователем
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Ride, error) {
	return r.list(ctx,
		psqlbuilder.Select(rideColumns...).From("rides").Where(squirrel.Eq{"user_id": userID}),
		"ListByUser",
	)
}

// Search ищет активные поездки по фильтру
// Города сравниваются подстрокой без учета регистра, дата ограничивает выборку одними сутками
func (r *Repository) Search(ctx context.Context, filter domain.RideFilter) ([]*domain.Ride, error) {
	selectBuilder := psqlbuilder.Select(rideColumns...).
		From("rides").
		Where(squirrel.Eq{"status": domain.RideStatusActive})

	if filter.PickupCity != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"pickup_city": likePattern(filter.PickupCity)})
	}
	if filter.DropoffCity != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"dropoff_city": likePattern(filter.DropoffCity)})
	}
	if filter.Date != nil {
		day := truncateToDay(*filter.Date)
		selectBuilder = selectBuilder.Where(squirrel.And{
			squirrel.GtOrEq{"ride_date": day},
			squirrel.Lt{"ride_date": day.AddDate(0, 0, 1)},
		})
	}
	if filter.MinSeats != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"passenger_count": *filter.MinSeats})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_per_seat": *filter.MaxPrice})
	}

	return r.list(ctx, selectBuilder, "Search")
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Ride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.OrderBy("published_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0)
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan ride: %v", ErrScanRow, op, err)
		}
		rides = append(rides, ride)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return rides, nil
}

// Update сохраняет только заданные поля поездки
// passenger_count пишется, лишь когда владелец меняет его явно,
// иначе списания мест параллельными бронированиями сохраняются
func (r *Repository) Update(ctx context.Context, id uuid.UUID, upd domain.RideUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("rides")
	if upd.PickupPoint != nil {
		updateBuilder = updateBuilder.
			Set("pickup_name", upd.PickupPoint.Name).
			Set("pickup_city", upd.PickupPoint.City).
			Set("pickup_address", upd.PickupPoint.Address)
	}
	if upd.DropoffPoint != nil {
		updateBuilder = updateBuilder.
			Set("dropoff_name", upd.DropoffPoint.Name).
			Set("dropoff_city", upd.DropoffPoint.City).
			Set("dropoff_address", upd.DropoffPoint.Address)
	}
	if upd.Date != nil {
		updateBuilder = updateBuilder.Set("ride_date", *upd.Date)
	}
	if upd.Time != nil {
		updateBuilder = updateBuilder.Set("ride_time", *upd.Time)
	}
	if upd.PassengerCount != nil {
		updateBuilder = updateBuilder.Set("passenger_count", *upd.PassengerCount)
	}
	if upd.PricePerSeat != nil {
		updateBuilder = updateBuilder.Set("price_per_seat", *upd.PricePerSeat)
	}
	if upd.SelectedRoute != nil {
		distance, duration, toll := routeValues(upd.SelectedRoute)
		updateBuilder = updateBuilder.
			Set("route_distance", distance).
			Set("route_duration", duration).
			Set("route_toll", toll)
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", *upd.Status)
	}

	query, args, err := updateBuilder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, ErrRideNotFound, "Update")
}

// DecrementSeats списывает n мест, только если их хватает
// Условие в WHERE не дает счетчику уйти в минус даже при гонке
func (r *Repository) DecrementSeats(ctx context.Context, id uuid.UUID, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rides").
		Set("passenger_count", squirrel.Expr("passenger_count - ?", n)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"passenger_count": n}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementSeats - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, ErrNotEnoughSeats, "DecrementSeats")
}

// IncrementSeats возвращает n мест в поездку
func (r *Repository) IncrementSeats(ctx context.Context, id uuid.UUID, n int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rides").
		Set("passenger_count", squirrel.Expr("passenger_count + ?", n)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementSeats - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, query, args, ErrRideNotFound, "IncrementSeats")
}

// Delete удаляет поездку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("rides").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return ErrRideReferenced
		}
		return fmt.Errorf("%w: Delete - execute: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRideNotFound
	}

	return nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, notAffected error, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRide(row scanner) (*domain.Ride, error) {
	var (
		ride     domain.Ride
		distance sql.NullString
		duration sql.NullString
		toll     sql.NullBool
	)

	err := row.Scan(
		&ride.ID,
		&ride.UserID,
		&ride.PickupPoint.Name,
		&ride.PickupPoint.City,
		&ride.PickupPoint.Address,
		&ride.DropoffPoint.Name,
		&ride.DropoffPoint.City,
		&ride.DropoffPoint.Address,
		&ride.Date,
		&ride.Time,
		&ride.PassengerCount,
		&ride.PricePerSeat,
		&distance,
		&duration,
		&toll,
		&ride.Status,
		&ride.PublishedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if distance.Valid || duration.Valid || toll.Valid {
		ride.SelectedRoute = &domain.RouteInfo{
			Distance: distance.String,
			Duration: duration.String,
			Toll:     toll.Bool,
		}
	}

	return &ride, nil
}

func routeValues(route *domain.RouteInfo) (distance, duration sql.NullString, toll sql.NullBool) {
	if route == nil {
		return
	}
	return sql.NullString{String: route.Distance, Valid: true},
		sql.NullString{String: route.Duration, Valid: true},
		sql.NullBool{Bool: route.Toll, Valid: true}
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%
func likePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(strings.TrimSpace(s)) + "%"
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
