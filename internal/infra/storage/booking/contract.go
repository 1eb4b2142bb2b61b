package booking

import "github.com/m04kA/SMC-RideBookingService/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: *sql.DB, *dbmetrics.DB или транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
