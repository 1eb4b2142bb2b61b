package user

import "github.com/m04kA/SMC-RideBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
