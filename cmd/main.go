package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/create_booking"
	deleteRideHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/delete_ride"
	getBookingHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_booking"
	getMeHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_me"
	getMyBookingsHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_my_bookings"
	getRideHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_ride"
	getRideBookingsHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_ride_bookings"
	getUserRidesHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/get_user_rides"
	healthHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/health"
	listRidesHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/list_rides"
	markBookingReadHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/mark_booking_read"
	publishRideHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/publish_ride"
	searchRidesHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/search_rides"
	updateMeHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/update_me"
	updateRideHandler "github.com/m04kA/SMC-RideBookingService/internal/api/handlers/update_ride"
	"github.com/m04kA/SMC-RideBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RideBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/booking"
	rideRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/ride"
	userRepo "github.com/m04kA/SMC-RideBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RideBookingService/internal/integrations/notification"
	bookingsService "github.com/m04kA/SMC-RideBookingService/internal/service/bookings"
	ridesService "github.com/m04kA/SMC-RideBookingService/internal/service/rides"
	usersService "github.com/m04kA/SMC-RideBookingService/internal/service/users"
	cancelBookingUC "github.com/m04kA/SMC-RideBookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-RideBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RideBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RideBookingService/pkg/logger"
	"github.com/m04kA/SMC-RideBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RideBookingService/pkg/ratelimit"
	"github.com/m04kA/SMC-RideBookingService/pkg/ridelock"
	"github.com/m04kA/SMC-RideBookingService/pkg/txmanager"
)

// database то, что нужно репозиториям и менеджеру транзакций: *sql.DB или *dbmetrics.DB
type database interface {
	dbmetrics.DBExecutor
	txmanager.Beginner
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting %s (env=%s)...", cfg.App.Name, cfg.App.Env)

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var store database = db
	if cfg.Metrics.Enabled {
		store = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Redis: блокировка поездок, rate limit, очередь уведомлений
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Redis не обязателен: блокировка и лимиты деградируют сами
			log.Warn("Redis at %s is not reachable yet: %v", cfg.Redis.Addr(), err)
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr())
		}
		cancel()
	}

	// Репозитории и транзакции
	rideRepository := rideRepo.NewRepository(store)
	bookingRepository := bookingRepo.NewRepository(store)
	userRepository := userRepo.NewRepository(store)
	txMgr := txmanager.NewTransactionManager(store)

	// Уведомления
	var notifyMetrics notification.MetricsRecorder
	if cfg.Metrics.Enabled {
		notifyMetrics = metricsCollector
	}

	var sender notification.Sender = notification.NewLogMailer(log)
	if cfg.SMTP.Enabled {
		sender = notification.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
		log.Info("SMTP notifications via %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	var (
		notifier       createBookingUC.Notifier
		asynqClient    *asynq.Client
		inlineNotifier *notification.InlineDispatcher
	)
	notifyTimeout := time.Duration(cfg.Booking.NotificationTimeout) * time.Second

	if cfg.Notification.Mode == config.NotificationModeAsync && cfg.Redis.Enabled {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		notifier = notification.NewAsyncDispatcher(
			asynqClient,
			cfg.Notification.Queue,
			cfg.Notification.MaxRetry,
			time.Duration(cfg.Notification.TaskTimeout)*time.Second,
			log,
		)
		log.Info("Notifications are queued to %q (asynq)", cfg.Notification.Queue)
	} else {
		if cfg.Notification.Mode == config.NotificationModeAsync {
			log.Warn("Notification mode is async but Redis is disabled, sending inline")
		}
		inlineNotifier = notification.NewInlineDispatcher(sender, notifyTimeout, log, notifyMetrics)
		notifier = inlineNotifier
		log.Info("Notifications are sent inline")
	}

	// Сервисы
	rideSvc := ridesService.NewService(rideRepository, bookingRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(bookingRepository, rideRepository, log)
	userSvc := usersService.NewService(userRepository, log)

	// Use cases
	createOpts := []createBookingUC.Option{createBookingUC.WithNotifyTimeout(notifyTimeout)}
	if cfg.Metrics.Enabled {
		createOpts = append(createOpts, createBookingUC.WithMetrics(metricsCollector))
	}
	if cfg.Lock.Enabled && redisClient != nil {
		createOpts = append(createOpts, createBookingUC.WithRideLocker(ridelock.New(redisClient, ridelock.Options{
			Expiry:     time.Duration(cfg.Lock.ExpirySeconds) * time.Second,
			Tries:      cfg.Lock.Tries,
			RetryDelay: time.Duration(cfg.Lock.RetryDelayMs) * time.Millisecond,
		})))
		log.Info("Ride lock enabled (expiry=%ds, tries=%d)", cfg.Lock.ExpirySeconds, cfg.Lock.Tries)
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		rideRepository,
		userRepository,
		bookingRepository,
		txMgr,
		notifier,
		log,
		createOpts...,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		rideRepository,
		txMgr,
		cfg.Booking.RestoreSeatsOnCancel,
		log,
	)

	// Handlers
	health := healthHandler.NewHandler(db, log)
	listRides := listRidesHandler.NewHandler(rideSvc, log)
	searchRides := searchRidesHandler.NewHandler(rideSvc, log)
	getRide := getRideHandler.NewHandler(rideSvc, log)
	getUserRides := getUserRidesHandler.NewHandler(rideSvc, log)
	publishRide := publishRideHandler.NewHandler(rideSvc, log)
	updateRide := updateRideHandler.NewHandler(rideSvc, log)
	deleteRide := deleteRideHandler.NewHandler(rideSvc, log)
	getRideBookings := getRideBookingsHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log, !cfg.App.IsProduction())
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	markBookingRead := markBookingReadHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getMe := getMeHandler.NewHandler(userSvc, log)
	updateMe := updateMeHandler.NewHandler(userSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/rides", listRides.Handle).Methods(http.MethodGet)
	// /rides/search регистрируется раньше /rides/{rideId}
	api.HandleFunc("/rides/search", searchRides.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rides/{rideId}", getRide.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/rides", getUserRides.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT, sub = ID пользователя)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	// --- Поездки ---
	protected.HandleFunc("/rides", publishRide.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rides/{rideId}", updateRide.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/rides/{rideId}", deleteRide.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/rides/{rideId}/bookings", getRideBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	var createBookingRoute http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		createBookingRoute = middleware.RateLimit(
			newBookingLimiter(cfg, redisClient, log),
			rateLimitRecorder(cfg, metricsCollector),
			log,
		)(createBookingRoute)
		log.Info("POST /bookings rate limit: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}
	protected.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/mine", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/read", markBookingRead.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// --- Профиль ---
	protected.HandleFunc("/users/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", updateMe.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся уведомлений, отправленных после последних бронирований
	if inlineNotifier != nil {
		inlineNotifier.Wait()
	}
	if asynqClient != nil {
		if err := asynqClient.Close(); err != nil {
			log.Error("Failed to close asynq client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}

// newBookingLimiter общий для экземпляров лимит в Redis с откатом на локальный при его недоступности
func newBookingLimiter(cfg *config.Config, client *redis.Client, log *logger.Logger) ratelimit.Limiter {
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	local := ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, window)
	if client == nil {
		return local
	}
	return ratelimit.NewFailoverLimiter(ratelimit.NewRedisLimiter(client, cfg.RateLimit.Requests, window), local, log)
}

func rateLimitRecorder(cfg *config.Config, m *metrics.Metrics) middleware.RateLimitRecorder {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return m
}
