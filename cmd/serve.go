package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ClassReservation/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-ClassReservation/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ClassReservation/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-ClassReservation/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-ClassReservation/internal/api/handlers/get_booking"
	getEmployeeBookingsHandler "github.com/m04kA/SMC-ClassReservation/internal/api/handlers/get_employee_bookings"
	"github.com/m04kA/SMC-ClassReservation/internal/api/middleware"
	"github.com/m04kA/SMC-ClassReservation/internal/config"
	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/schedule"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/blob"
	"github.com/m04kA/SMC-ClassReservation/internal/infra/storage/reservations"
	"github.com/m04kA/SMC-ClassReservation/internal/integrations/employeeservice"
	bookingsService "github.com/m04kA/SMC-ClassReservation/internal/service/bookings"
	identityService "github.com/m04kA/SMC-ClassReservation/internal/service/identity"
	cancelBookingUC "github.com/m04kA/SMC-ClassReservation/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-ClassReservation/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-ClassReservation/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ClassReservation/pkg/keyedqueue"
	"github.com/m04kA/SMC-ClassReservation/pkg/keylock"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
	"github.com/m04kA/SMC-ClassReservation/pkg/metrics"
)

// Параметры очистки лимитера запросов
const (
	rateLimitCleanupInterval = time.Minute
	rateLimitIdleTTL         = 10 * time.Minute
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ClassReservation...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище документов
	var store blob.Store
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		store = blob.NewPostgresStore(db)
	case config.StorageBackendMemory:
		log.Warn("Using in-memory storage: reservations are lost on restart")
		store = blob.NewMemoryStore()
	}

	retryPolicy := blob.RetryPolicy{
		MaxRetries:       cfg.Storage.MaxRetries,
		BaseDelay:        time.Duration(cfg.Storage.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:         time.Duration(cfg.Storage.RetryMaxDelayMs) * time.Millisecond,
		OperationTimeout: time.Duration(cfg.Storage.OperationTimeoutMs) * time.Millisecond,
	}
	reservationRepository := reservations.NewRepository(
		blob.NewRetryingStore(store, retryPolicy, metricsCollector, log),
	)

	// Один обработчик на ключ (месяц, тип активности)
	queue := keyedqueue.New(cfg.Storage.QueueBuffer)
	employeeLocks := keylock.New()

	// Справочник сотрудников
	var directory identityService.EmployeeDirectory
	if cfg.EmployeeService.URL != "" {
		client := employeeservice.NewClient(
			cfg.EmployeeService.URL,
			cfg.EmployeeService.Token,
			time.Duration(cfg.EmployeeService.Timeout)*time.Second,
			log,
		)

		var cache employeeservice.DirectoryCache = employeeservice.NewMemoryCache()
		if cfg.Redis.Enabled {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer redisClient.Close()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Warn("Redis at %s is unavailable, using in-memory directory cache: %v", cfg.Redis.Addr, err)
			} else {
				cache = employeeservice.NewRedisCache(redisClient, cfg.Redis.Key)
				log.Info("Employee directory cache: redis %s key=%s", cfg.Redis.Addr, cfg.Redis.Key)
			}
		}

		directory = employeeservice.NewCachedDirectory(
			client,
			cache,
			time.Duration(cfg.EmployeeService.CacheTTL)*time.Second,
			log,
		)
		log.Info("Integration client initialized (EmployeeService=%s timeout=%ds)",
			cfg.EmployeeService.URL, cfg.EmployeeService.Timeout)
	} else {
		log.Warn("EmployeeService URL is not set, identities are taken from requests as is")
	}
	identity := identityService.NewService(directory, log)

	// Календарь слотов
	var feed getAvailabilityUC.ScheduleFeed
	if cfg.Schedule.Path != "" {
		fileFeed, err := schedule.NewFileFeed(cfg.Schedule.Path, log)
		if err != nil {
			log.Fatal("Failed to load schedule feed: %v", err)
		}
		feed = fileFeed

		// SIGHUP перечитывает расписание
		go reloadOnHangup(ctx, fileFeed, log)
	} else {
		log.Warn("Schedule feed is not configured, availability is limited by capacity only")
	}

	slotTimes, err := cfg.SlotTimeTable()
	if err != nil {
		return err
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	// Инициализируем use cases и сервисы
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		feed,
		identity,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		reservationRepository,
		feed,
		queue,
		employeeLocks,
		identity,
		metricsCollector,
		createBookingUC.Config{Location: location},
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		reservationRepository,
		queue,
		identity,
		metricsCollector,
		cancelBookingUC.Config{
			Cutoff:    cfg.CancelCutoff(),
			Mode:      domain.CancelMode(cfg.Booking.CancelMode),
			SlotTimes: slotTimes,
			Location:  location,
		},
		log,
	)
	bookingSvc := bookingsService.NewService(
		reservationRepository,
		identity,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getEmployeeBookings := getEmployeeBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Лимит запросов на изменяющие маршруты
	limited := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go rl.Run(ctx, rateLimitCleanupInterval, rateLimitIdleTTL)
		limited = func(h http.HandlerFunc) http.Handler { return rl.Limit(h) }
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Доступность слотов на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Бронирования сотрудника
	api.HandleFunc("/bookings", getEmployeeBookings.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.Handle("/bookings", limited(createBooking.Handle)).Methods(http.MethodPost)

	// Отмена бронирования
	api.Handle("/bookings/cancel", limited(cancelBooking.Handle)).Methods(http.MethodPost)

	// Бронирование по ID
	api.HandleFunc("/bookings/{recordId}", getBooking.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем очереди: выполняемая задача завершается, не начатые получают ErrClosed
	queue.Close()
	log.Info("Reservation queues stopped")

	log.Info("Server stopped gracefully")
	return nil
}
