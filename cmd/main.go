package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addBlackoutHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/add_blackout"
	checkAvailabilityHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/check_availability"
	cleanupPackageHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/cleanup_package"
	createBookingHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/create_booking"
	getAvailabilityRangeHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/get_availability_range"
	getBookingHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/get_client_bookings"
	getPackageBookingsHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/get_package_bookings"
	getUpcomingDatesHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/get_upcoming_dates"
	listBlackoutsHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/list_blackouts"
	purgeBookingHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/purge_booking"
	removeBlackoutHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/remove_blackout"
	setDateCapacityHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/set_date_capacity"
	setDefaultCapacityHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/set_default_capacity"
	transitionBookingHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/transition_booking"
	updateBookingHandler "github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/config"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/lock"
	clientServiceClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/clientservice"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
	packageServiceClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	availabilityService "github.com/m04kA/SMC-PlannerBookingService/internal/service/availability"
	blackoutsService "github.com/m04kA/SMC-PlannerBookingService/internal/service/blackouts"
	bookingsService "github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings"
	capacityService "github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
	preparationService "github.com/m04kA/SMC-PlannerBookingService/internal/service/preparation"
	cleanupPackageUC "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/cleanup_package"
	createBookingUC "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/create_booking"
	transitionBookingUC "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/transition_booking"
	updateBookingUC "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/update_booking"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/metrics"
)

type slotLocker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
	Close() error
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

	log.Info("Starting SMC-PlannerBookingService...")
	log.Info("Configuration loaded from config.toml (storage driver=%s)", cfg.Database.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: postgres или память
	store, err := openStorage(cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Инициализируем интеграционных клиентов
	packageClient := packageServiceClient.NewClient(
		cfg.PackageService.URL,
		time.Duration(cfg.PackageService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PackageService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.PackageService.URL, cfg.PackageService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Блокировка слотов между репликами
	var locker slotLocker = lock.Noop{}
	if cfg.Lock.Enabled {
		redisClient := lock.NewRedisClient(cfg.Lock.RedisAddr, cfg.Lock.RedisPassword, cfg.Lock.RedisDB)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to connect to redis at %s: %v", cfg.Lock.RedisAddr, err)
		}
		cancel()

		locker = lock.NewRedisLocker(
			redisClient,
			time.Duration(cfg.Lock.TTL)*time.Millisecond,
			time.Duration(cfg.Lock.Wait)*time.Millisecond,
			log,
		)
		log.Info("Redis slot lock enabled (addr=%s, ttl=%dms, wait=%dms)", cfg.Lock.RedisAddr, cfg.Lock.TTL, cfg.Lock.Wait)
	}

	// События жизненного цикла бронирований
	var publisher eventPublisher = eventbus.Noop{}
	if cfg.Events.Enabled {
		amqpPublisher, err := eventbus.NewPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = amqpPublisher
		log.Info("Booking events are published to exchange %s", cfg.Events.Exchange)
	}
	defer publisher.Close()

	// Инициализируем сервисы
	capacitySvc := capacityService.NewService(store.capacity, packageClient, metricsCollector, log)
	blackoutSvc := blackoutsService.NewService(store.blackouts, packageClient, log)
	preparationSvc := preparationService.NewService(store.bookings, log)
	availabilitySvc := availabilityService.NewService(
		packageClient,
		capacitySvc,
		blackoutSvc,
		preparationSvc,
		cfg.Availability.RangeHorizonDays,
		log,
	)
	bookingSvc := bookingsService.NewService(
		store.bookings,
		packageClient,
		capacitySvc,
		store.tx,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		packageClient,
		clientClient,
		availabilitySvc,
		capacitySvc,
		locker,
		publisher,
		metricsCollector,
		store.tx,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		store.bookings,
		packageClient,
		availabilitySvc,
		capacitySvc,
		locker,
		publisher,
		metricsCollector,
		store.tx,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		store.bookings,
		packageClient,
		capacitySvc,
		publisher,
		metricsCollector,
		store.tx,
		log,
	)
	cleanupPackageUseCase := cleanupPackageUC.NewUseCase(
		store.capacity,
		store.blackouts,
		packageClient,
		store.tx,
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailabilityRange := getAvailabilityRangeHandler.NewHandler(availabilitySvc, log)
	getUpcomingDates := getUpcomingDatesHandler.NewHandler(availabilitySvc,
		cfg.Availability.UpcomingDefaultDays, cfg.Availability.UpcomingDefaultLimit, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	transitionBooking := transitionBookingHandler.NewHandler(transitionBookingUseCase, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getPackageBookings := getPackageBookingsHandler.NewHandler(bookingSvc, log)
	setDefaultCapacity := setDefaultCapacityHandler.NewHandler(capacitySvc, log)
	setDateCapacity := setDateCapacityHandler.NewHandler(capacitySvc, log)
	listBlackouts := listBlackoutsHandler.NewHandler(blackoutSvc, log)
	addBlackout := addBlackoutHandler.NewHandler(blackoutSvc, log)
	removeBlackout := removeBlackoutHandler.NewHandler(blackoutSvc, log)
	cleanupPackage := cleanupPackageHandler.NewHandler(cleanupPackageUseCase, log)
	purgeBooking := purgeBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log.Zap()))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность пакета
	api.HandleFunc("/packages/{packageId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/packages/{packageId}/availability/range", getAvailabilityRange.Handle).Methods(http.MethodGet)
	api.HandleFunc("/packages/{packageId}/availability/upcoming", getUpcomingDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", transitionBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление пакетом (для планировщика) ---
	protected.HandleFunc("/packages/{packageId}/bookings", getPackageBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/packages/{packageId}/capacity", setDefaultCapacity.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/packages/{packageId}/capacity/{date}", setDateCapacity.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/packages/{packageId}/blackouts", listBlackouts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/packages/{packageId}/blackouts", addBlackout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/packages/{packageId}/blackouts/{blackoutId}", removeBlackout.Handle).Methods(http.MethodDelete)

	// ============================================================
	// INTERNAL ROUTES (межсервисные вызовы)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/packages/{packageId}/availability", cleanupPackage.Handle).Methods(http.MethodDelete)
	internal.HandleFunc("/bookings/{bookingId}", purgeBooking.Handle).Methods(http.MethodDelete)

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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
