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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/appointify/appointment-service/internal/api/handlers/create_booking"
	createServiceHandler "github.com/appointify/appointment-service/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/appointify/appointment-service/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/appointify/appointment-service/internal/api/handlers/get_available_slots"
	getBookedDatesHandler "github.com/appointify/appointment-service/internal/api/handlers/get_booked_dates"
	getBookingHandler "github.com/appointify/appointment-service/internal/api/handlers/get_booking"
	getBusinessBookingsHandler "github.com/appointify/appointment-service/internal/api/handlers/get_business_bookings"
	getMyBusinessHandler "github.com/appointify/appointment-service/internal/api/handlers/get_my_business"
	getPublicBusinessHandler "github.com/appointify/appointment-service/internal/api/handlers/get_public_business"
	getScheduleHandler "github.com/appointify/appointment-service/internal/api/handlers/get_schedule"
	getServicesHandler "github.com/appointify/appointment-service/internal/api/handlers/get_services"
	onboardBusinessHandler "github.com/appointify/appointment-service/internal/api/handlers/onboard_business"
	setPublicEnabledHandler "github.com/appointify/appointment-service/internal/api/handlers/set_public_enabled"
	setServiceActiveHandler "github.com/appointify/appointment-service/internal/api/handlers/set_service_active"
	updateBookingStatusHandler "github.com/appointify/appointment-service/internal/api/handlers/update_booking_status"
	updateHolidaysHandler "github.com/appointify/appointment-service/internal/api/handlers/update_holidays"
	updateScheduleHandler "github.com/appointify/appointment-service/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/appointify/appointment-service/internal/api/handlers/update_service"
	"github.com/appointify/appointment-service/internal/api/middleware"
	"github.com/appointify/appointment-service/internal/config"
	"github.com/appointify/appointment-service/internal/infra/cache/publicbusiness"
	bookingRepo "github.com/appointify/appointment-service/internal/infra/storage/booking"
	businessRepo "github.com/appointify/appointment-service/internal/infra/storage/business"
	scheduleRepo "github.com/appointify/appointment-service/internal/infra/storage/schedule"
	serviceRepo "github.com/appointify/appointment-service/internal/infra/storage/service"
	slotRepo "github.com/appointify/appointment-service/internal/infra/storage/slot"
	bookingsService "github.com/appointify/appointment-service/internal/service/bookings"
	businessService "github.com/appointify/appointment-service/internal/service/business"
	catalogService "github.com/appointify/appointment-service/internal/service/catalog"
	publicService "github.com/appointify/appointment-service/internal/service/public"
	scheduleService "github.com/appointify/appointment-service/internal/service/schedule"
	createBookingUC "github.com/appointify/appointment-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/appointify/appointment-service/internal/usecase/get_available_slots"
	"github.com/appointify/appointment-service/internal/worker/slotreclaimer"
	"github.com/appointify/appointment-service/pkg/dbmetrics"
	"github.com/appointify/appointment-service/pkg/logger"
	"github.com/appointify/appointment-service/pkg/metrics"
	"github.com/appointify/appointment-service/pkg/txmanager"
)

// cardCache объединяет чтение и инвалидацию карточки публичной страницы.
// Реализуется Redis-кэшем и заглушкой для конфигурации без Redis.
type cardCache interface {
	Get(ctx context.Context, slug string) (*publicbusiness.Card, error)
	Set(ctx context.Context, slug string, card *publicbusiness.Card) error
	Invalidate(ctx context.Context, slug string) error
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

	log.Info("Starting appointment-service...")
	log.Info("Configuration loaded from config.toml")

	// Метрики создаются всегда: handlers и воркер держат коллектор напрямую.
	// Флаг metrics.enabled управляет только HTTP middleware и endpoint'ом /metrics.
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Оборачиваем пул метриками (если включены)
	var dbConn txmanager.TxBeginner = db
	if cfg.Metrics.Enabled {
		dbConn = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем кэш карточки публичной страницы
	var cache cardCache = publicbusiness.NewNoop()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		cache = publicbusiness.New(redisClient, time.Duration(cfg.Redis.CardTTLSec)*time.Second)
		log.Info("Public card cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CardTTLSec)
	} else {
		log.Info("Redis disabled, public card cache is a no-op")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(dbConn)
	businessRepository := businessRepo.NewRepository(dbConn)
	scheduleRepository := scheduleRepo.NewRepository(dbConn)
	serviceRepository := serviceRepo.NewRepository(dbConn)
	slotRepository := slotRepo.NewRepository(dbConn)

	txMgr := txmanager.NewTransactionManager(dbConn)

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		businessRepository,
		txMgr,
		log,
	)
	businessSvc := businessService.NewService(
		businessRepository,
		scheduleRepository,
		cache,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(
		serviceRepository,
		businessRepository,
		cache,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		businessRepository,
		cache,
		txMgr,
		log,
	)
	publicSvc := publicService.NewService(
		businessRepository,
		serviceRepository,
		scheduleRepository,
		slotRepository,
		cache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		businessRepository,
		serviceRepository,
		scheduleRepository,
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		businessRepository,
		serviceRepository,
		scheduleRepository,
		slotRepository,
		log,
	)

	// Инициализируем handlers
	getPublicBusiness := getPublicBusinessHandler.NewHandler(publicSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookedDates := getBookedDatesHandler.NewHandler(publicSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)

	onboardBusiness := onboardBusinessHandler.NewHandler(businessSvc, log)
	getMyBusiness := getMyBusinessHandler.NewHandler(businessSvc, log)
	setPublicEnabled := setPublicEnabledHandler.NewHandler(businessSvc, log)

	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	updateHolidays := updateHolidaysHandler.NewHandler(scheduleSvc, log)

	createService := createServiceHandler.NewHandler(catalogSvc, log)
	getServices := getServicesHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	setServiceActive := setServiceActiveHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingsSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, metricsCollector, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (страница бронирования, без аутентификации)
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()

	public.HandleFunc("/businesses/{slug}", getPublicBusiness.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{slug}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{slug}/booked-dates", getBookedDates.Handle).Methods(http.MethodGet)
	public.HandleFunc("/businesses/{slug}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (кабинет владельца, требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("/business").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бизнес ---
	protected.HandleFunc("", onboardBusiness.Handle).Methods(http.MethodPost)
	protected.HandleFunc("", getMyBusiness.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/public", setPublicEnabled.Handle).Methods(http.MethodPatch)

	// --- Расписание и праздники ---
	protected.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/holidays", updateHolidays.Handle).Methods(http.MethodPut)

	// --- Услуги ---
	protected.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/services/{id}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/services/{id}/active", setServiceActive.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/services/{id}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Фоновый воркер, освобождающий осиротевшие слоты
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Reclaimer.Enabled {
		reclaimer := slotreclaimer.New(
			slotRepository,
			metricsCollector,
			log,
			time.Duration(cfg.Reclaimer.IntervalSec)*time.Second,
			time.Duration(cfg.Reclaimer.GracePeriodSec)*time.Second,
		)
		go reclaimer.Run(workerCtx)
	}

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

	stopWorker()

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

	log.Info("Server stopped gracefully")
}
