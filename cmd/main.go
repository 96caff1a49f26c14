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

	cancelAppointmentHandler "salonik/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "salonik/internal/api/handlers/create_appointment"
	eventsStreamHandler "salonik/internal/api/handlers/events_stream"
	exportReportHandler "salonik/internal/api/handlers/export_report"
	getAppointmentHandler "salonik/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "salonik/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "salonik/internal/api/handlers/get_client_appointments"
	getMasterAppointmentsHandler "salonik/internal/api/handlers/get_master_appointments"
	mastersHandler "salonik/internal/api/handlers/masters"
	productsHandler "salonik/internal/api/handlers/products"
	rulesHandler "salonik/internal/api/handlers/rules"
	servicesHandler "salonik/internal/api/handlers/services"
	settingsHandler "salonik/internal/api/handlers/settings"
	updateStatusHandler "salonik/internal/api/handlers/update_appointment_status"
	"salonik/internal/api/middleware"
	"salonik/internal/config"
	"salonik/internal/infra/events"
	appointmentRepo "salonik/internal/infra/storage/appointment"
	masterRepo "salonik/internal/infra/storage/master"
	productRepo "salonik/internal/infra/storage/product"
	ruleRepo "salonik/internal/infra/storage/rule"
	serviceRepo "salonik/internal/infra/storage/service"
	settingsRepo "salonik/internal/infra/storage/settings"
	identityClient "salonik/internal/integrations/identity"
	appointmentsService "salonik/internal/service/appointments"
	catalogService "salonik/internal/service/catalog"
	mastersService "salonik/internal/service/masters"
	reportsService "salonik/internal/service/reports"
	scheduleService "salonik/internal/service/schedule"
	settingsService "salonik/internal/service/settings"
	createAppointmentUC "salonik/internal/usecase/create_appointment"
	getAvailableSlotsUC "salonik/internal/usecase/get_available_slots"
	"salonik/pkg/dbmetrics"
	"salonik/pkg/logger"
	"salonik/pkg/metrics"
	"salonik/pkg/simpletxmanager"
	"salonik/pkg/txmanager"
)

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

	log.Info("Starting Salonik booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Подключаемся к Redis (шина событий)
	redisClient := events.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	eventBus := events.NewBus(redisClient, log)
	if err := eventBus.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping Redis: %v", err)
	}
	log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Address, cfg.Redis.DB)

	// Инициализируем клиент сервиса идентификации
	identity := identityClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	log.Info("Identity service client initialized (url=%s, timeout=%ds)",
		cfg.IdentityService.URL, cfg.IdentityService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		ruleRepository        *ruleRepo.Repository
		serviceRepository     *serviceRepo.Repository
		masterRepository      *masterRepo.Repository
		productRepository     *productRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		masterRepository = masterRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		ruleRepository = ruleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		masterRepository = masterRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		masterRepository,
		identity,
		eventBus,
		log,
	)
	scheduleSvc := scheduleService.NewService(ruleRepository, identity, log)
	catalogSvc := catalogService.NewService(
		serviceRepository,
		productRepository,
		identity,
		log,
	)
	mastersSvc := mastersService.NewService(masterRepository, identity, log)
	settingsSvc := settingsService.NewService(settingsRepository, identity, log)
	reportsSvc := reportsService.NewService(
		appointmentRepository,
		identity,
		cfg.Exports.Path,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		ruleRepository,
		masterRepository,
		serviceRepository,
		settingsRepository,
		identity,
		txMgr,
		eventBus,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		ruleRepository,
		masterRepository,
		serviceRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getMasterAppointments := getMasterAppointmentsHandler.NewHandler(appointmentsSvc, log)
	rules := rulesHandler.NewHandler(scheduleSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	products := productsHandler.NewHandler(catalogSvc, log)
	masters := mastersHandler.NewHandler(mastersSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)
	exportReport := exportReportHandler.NewHandler(reportsSvc, log)
	eventsStream := eventsStreamHandler.NewHandler(eventBus, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мастера на дату
	api.HandleFunc("/masters/{masterId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог мастеров
	api.HandleFunc("/masters", masters.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/masters/{masterId}", masters.HandleGet).Methods(http.MethodGet)

	// Каталог услуг и товаров
	api.HandleFunc("/services", services.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", services.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/products", products.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", products.HandleGet).Methods(http.MethodGet)

	// Расписание работы салона
	api.HandleFunc("/schedule/rules", rules.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/schedule/rules/{ruleId}", rules.HandleGet).Methods(http.MethodGet)

	// Настройки салона
	api.HandleFunc("/settings", settings.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Изменение статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/me/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// Записи мастера за период
	protected.HandleFunc("/masters/{masterId}/appointments", getMasterAppointments.Handle).Methods(http.MethodGet)

	// --- Администрирование (права проверяются в сервисном слое) ---
	// Правила расписания
	protected.HandleFunc("/schedule/rules", rules.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/rules/{ruleId}", rules.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/rules/{ruleId}", rules.HandleDelete).Methods(http.MethodDelete)

	// Услуги
	protected.HandleFunc("/services", services.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", services.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", services.HandleDelete).Methods(http.MethodDelete)

	// Товары
	protected.HandleFunc("/products", products.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/products/{productId}", products.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/products/{productId}", products.HandleDelete).Methods(http.MethodDelete)

	// Мастера
	protected.HandleFunc("/masters", masters.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/masters/{masterId}", masters.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/masters/{masterId}", masters.HandleDelete).Methods(http.MethodDelete)

	// Настройки салона
	protected.HandleFunc("/settings", settings.HandleUpdate).Methods(http.MethodPut)

	// Выгрузка отчета по записям
	protected.HandleFunc("/reports/appointments", exportReport.Handle).Methods(http.MethodGet)

	// Поток событий о записях
	protected.HandleFunc("/events/stream", eventsStream.Handle).Methods(http.MethodGet)

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
