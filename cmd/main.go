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

	bookingSessionsHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/booking_sessions"
	createBookingHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_catalog"
	getCentresHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_centres"
	getExchangeRatesHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_exchange_rates"
	getNurseVisitsHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_nurse_visits"
	getNursesHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_nurses"
	getVisitHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/get_visit"
	searchCatalogHandler "github.com/m04kA/SMC-ActionCentreService/internal/api/handlers/search_catalog"
	"github.com/m04kA/SMC-ActionCentreService/internal/api/middleware"
	"github.com/m04kA/SMC-ActionCentreService/internal/config"
	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
	ratesCache "github.com/m04kA/SMC-ActionCentreService/internal/infra/cache/rates"
	catalogRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/catalog"
	providerRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/provider"
	visitRepo "github.com/m04kA/SMC-ActionCentreService/internal/infra/storage/visit"
	nbrbClient "github.com/m04kA/SMC-ActionCentreService/internal/integrations/nbrb"
	"github.com/m04kA/SMC-ActionCentreService/internal/notify"
	"github.com/m04kA/SMC-ActionCentreService/internal/pricing"
	"github.com/m04kA/SMC-ActionCentreService/internal/rates"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/centres"
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits"
	"github.com/m04kA/SMC-ActionCentreService/internal/session"
	createBookingUC "github.com/m04kA/SMC-ActionCentreService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_available_slots"
	getCatalogUC "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_catalog"
	"github.com/m04kA/SMC-ActionCentreService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActionCentreService/pkg/logger"
	"github.com/m04kA/SMC-ActionCentreService/pkg/metrics"
	"github.com/m04kA/SMC-ActionCentreService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-ActionCentreService...")

	// Фоновые задачи останавливаются отменой rootCtx
	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
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
	db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.Wrap(db, dbRecorder)
	wrappedDB.CollectPoolStats(15*time.Second, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	providerRepository := providerRepo.NewRepository(wrappedDB)
	visitRepository := visitRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	// Общий получатель уведомлений: лог и счётчик по важности
	sharedNotifier := notify.Safe(notify.Counted(notify.NewLogSink(log), metricsCollector), log)

	// Курсы валют: НБРБ + общий кэш в Redis (если задан)
	nbrb := nbrbClient.NewClient(cfg.NBRB.URL, config.Seconds(cfg.NBRB.Timeout), log)
	log.Info("NBRB client initialized (url=%s, timeout=%ds)", cfg.NBRB.URL, cfg.NBRB.Timeout)

	var rateCache rates.Cache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(rootCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, rates will be fetched directly: %v", cfg.Redis.Addr, err)
		}
		rateCache = ratesCache.NewCache(redisClient, config.Seconds(cfg.Rates.CacheTTL))
		log.Info("Rate cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Rates.CacheTTL)
	}

	currencies, _ := cfg.Rates.ParsedCurrencies()
	base, _ := domain.ParseCurrency(cfg.Rates.Base)
	rateProvider := rates.NewProvider(nbrb, rateCache, sharedNotifier, metricsCollector, log, rates.Options{
		Base:        base,
		Currencies:  currencies,
		MinInterval: config.Seconds(cfg.Rates.MinInterval),
	})
	go rateProvider.Run(rootCtx, config.Seconds(cfg.Rates.RefreshInterval))

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		providerRepository,
		visitRepository,
		catalogRepository,
		txMgr,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		providerRepository,
		visitRepository,
		metricsCollector,
		log,
	)

	getCatalogUseCase := getCatalogUC.NewUseCase(
		catalogRepository,
		rateProvider,
		pricing.NewNormalizer(),
		log,
	)

	// Инициализируем сервисы
	centreService := centres.NewService(catalogRepository, log)
	visitService := visits.NewService(visitRepository, providerRepository, log)

	// Реестр форм записи
	sessionBackend := session.NewBackend(providerRepository, visitRepository, catalogRepository, createBookingUseCase)
	sessions := session.NewRegistry(sessionBackend, sharedNotifier, metricsCollector, log, session.Options{
		IdleTTL:     config.Seconds(cfg.Sessions.IdleTTL),
		MaxSessions: cfg.Sessions.MaxSessions,
		InboxSize:   cfg.Sessions.InboxSize,
	})

	// Инициализируем handlers
	getNurses := getNursesHandler.NewHandler(providerRepository, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getCatalog := getCatalogHandler.NewHandler(getCatalogUseCase, log)
	getExchangeRates := getExchangeRatesHandler.NewHandler(rateProvider, log)
	bookingSessions := bookingSessionsHandler.NewHandler(sessions, log)
	getCentres := getCentresHandler.NewHandler(centreService, log)
	searchCatalog := searchCatalogHandler.NewHandler(centreService, log)
	getVisit := getVisitHandler.NewHandler(visitService, log)
	getNurseVisits := getNurseVisitsHandler.NewHandler(visitService, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Центры и поиск ---
	api.HandleFunc("/centres", getCentres.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/centres/{centreId}", getCentres.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/search", searchCatalog.Handle).Methods(http.MethodGet)

	// --- Медсёстры и слоты ---
	api.HandleFunc("/centres/{centreId}/nurses", getNurses.Handle).Methods(http.MethodGet)
	api.HandleFunc("/nurses/{nurseId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/nurses/{nurseId}/visits", getNurseVisits.Handle).Methods(http.MethodGet)

	// --- Каталог и курсы ---
	api.HandleFunc("/centres/{centreId}/products", getCatalog.HandleCentreProducts).Methods(http.MethodGet)
	api.HandleFunc("/procedures", getCatalog.HandleProcedures).Methods(http.MethodGet)
	api.HandleFunc("/procedures/{procedureId}/centres", getCatalog.HandleProcedureCentres).Methods(http.MethodGet)
	api.HandleFunc("/exchange-rates", getExchangeRates.Handle).Methods(http.MethodGet)

	// --- Запись на приём ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/visits/{visitId}", getVisit.Handle).Methods(http.MethodGet)

	// --- Формы записи ---
	// Открытие формы ограничено по IP, остальные действия нет
	openPerMinute := max(cfg.Sessions.OpenPerMinute, 1)
	openLimit := middleware.RateLimit(time.Minute/time.Duration(openPerMinute), openPerMinute, log)
	api.Handle("/booking-sessions", openLimit(http.HandlerFunc(bookingSessions.HandleOpen))).Methods(http.MethodPost)

	api.HandleFunc("/booking-sessions/{sessionId}", bookingSessions.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/booking-sessions/{sessionId}", bookingSessions.HandleClose).Methods(http.MethodDelete)
	api.HandleFunc("/booking-sessions/{sessionId}/provider", bookingSessions.HandleSelectNurse).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/date", bookingSessions.HandleSelectDate).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/slot", bookingSessions.HandleSelectSlot).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/fields/{name}", bookingSessions.HandleUpdateField).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/target", bookingSessions.HandleChangeTarget).Methods(http.MethodPut)
	api.HandleFunc("/booking-sessions/{sessionId}/submit", bookingSessions.HandleSubmit).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
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

	// Останавливаем обновление курсов и сбор метрик пула
	stopBackground()
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем оставшиеся формы записи
	sessions.Close()

	log.Info("Server stopped gracefully")
}
