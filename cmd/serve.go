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
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SitterAvailability/internal/api/handlers"
	checkBoardingRangeHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/check_boarding_range"
	deleteExceptionHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/delete_exception"
	getAuditHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/get_audit"
	getConfigHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/get_config"
	getDaySlotsHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/get_day_slots"
	replaceRulesHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/replace_rules"
	upsertConfigHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/upsert_config"
	upsertExceptionHandler "github.com/m04kA/SMC-SitterAvailability/internal/api/handlers/upsert_exception"
	"github.com/m04kA/SMC-SitterAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-SitterAvailability/internal/config"
	"github.com/m04kA/SMC-SitterAvailability/internal/infra/cache"
	auditRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/audit"
	bookingRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/config"
	exceptionRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/exceptions"
	ruleRepo "github.com/m04kA/SMC-SitterAvailability/internal/infra/storage/rules"
	auditService "github.com/m04kA/SMC-SitterAvailability/internal/service/audit"
	availabilityService "github.com/m04kA/SMC-SitterAvailability/internal/service/availability"
	checkBoardingRangeUC "github.com/m04kA/SMC-SitterAvailability/internal/usecase/check_boarding_range"
	getDaySlotsUC "github.com/m04kA/SMC-SitterAvailability/internal/usecase/get_day_slots"
	"github.com/m04kA/SMC-SitterAvailability/migrations"
	"github.com/m04kA/SMC-SitterAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/logger"
	"github.com/m04kA/SMC-SitterAvailability/pkg/metrics"
	"github.com/m04kA/SMC-SitterAvailability/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(*configPath, migrateUp)
		},
	}
	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before start")

	return cmd
}

func serve(configPath string, migrateUp bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-SitterAvailability...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil-коллектор ничего не пишет)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateUp {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			return err
		}
		if err := migrator.Up(context.Background()); err != nil {
			return err
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Репозитории
	configRepository := configRepo.NewRepository(wrappedDB)
	ruleRepository := ruleRepo.NewRepository(wrappedDB)
	exceptionRepository := exceptionRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	auditRepository := auditRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш правил и исключений перед репозиториями
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, reads will go to postgres until it recovers: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Redis cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.CacheTTL())
		}
		cancel()
	}
	snapshotCache := cache.NewSnapshotCache(
		redisClient,
		cfg.Redis.CacheTTL(),
		configRepository,
		ruleRepository,
		exceptionRepository,
		metricsCollector,
		log,
	)

	// Журнал изменений; каждое изменение сбрасывает кэш ситтера
	recorder := auditService.NewRecorder(auditRepository, metricsCollector, log)
	recorder.AddHook(func(ctx context.Context, event auditService.Event) {
		if err := snapshotCache.Invalidate(ctx, event.SitterID); err != nil {
			log.Warn("Cache invalidation failed for sitter=%s: %v", event.SitterID, err)
		}
	})

	policy := cfg.Policy()

	// Сервисы и use cases
	availabilitySvc := availabilityService.NewService(
		configRepository,
		ruleRepository,
		exceptionRepository,
		auditRepository,
		recorder,
		txMgr,
		policy,
		cfg.Auth.AdminIDs,
		log,
	)

	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		snapshotCache,
		snapshotCache,
		snapshotCache,
		bookingRepository,
		policy,
		metricsCollector,
		log,
	)

	checkBoardingRangeUseCase := checkBoardingRangeUC.NewUseCase(
		snapshotCache,
		snapshotCache,
		snapshotCache,
		bookingRepository,
		policy,
		metricsCollector,
		log,
	)

	// Handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	checkBoardingRange := checkBoardingRangeHandler.NewHandler(checkBoardingRangeUseCase, log)
	getConfig := getConfigHandler.NewHandler(availabilitySvc, log)
	getAudit := getAuditHandler.NewHandler(availabilitySvc, log)
	upsertConfig := upsertConfigHandler.NewHandler(availabilitySvc, log)
	replaceRules := replaceRulesHandler.NewHandler(availabilitySvc, log)
	upsertException := upsertExceptionHandler.NewHandler(availabilitySvc, log)
	deleteException := deleteExceptionHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := wrappedDB.PingContext(ctx); err != nil {
			log.Error("GET /healthz - Database ping failed: %v", err)
			handlers.RespondUnavailable(w)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты на день для прогулки и дневного присмотра
	api.HandleFunc("/sitters/{sitterId}/availability/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Проверка диапазона дат для передержки
	api.HandleFunc("/sitters/{sitterId}/availability/boarding", checkBoardingRange.Handle).Methods(http.MethodGet)

	// Действующие настройки услуги (сохранённые или по умолчанию)
	api.HandleFunc("/sitters/{sitterId}/availability/config/{serviceType}", getConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/sitters/{sitterId}/availability/audit", getAudit.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sitters/{sitterId}/availability/config/{serviceType}", upsertConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/availability/rules/{serviceType}/{weekday}", replaceRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/availability/exceptions/{serviceType}/{date}", upsertException.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sitters/{sitterId}/availability/exceptions/{serviceType}/{date}", deleteException.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
