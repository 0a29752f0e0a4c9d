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

	createReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_availability"
	getReservationHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_reservation"
	getRestaurantHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/get_restaurant"
	listCuisinesHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_cuisines"
	listLocationsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/list_locations"
	searchRestaurantsHandler "github.com/m04kA/SMC-RestaurantService/internal/api/handlers/search_restaurants"
	"github.com/m04kA/SMC-RestaurantService/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantService/internal/config"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/cache"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/storage"
	bookingRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/booking"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	reservationsService "github.com/m04kA/SMC-RestaurantService/internal/service/reservations"
	restaurantsService "github.com/m04kA/SMC-RestaurantService/internal/service/restaurants"
	createReservationUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-RestaurantService/pkg/logger"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
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

	log.Info("Starting SMC-RestaurantService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Накатываем схему
	if err := storage.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to migrate database schema: %v", err)
	}
	log.Info("Database schema is up to date")

	// Подключаемся к Redis (если включен); недоступность кеша не фатальна
	searchCache := cache.New(nil, 0)
	if cfg.Redis.Enabled {
		redisClient := cache.NewClient(cfg.Redis.Address, cfg.Redis.DB)
		if err := cache.Ping(context.Background(), redisClient); err != nil {
			log.Warn("Redis is unavailable, search cache disabled: %v", err)
		} else {
			searchCache = cache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
			defer redisClient.Close()
			log.Info("Connected to Redis at %s (ttl=%ds)", cfg.Redis.Address, cfg.Redis.TTL)
		}
	}

	// Инициализируем репозитории
	restaurantRepository := restaurantRepo.NewRepository(db)
	bookingRepository := bookingRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	restaurantSvc := restaurantsService.NewService(restaurantRepository, searchCache, log)
	reservationSvc := reservationsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		restaurantRepository,
		bookingRepository,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		restaurantRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Метрики бронирований опциональны: без коллектора handler получает nil
	var reservationMetrics createReservationHandler.Metrics
	if metricsCollector != nil {
		reservationMetrics = metricsCollector
	}

	// Инициализируем handlers
	searchRestaurants := searchRestaurantsHandler.NewHandler(restaurantSvc, log)
	getRestaurant := getRestaurantHandler.NewHandler(restaurantSvc, log)
	listLocations := listLocationsHandler.NewHandler(restaurantSvc, log)
	listCuisines := listCuisinesHandler.NewHandler(restaurantSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, reservationMetrics, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Каталог ресторанов ---
	api.HandleFunc("/restaurants", searchRestaurants.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cuisines", listCuisines.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{slug}", getRestaurant.Handle).Methods(http.MethodGet)

	// --- Доступность и бронирование ---
	api.HandleFunc("/restaurants/{slug}/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{slug}/reserve", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

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
