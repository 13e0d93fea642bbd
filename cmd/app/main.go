package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"pichuka/cmd"
	httpadapter "pichuka/internal/adapters/in/http"
	"pichuka/internal/adapters/out/postgres/cartrepo"
	"pichuka/internal/adapters/out/postgres/orderrepo"
	"pichuka/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
	)

	jobManager := startJobs(&app, configs)
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		CartTTL:             goDotEnvVariable("CART_TTL"),
		CartJanitorSchedule: goDotEnvVariable("CART_JANITOR_SCHEDULE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderHistoryDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config) *jobs.JobManager {
	cartTTL, err := time.ParseDuration(configs.CartTTL)
	if err != nil {
		log.Fatalf("Invalid CART_TTL %q: %v", configs.CartTTL, err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	jobManager := jobs.NewJobManager(
		app.CreateExpireStaleCartsCommandHandler(),
		cartTTL,
		configs.CartJanitorSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	return jobManager
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		app.CreateAddCartItemCommandHandler(),
		app.CreateRemoveCartItemCommandHandler(),
		app.CreatePlaceOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateMarkOrderDeliveredCommandHandler(),
		app.CreateGetCartQueryHandler(),
		app.CreateGetOrderHistoryQueryHandler(),
		app.CreateGetAllOrdersQueryHandler(),
		app.CreateGetKitchenQueueQueryHandler(),
		app.CreateGetDeliveryQueueQueryHandler(),
		app.CreateGetOrderTimelineQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
